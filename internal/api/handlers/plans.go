package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"visit-planner-service/internal/api/dto"
	"visit-planner-service/internal/domain"
	"visit-planner-service/internal/ports"
	"visit-planner-service/internal/services"
)

type PlanHandler struct {
	Repo  ports.VisitRepository
	Cache ports.PlanCache // optional; nil disables caching
	Store ports.PlanStore // optional; nil disables the audit trail
}

// Plan partitions the stored visits into day buckets and sequences each day's
// route. It coordinates repository access, the planning heuristics, the plan
// cache, and plan persistence.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	numDays := req.NumDays
	if numDays == 0 {
		numDays = 5
	}
	if numDays < 1 || numDays > 31 {
		writeError(w, r, http.StatusBadRequest, "num_days must be between 1 and 31")
		return
	}

	if (req.HomeLat == nil) != (req.HomeLng == nil) {
		writeError(w, r, http.StatusBadRequest, "home_lat and home_lng must be set together")
		return
	}
	var home *domain.Coordinate
	if req.HomeLat != nil {
		home = &domain.Coordinate{Lat: *req.HomeLat, Lng: *req.HomeLng}
	}

	policy := services.GroupingPolicy(strings.TrimSpace(req.GroupingPolicy))
	if policy == "" {
		policy = services.GroupByRadius
	}
	if policy != services.GroupByRadius && policy != services.GroupByStreet {
		writeError(w, r, http.StatusBadRequest, "grouping_policy must be \"radius\" or \"street\"")
		return
	}

	visits, err := h.Repo.ListVisits(r.Context())
	if err != nil {
		log.Printf("list visits failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	fingerprint := planFingerprint(visits, numDays, home, policy)

	if h.Cache != nil {
		if payload, ok, err := h.Cache.Get(r.Context(), fingerprint); err != nil {
			log.Printf("plan cache get failed: %v", err)
		} else if ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			if _, err := w.Write(payload); err != nil {
				log.Printf("write cached plan failed: %v", err)
			}
			return
		}
	}

	buckets := services.PlanDays(visits, numDays, home, policy, nil)

	res := dto.PlanResponse{
		NumDays: numDays,
		Days:    make([]dto.DayPlanResponse, 0, len(buckets)),
	}
	for _, b := range buckets {
		ordered := services.SequenceDay(b.Visits, home)

		stops := make([]dto.PlanStopResponse, 0, len(ordered))
		for i, v := range ordered {
			stops = append(stops, dto.PlanStopResponse{
				Order:          i,
				VisitID:        v.ID,
				Lat:            v.Coordinate.Lat,
				Lng:            v.Coordinate.Lng,
				ServiceMinutes: v.ServiceMinutes,
				Address:        v.Address,
			})
		}

		res.Days = append(res.Days, dto.DayPlanResponse{
			Day:            b.Index,
			CentroidLat:    b.Centroid.Lat,
			CentroidLng:    b.Centroid.Lng,
			ServiceMinutes: b.ServiceMinutes(),
			Stops:          stops,
		})
	}

	payload, err := json.Marshal(res)
	if err != nil {
		log.Printf("marshal plan failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if h.Store != nil {
		planID, err := h.Store.SavePlan(r.Context(), fingerprint, payload)
		if err != nil {
			log.Printf("save plan failed: %v", err)
		} else {
			res.PlanID = planID
			if payload, err = json.Marshal(res); err != nil {
				log.Printf("marshal plan failed: %v", err)
				writeError(w, r, http.StatusInternalServerError, "internal server error")
				return
			}
		}
	}

	if h.Cache != nil {
		if err := h.Cache.Put(r.Context(), fingerprint, payload); err != nil {
			log.Printf("plan cache put failed: %v", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		log.Printf("write plan failed: %v", err)
	}
}

// planFingerprint hashes the planning inputs so identical requests over the
// same visit set share one cache entry.
func planFingerprint(visits []domain.Visit, numDays int, home *domain.Coordinate, policy services.GroupingPolicy) string {
	h := sha256.New()

	fmt.Fprintf(h, "days=%d policy=%s", numDays, policy)
	if home != nil {
		fmt.Fprintf(h, " home=%.6f,%.6f", home.Lat, home.Lng)
	}
	for _, v := range visits {
		fmt.Fprintf(h, " %s=%.6f,%.6f,%.1f", v.ID, v.Coordinate.Lat, v.Coordinate.Lng, v.ServiceMinutes)
	}

	return hex.EncodeToString(h.Sum(nil))
}
