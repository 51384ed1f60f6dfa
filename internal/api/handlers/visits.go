package handlers

import (
	"log"
	"net/http"

	"visit-planner-service/internal/api/dto"
	"visit-planner-service/internal/ports"
)

// VisitHandler exposes read-only visit retrieval endpoints.
type VisitHandler struct {
	Repo ports.VisitRepository
}

func (h *VisitHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	visits, err := h.Repo.ListVisits(r.Context())
	if err != nil {
		log.Printf("list visits failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListVisitsResponse{
		Visits: make([]dto.VisitResponse, 0, len(visits)),
	}
	for _, v := range visits {
		res.Visits = append(res.Visits, dto.VisitResponse{
			VisitID:        v.ID,
			Lat:            v.Coordinate.Lat,
			Lng:            v.Coordinate.Lng,
			ServiceMinutes: v.ServiceMinutes,
			Address:        v.Address,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
