package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"visit-planner-service/internal/adapters/repositories"
	"visit-planner-service/internal/api/dto"
	"visit-planner-service/internal/domain"
)

func testVisits() []domain.Visit {
	return []domain.Visit{
		{ID: "v1", Coordinate: domain.Coordinate{Lat: 33.4500, Lng: -112.0700}, ServiceMinutes: 45},
		{ID: "v2", Coordinate: domain.Coordinate{Lat: 33.4510, Lng: -112.0700}, ServiceMinutes: 45},
		{ID: "v3", Coordinate: domain.Coordinate{Lat: 33.5200, Lng: -112.0700}, ServiceMinutes: 60},
		{ID: "v4", Coordinate: domain.Coordinate{Lat: 33.5210, Lng: -112.0700}, ServiceMinutes: 60},
	}
}

func postPlan(t *testing.T, h *PlanHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/plans", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Plan(rec, req)
	return rec
}

func TestPlanHandlerReturnsCompletePartition(t *testing.T) {
	h := &PlanHandler{Repo: repositories.NewMockVisitRepository(testVisits())}

	rec := postPlan(t, h, `{"num_days":2,"home_lat":33.45,"home_lng":-112.07}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var res dto.PlanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if res.NumDays != 2 {
		t.Fatalf("num_days = %d, want 2", res.NumDays)
	}
	if len(res.Days) != 2 {
		t.Fatalf("got %d days, want 2", len(res.Days))
	}

	seen := map[string]int{}
	for _, day := range res.Days {
		if len(day.Stops) == 0 {
			t.Fatalf("day %d has no stops", day.Day)
		}
		for i, stop := range day.Stops {
			if stop.Order != i {
				t.Fatalf("day %d stop %d order = %d", day.Day, i, stop.Order)
			}
			seen[stop.VisitID]++
		}
	}
	for _, v := range testVisits() {
		if seen[v.ID] != 1 {
			t.Fatalf("visit %s appears %d times in the plan, want exactly once", v.ID, seen[v.ID])
		}
	}
}

func TestPlanHandlerDefaultsAndValidation(t *testing.T) {
	h := &PlanHandler{Repo: repositories.NewMockVisitRepository(testVisits())}

	tests := []struct {
		name string
		body string
		code int
	}{
		{"defaults apply", `{}`, http.StatusOK},
		{"days too small", `{"num_days":-2}`, http.StatusBadRequest},
		{"days too large", `{"num_days":40}`, http.StatusBadRequest},
		{"half a home base", `{"num_days":2,"home_lat":33.45}`, http.StatusBadRequest},
		{"unknown policy", `{"num_days":2,"grouping_policy":"nearest"}`, http.StatusBadRequest},
		{"street policy", `{"num_days":2,"grouping_policy":"street"}`, http.StatusOK},
		{"unknown field", `{"days":2}`, http.StatusBadRequest},
		{"trailing garbage", `{"num_days":2}{}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		if rec := postPlan(t, h, tt.body); rec.Code != tt.code {
			t.Errorf("%s: status = %d, want %d (%s)", tt.name, rec.Code, tt.code, rec.Body.String())
		}
	}
}

func TestPlanHandlerMethodNotAllowed(t *testing.T) {
	h := &PlanHandler{Repo: repositories.NewMockVisitRepository(nil)}

	req := httptest.NewRequest(http.MethodGet, "/plans", nil)
	rec := httptest.NewRecorder()
	h.Plan(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodPost {
		t.Fatalf("Allow = %q, want POST", allow)
	}
}

func TestPlanHandlerEmptyVisitSet(t *testing.T) {
	h := &PlanHandler{Repo: repositories.NewMockVisitRepository(nil)}

	rec := postPlan(t, h, `{"num_days":3}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var res dto.PlanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if len(res.Days) != 0 {
		t.Fatalf("got %d days for no visits, want 0", len(res.Days))
	}
}
