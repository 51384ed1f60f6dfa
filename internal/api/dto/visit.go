package dto

type VisitResponse struct {
	VisitID        string  `json:"visit_id"`
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
	ServiceMinutes float64 `json:"service_minutes"`
	Address        string  `json:"address,omitempty"`
}

type ListVisitsResponse struct {
	Visits []VisitResponse `json:"visits"`
}
