package dto

type PlanRequest struct {
	NumDays        int      `json:"num_days"`
	HomeLat        *float64 `json:"home_lat"`
	HomeLng        *float64 `json:"home_lng"`
	GroupingPolicy string   `json:"grouping_policy"`
}

type PlanStopResponse struct {
	Order          int     `json:"order"`
	VisitID        string  `json:"visit_id"`
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
	ServiceMinutes float64 `json:"service_minutes"`
	Address        string  `json:"address,omitempty"`
}

type DayPlanResponse struct {
	Day            int                `json:"day"`
	CentroidLat    float64            `json:"centroid_lat"`
	CentroidLng    float64            `json:"centroid_lng"`
	ServiceMinutes float64            `json:"service_minutes"`
	Stops          []PlanStopResponse `json:"stops"`
}

type PlanResponse struct {
	PlanID  string            `json:"plan_id,omitempty"`
	NumDays int               `json:"num_days"`
	Days    []DayPlanResponse `json:"days"`
}
