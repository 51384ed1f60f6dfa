package domain

// A Group is one or more visits close enough to be served without a vehicle
// move. It is the atomic unit for partitioning and balancing: its members
// always move between day buckets together, except when the balancer falls
// back to single-visit moves explicitly.
type Group struct {
	ID      int
	Members []Visit
}

// Centroid returns the arithmetic mean of the member coordinates.
// A singleton group's centroid equals its only member's coordinate.
func (g *Group) Centroid() Coordinate {
	points := make([]Coordinate, 0, len(g.Members))
	for _, v := range g.Members {
		points = append(points, v.Coordinate)
	}
	return MeanCoordinate(points)
}

// ServiceMinutes returns the total on-site minutes across members.
func (g *Group) ServiceMinutes() float64 {
	total := 0.0
	for _, v := range g.Members {
		total += v.ServiceMinutes
	}
	return total
}
