package domain

// A DayBucket is the set of visits assigned to one working day.
// Buckets are created fresh by the partitioner on every planning call,
// reshaped by the load balancer, and ordered by the day sequencer; no state
// survives the invocation that produced them.
type DayBucket struct {
	Index    int
	Centroid Coordinate
	Visits   []Visit
}

// AddVisits appends visits to the bucket and recomputes its centroid.
func (b *DayBucket) AddVisits(visits []Visit) {
	b.Visits = append(b.Visits, visits...)
	b.RecomputeCentroid()
}

// RemoveVisits drops the visits with the given IDs and recomputes the
// centroid. Visits not present in the bucket are ignored.
func (b *DayBucket) RemoveVisits(ids map[string]struct{}) {
	kept := make([]Visit, 0, len(b.Visits))
	for _, v := range b.Visits {
		if _, drop := ids[v.ID]; !drop {
			kept = append(kept, v)
		}
	}
	b.Visits = kept
	b.RecomputeCentroid()
}

// RecomputeCentroid sets the centroid to the mean member coordinate.
// An empty bucket keeps its previous centroid.
func (b *DayBucket) RecomputeCentroid() {
	if len(b.Visits) == 0 {
		return
	}

	points := make([]Coordinate, 0, len(b.Visits))
	for _, v := range b.Visits {
		points = append(points, v.Coordinate)
	}
	b.Centroid = MeanCoordinate(points)
}

// ServiceMinutes returns the total on-site minutes across the bucket.
func (b *DayBucket) ServiceMinutes() float64 {
	total := 0.0
	for _, v := range b.Visits {
		total += v.ServiceMinutes
	}
	return total
}
