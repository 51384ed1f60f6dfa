package services

import (
	"visit-planner-service/internal/domain"
)

const (
	// balanceMaxAttempts bounds the rebalancing loop. The loop can stall in a
	// locally balanced state or oscillate between two buckets; the cap is the
	// only termination guarantee and stands in for convergence detection.
	balanceMaxAttempts = 20
	// balanceTolerance is the acceptable per-day deviation, as a fraction of
	// the mean per-day cost. Rebalancing triggers when the max-min spread
	// exceeds twice this band.
	balanceTolerance = 0.15
)

// bucketCost is a day's total workload in minutes: on-site service time plus
// the drive time of the sequenced route from home through every stop and back.
func bucketCost(b *domain.DayBucket, home domain.Coordinate) float64 {
	return b.ServiceMinutes() + driveMinutes(b.Visits, home)
}

// A moveFinder proposes a set of visits to move from the source bucket to the
// target bucket, or reports that no qualifying move exists. Finders are tried
// in a fixed cascade order; tests can substitute their own.
type moveFinder interface {
	findMove(buckets []domain.DayBucket, src, dst int, home domain.Coordinate) ([]domain.Visit, bool)
}

// groupMoveFinder proposes moving a whole group currently resident in the
// source bucket.
type groupMoveFinder struct {
	groups []domain.Group
}

func (f *groupMoveFinder) findMove(buckets []domain.DayBucket, src, dst int, home domain.Coordinate) ([]domain.Visit, bool) {
	resident := make(map[string]struct{}, len(buckets[src].Visits))
	for _, v := range buckets[src].Visits {
		resident[v.ID] = struct{}{}
	}

	for _, g := range f.groups {
		if len(g.Members) == len(buckets[src].Visits) {
			continue // moving the whole bucket only trades places
		}
		whole := true
		for _, v := range g.Members {
			if _, ok := resident[v.ID]; !ok {
				whole = false
				break
			}
		}
		if !whole {
			continue
		}
		if moveLowersMax(buckets, src, dst, g.Members, home) {
			return g.Members, true
		}
	}

	return nil, false
}

// visitMoveFinder proposes moving a single visit; the fallback when no whole
// group qualifies.
type visitMoveFinder struct{}

func (f *visitMoveFinder) findMove(buckets []domain.DayBucket, src, dst int, home domain.Coordinate) ([]domain.Visit, bool) {
	if len(buckets[src].Visits) <= 1 {
		return nil, false
	}

	for _, v := range buckets[src].Visits {
		unit := []domain.Visit{v}
		if moveLowersMax(buckets, src, dst, unit, home) {
			return unit, true
		}
	}

	return nil, false
}

// moveLowersMax simulates moving unit from src to dst and reports whether the
// worst bucket cost strictly drops, i.e. the move leaves a different bucket
// with more headroom than the current maximum. Simulation works on copied
// visit slices; the real buckets are untouched.
func moveLowersMax(buckets []domain.DayBucket, src, dst int, unit []domain.Visit, home domain.Coordinate) bool {
	moving := make(map[string]struct{}, len(unit))
	for _, v := range unit {
		moving[v.ID] = struct{}{}
	}

	srcAfter := make([]domain.Visit, 0, len(buckets[src].Visits))
	for _, v := range buckets[src].Visits {
		if _, gone := moving[v.ID]; !gone {
			srcAfter = append(srcAfter, v)
		}
	}
	dstAfter := append(append([]domain.Visit(nil), buckets[dst].Visits...), unit...)

	currentMax := 0.0
	newMax := 0.0
	for i := range buckets {
		cost := bucketCost(&buckets[i], home)
		if cost > currentMax {
			currentMax = cost
		}

		switch i {
		case src:
			cost = sliceCost(srcAfter, home)
		case dst:
			cost = sliceCost(dstAfter, home)
		}
		if cost > newMax {
			newMax = cost
		}
	}

	return newMax < currentMax
}

func sliceCost(visits []domain.Visit, home domain.Coordinate) float64 {
	total := driveMinutes(visits, home)
	for _, v := range visits {
		total += v.ServiceMinutes
	}
	return total
}

// BalanceBuckets evens out per-day cost by greedily moving units from the
// most expensive bucket toward the cheapest one.
//
// Each attempt recomputes every bucket's cost, and stops once the max-min
// spread is inside twice the tolerance band or no move lowers the maximum.
// Whole groups move first; single visits are the fallback. Without a home
// base there is no drive-time metric and the geography-only partition stands.
// The tolerance is a target, not a guarantee: the heuristic can settle in a
// locally balanced state outside the band.
func BalanceBuckets(buckets []domain.DayBucket, groups []domain.Group, home *domain.Coordinate) []domain.DayBucket {
	if home == nil || len(buckets) < 2 {
		return buckets
	}

	finders := []moveFinder{
		&groupMoveFinder{groups: groups},
		&visitMoveFinder{},
	}

	for attempt := 0; attempt < balanceMaxAttempts; attempt++ {
		costs := make([]float64, len(buckets))
		mean := 0.0
		for i := range buckets {
			costs[i] = bucketCost(&buckets[i], *home)
			mean += costs[i]
		}
		mean /= float64(len(buckets))

		src, dst := 0, 0
		for i := range costs {
			if costs[i] > costs[src] {
				src = i
			}
			if costs[i] < costs[dst] {
				dst = i
			}
		}

		if costs[src]-costs[dst] <= 2*balanceTolerance*mean {
			break
		}

		unit, ok := findMove(finders, buckets, src, dst, *home)
		if !ok {
			break
		}
		applyMove(buckets, src, dst, unit)
	}

	return repairEmptyBuckets(buckets)
}

// findMove runs the finder cascade and returns the first qualifying unit.
func findMove(finders []moveFinder, buckets []domain.DayBucket, src, dst int, home domain.Coordinate) ([]domain.Visit, bool) {
	for _, f := range finders {
		if unit, ok := f.findMove(buckets, src, dst, home); ok {
			return unit, true
		}
	}
	return nil, false
}

// applyMove transfers unit's visits from src to dst and recomputes both
// centroids as the mean coordinate of their remaining members.
func applyMove(buckets []domain.DayBucket, src, dst int, unit []domain.Visit) {
	ids := make(map[string]struct{}, len(unit))
	for _, v := range unit {
		ids[v.ID] = struct{}{}
	}
	buckets[src].RemoveVisits(ids)
	buckets[dst].AddVisits(unit)
}

// repairEmptyBuckets moves one visit out of the largest bucket into each
// empty bucket, so no day ends up empty whenever visits outnumber days.
func repairEmptyBuckets(buckets []domain.DayBucket) []domain.DayBucket {
	for i := range buckets {
		if len(buckets[i].Visits) > 0 {
			continue
		}

		donor := -1
		for d := range buckets {
			if len(buckets[d].Visits) <= 1 {
				continue
			}
			if donor < 0 || len(buckets[d].Visits) > len(buckets[donor].Visits) {
				donor = d
			}
		}
		if donor < 0 {
			continue
		}

		last := len(buckets[donor].Visits) - 1
		moved := buckets[donor].Visits[last]
		buckets[donor].Visits = buckets[donor].Visits[:last]
		buckets[donor].RecomputeCentroid()
		buckets[i].AddVisits([]domain.Visit{moved})
	}

	return buckets
}
