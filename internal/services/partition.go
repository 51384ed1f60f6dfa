package services

import (
	"math/rand"

	"visit-planner-service/internal/domain"
)

const (
	// kmeansMaxIterations bounds the assignment/recompute loop so planning
	// terminates regardless of convergence.
	kmeansMaxIterations = 50
	// kmeansConvergedMiles stops the loop once every centroid moves less
	// than this between iterations.
	kmeansConvergedMiles = 0.05
)

// PartitionGroups assigns groups to numDays day buckets with seeded k-means
// over group centroids, then expands each bucket back into member visits.
//
// When the number of groups is at most numDays, each group gets its own
// bucket and no clustering runs. Centroid seeding is randomized via rng, so
// successive calls may differ; every call still yields exactly numDays
// non-empty buckets whenever the visit count allows it.
func PartitionGroups(groups []domain.Group, numDays int, home *domain.Coordinate, rng *rand.Rand) []domain.DayBucket {
	if numDays <= 0 || len(groups) == 0 {
		return []domain.DayBucket{}
	}

	if len(groups) <= numDays {
		buckets := make([]domain.DayBucket, 0, len(groups))
		for i, g := range groups {
			b := domain.DayBucket{Index: i, Centroid: g.Centroid()}
			b.AddVisits(g.Members)
			buckets = append(buckets, b)
		}
		return buckets
	}

	centroids := seedCentroids(groups, numDays, home, rng)
	assignment := make([]int, len(groups))

	points := make([]domain.Coordinate, len(groups))
	for i := range groups {
		points[i] = groups[i].Centroid()
	}

	for iter := 0; iter < kmeansMaxIterations; iter++ {
		// Nearest centroid wins; exact ties go to the lowest bucket index.
		for i, p := range points {
			best := 0
			bestDist := domain.Distance(p, centroids[0])
			for c := 1; c < numDays; c++ {
				if d := domain.Distance(p, centroids[c]); d < bestDist {
					best = c
					bestDist = d
				}
			}
			assignment[i] = best
		}

		moved := 0.0
		for c := 0; c < numDays; c++ {
			members := make([]domain.Coordinate, 0, len(points))
			for i, a := range assignment {
				if a == c {
					members = append(members, points[i])
				}
			}
			if len(members) == 0 {
				continue // empty buckets keep their previous centroid
			}
			next := domain.MeanCoordinate(members)
			if d := domain.Distance(centroids[c], next); d > moved {
				moved = d
			}
			centroids[c] = next
		}

		if moved < kmeansConvergedMiles {
			break
		}
	}

	grouped := make([][]domain.Group, numDays)
	for i, a := range assignment {
		grouped[a] = append(grouped[a], groups[i])
	}
	grouped = repairEmptyGroupBuckets(grouped)

	buckets := make([]domain.DayBucket, numDays)
	for c := 0; c < numDays; c++ {
		buckets[c] = domain.DayBucket{Index: c, Centroid: centroids[c]}
		for _, g := range grouped[c] {
			buckets[c].Visits = append(buckets[c].Visits, g.Members...)
		}
		buckets[c].RecomputeCentroid()
	}

	return buckets
}

// seedCentroids draws initial centroids uniformly from the bounding box of
// the group centroids. With a home base and more than one day, the home
// coordinate seeds the first centroid so one route anchors near it.
func seedCentroids(groups []domain.Group, numDays int, home *domain.Coordinate, rng *rand.Rand) []domain.Coordinate {
	first := groups[0].Centroid()
	minLat, maxLat := first.Lat, first.Lat
	minLng, maxLng := first.Lng, first.Lng
	for _, g := range groups[1:] {
		c := g.Centroid()
		if c.Lat < minLat {
			minLat = c.Lat
		}
		if c.Lat > maxLat {
			maxLat = c.Lat
		}
		if c.Lng < minLng {
			minLng = c.Lng
		}
		if c.Lng > maxLng {
			maxLng = c.Lng
		}
	}

	centroids := make([]domain.Coordinate, 0, numDays)
	if home != nil && numDays > 1 {
		centroids = append(centroids, *home)
	}
	for len(centroids) < numDays {
		centroids = append(centroids, domain.Coordinate{
			Lat: minLat + rng.Float64()*(maxLat-minLat),
			Lng: minLng + rng.Float64()*(maxLng-minLng),
		})
	}

	return centroids
}

// repairEmptyGroupBuckets moves one group out of the most-populated bucket
// into each empty bucket. Only buckets holding more than one group donate, so
// repair never creates a new empty bucket. Ties between donors break on the
// lowest bucket index.
func repairEmptyGroupBuckets(grouped [][]domain.Group) [][]domain.Group {
	for c := range grouped {
		if len(grouped[c]) > 0 {
			continue
		}

		donor := -1
		for d := range grouped {
			if len(grouped[d]) <= 1 {
				continue
			}
			if donor < 0 || len(grouped[d]) > len(grouped[donor]) {
				donor = d
			}
		}
		if donor < 0 {
			continue // nothing to give without emptying another bucket
		}

		last := len(grouped[donor]) - 1
		grouped[c] = append(grouped[c], grouped[donor][last])
		grouped[donor] = grouped[donor][:last]
	}

	return grouped
}
