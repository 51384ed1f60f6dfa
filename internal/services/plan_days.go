package services

import (
	"math/rand"
	"time"

	"visit-planner-service/internal/domain"
)

// PlanDays splits visits across numDays working days so each day carries a
// similar amount of driving plus on-site work.
//
// Pipeline: proximity grouping -> seeded k-means partitioning over group
// centroids -> cost balancing (groups first, single visits as fallback).
// Buckets come back in stable index order with unordered visits; callers run
// SequenceDay per bucket to get a deliverable route.
//
// The function is total over its documented domain: numDays <= 0 or an empty
// visit list yields an empty slice, never an error. When the visit count is
// at most numDays each visit gets its own bucket and the heuristics are
// skipped entirely. rng drives centroid seeding; nil falls back to a
// time-seeded source.
func PlanDays(visits []domain.Visit, numDays int, home *domain.Coordinate, policy GroupingPolicy, rng *rand.Rand) []domain.DayBucket {
	if numDays <= 0 || len(visits) == 0 {
		return []domain.DayBucket{}
	}

	if len(visits) <= numDays {
		buckets := make([]domain.DayBucket, 0, len(visits))
		for i, v := range visits {
			b := domain.DayBucket{Index: i, Centroid: v.Coordinate}
			b.AddVisits([]domain.Visit{v})
			buckets = append(buckets, b)
		}
		return buckets
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	groups := GroupVisits(visits, policy)
	buckets := PartitionGroups(groups, numDays, home, rng)
	return BalanceBuckets(buckets, groups, home)
}
