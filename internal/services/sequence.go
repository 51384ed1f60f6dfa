package services

import (
	"visit-planner-service/internal/domain"
)

// driveMinutesPerMile converts route distance to drive time for balancing
// (an effective 30 mph average including stops).
const driveMinutesPerMile = 2.0

// SequenceDay orders one day's visits with a nearest-neighbor walk starting
// from the home base.
//
// The walk repeatedly appends the unvisited stop closest to the current
// position; exact ties go to the first candidate scanned, so the result is
// deterministic for a given input order. Without a home base there is no
// anchor to walk from and the input order is returned unchanged. The input
// slice is never mutated; the result is a permutation of it.
func SequenceDay(visits []domain.Visit, home *domain.Coordinate) []domain.Visit {
	ordered := make([]domain.Visit, 0, len(visits))
	if home == nil {
		return append(ordered, visits...)
	}

	remaining := append([]domain.Visit(nil), visits...)
	position := *home

	for len(remaining) > 0 {
		best := 0
		bestDist := domain.Distance(position, remaining[0].Coordinate)
		for i := 1; i < len(remaining); i++ {
			if d := domain.Distance(position, remaining[i].Coordinate); d < bestDist {
				best = i
				bestDist = d
			}
		}

		next := remaining[best]
		ordered = append(ordered, next)
		position = next.Coordinate
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	return ordered
}

// routeMiles sums the leg distances of the sequenced route for one day,
// including the return leg from the last visit back to home base.
func routeMiles(visits []domain.Visit, home domain.Coordinate) float64 {
	if len(visits) == 0 {
		return 0
	}

	ordered := SequenceDay(visits, &home)

	total := 0.0
	position := home
	for _, v := range ordered {
		total += domain.Distance(position, v.Coordinate)
		position = v.Coordinate
	}
	total += domain.Distance(position, home)

	return total
}

// driveMinutes converts a day's route distance to minutes of driving.
func driveMinutes(visits []domain.Visit, home domain.Coordinate) float64 {
	return routeMiles(visits, home) * driveMinutesPerMile
}
