package services

import (
	"math"
	"testing"

	"visit-planner-service/internal/domain"
)

func TestSequenceDayNearestNeighborOrder(t *testing.T) {
	home := domain.Coordinate{Lat: 33.4500, Lng: -112.0700}
	visits := []domain.Visit{
		visitAt("far", 33.4800, -112.0700),
		visitAt("near", 33.4520, -112.0700),
		visitAt("mid", 33.4650, -112.0700),
	}

	ordered := SequenceDay(visits, &home)
	if len(ordered) != 3 {
		t.Fatalf("got %d visits, want 3", len(ordered))
	}
	want := []string{"near", "mid", "far"}
	for i, id := range want {
		if ordered[i].ID != id {
			t.Fatalf("position %d = %s, want %s", i, ordered[i].ID, id)
		}
	}
}

func TestSequenceDayIsPermutation(t *testing.T) {
	home := domain.Coordinate{Lat: 33.45, Lng: -112.07}
	visits := []domain.Visit{
		visitAt("a", 33.46, -112.06),
		visitAt("b", 33.44, -112.08),
		visitAt("c", 33.47, -112.07),
		visitAt("d", 33.43, -112.05),
	}

	ordered := SequenceDay(visits, &home)
	if len(ordered) != len(visits) {
		t.Fatalf("got %d visits, want %d", len(ordered), len(visits))
	}

	seen := map[string]int{}
	for _, v := range ordered {
		seen[v.ID]++
	}
	for _, v := range visits {
		if seen[v.ID] != 1 {
			t.Fatalf("visit %s appears %d times, want exactly once", v.ID, seen[v.ID])
		}
	}

	// Input order must survive untouched.
	if visits[0].ID != "a" || visits[3].ID != "d" {
		t.Fatal("input slice was mutated")
	}
}

func TestSequenceDayWithoutHomeIsIdentity(t *testing.T) {
	visits := []domain.Visit{
		visitAt("b", 33.46, -112.06),
		visitAt("a", 33.44, -112.08),
	}

	ordered := SequenceDay(visits, nil)
	if len(ordered) != 2 || ordered[0].ID != "b" || ordered[1].ID != "a" {
		t.Fatalf("got %v, want input order [b a]", ordered)
	}
}

func TestSequenceDayTieBreaksOnInputOrder(t *testing.T) {
	home := domain.Coordinate{Lat: 33.45, Lng: -112.07}
	// Same coordinate, so every step is an exact tie.
	visits := []domain.Visit{
		visitAt("first", 33.46, -112.07),
		visitAt("second", 33.46, -112.07),
	}

	ordered := SequenceDay(visits, &home)
	if ordered[0].ID != "first" || ordered[1].ID != "second" {
		t.Fatalf("tie broke to %s, want first candidate scanned", ordered[0].ID)
	}
}

func TestRouteMilesIncludesReturnLeg(t *testing.T) {
	home := domain.Coordinate{Lat: 33.45, Lng: -112.07}
	visits := []domain.Visit{visitAt("a", 33.46, -112.07)}

	oneWay := domain.Distance(home, visits[0].Coordinate)
	got := routeMiles(visits, home)
	if math.Abs(got-2*oneWay) > 1e-9 {
		t.Fatalf("routeMiles = %v, want out-and-back %v", got, 2*oneWay)
	}

	if m := driveMinutes(visits, home); math.Abs(m-got*driveMinutesPerMile) > 1e-9 {
		t.Fatalf("driveMinutes = %v, want %v", m, got*driveMinutesPerMile)
	}

	if m := routeMiles(nil, home); m != 0 {
		t.Fatalf("routeMiles of empty day = %v, want 0", m)
	}
}
