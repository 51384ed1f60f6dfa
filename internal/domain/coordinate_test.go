package domain

import (
	"math"
	"testing"
)

func TestDistanceSymmetryAndIdentity(t *testing.T) {
	a := Coordinate{Lat: 33.4484, Lng: -112.0740}
	b := Coordinate{Lat: 33.4255, Lng: -111.9400}

	if d := Distance(a, a); d != 0 {
		t.Fatalf("Distance(a,a) = %v, want 0", d)
	}

	ab := Distance(a, b)
	ba := Distance(b, a)
	if ab < 0 {
		t.Fatalf("Distance(a,b) = %v, want >= 0", ab)
	}
	if math.Abs(ab-ba) > 1e-9 {
		t.Fatalf("Distance not symmetric: %v vs %v", ab, ba)
	}
}

func TestDistanceKnownValue(t *testing.T) {
	// Downtown Phoenix to Tempe, roughly 8 miles great-circle.
	a := Coordinate{Lat: 33.4484, Lng: -112.0740}
	b := Coordinate{Lat: 33.4255, Lng: -111.9400}

	d := Distance(a, b)
	if d < 7.5 || d > 8.5 {
		t.Fatalf("Distance = %v miles, want about 8", d)
	}
}

func TestDistanceOneDegreeLatitude(t *testing.T) {
	a := Coordinate{Lat: 33, Lng: -112}
	b := Coordinate{Lat: 34, Lng: -112}

	// One degree of latitude is ~69.1 miles at Earth radius 3959.
	d := Distance(a, b)
	if math.Abs(d-69.1) > 0.2 {
		t.Fatalf("Distance = %v miles, want about 69.1", d)
	}
}

func TestMeanCoordinate(t *testing.T) {
	points := []Coordinate{
		{Lat: 10, Lng: 20},
		{Lat: 20, Lng: 40},
	}

	mean := MeanCoordinate(points)
	if mean.Lat != 15 || mean.Lng != 30 {
		t.Fatalf("mean = %+v, want {15 30}", mean)
	}

	if zero := MeanCoordinate(nil); zero != (Coordinate{}) {
		t.Fatalf("mean of empty = %+v, want zero value", zero)
	}
}
