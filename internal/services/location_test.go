package services

import (
	"context"
	"errors"
	"testing"

	"github.com/virtualflux/mht-backend/internal/apperr"
)

type fakePlaces struct {
	// byCategory maps a nearby-search place type to its results.
	byCategory map[string][]Place
	textHits   []Place
}

func (f *fakePlaces) NearbySearch(ctx context.Context, lat, lng float64, radius int, placeType, keyword string) ([]Place, error) {
	return f.byCategory[placeType], nil
}

func (f *fakePlaces) TextSearch(ctx context.Context, query string, lat, lng float64, radius int) ([]Place, error) {
	return f.textHits, nil
}

func (f *fakePlaces) Details(ctx context.Context, placeID string) (*PlaceDetails, error) {
	return nil, errors.New("details unavailable")
}

func place(id, name string, lat, lng, rating float64, types ...string) Place {
	return Place{
		PlaceID:  id,
		Name:     name,
		Vicinity: name + " Road",
		Geometry: Geometry{Location: LatLng{Lat: lat, Lng: lng}},
		Rating:   rating,
		Types:    types,
	}
}

func TestFindNearbyHospitalsDeduplicatesAndSortsByDistance(t *testing.T) {
	// Query point: central Lagos. The same hospital shows up under two
	// categories; the farther one appears once.
	near := place("p-near", "Island Maternity Hospital", 6.5250, 3.3800, 4.0, "hospital")
	far := place("p-far", "Mainland General Hospital", 6.6000, 3.5000, 4.8, "hospital")

	svc := NewLocationService(&fakePlaces{byCategory: map[string][]Place{
		"hospital": {far, near},
		"doctor":   {near},
		"health":   {},
	}})

	hospitals, err := svc.FindNearbyHospitals(context.Background(), 6.5244, 3.3792, 5000)
	if err != nil {
		t.Fatalf("nearby search: %v", err)
	}

	if len(hospitals) != 2 {
		t.Fatalf("expected 2 unique results, got %d", len(hospitals))
	}
	seen := map[string]bool{}
	for _, h := range hospitals {
		if seen[h.ID] {
			t.Fatalf("duplicate place id %s in results", h.ID)
		}
		seen[h.ID] = true
	}

	if hospitals[0].ID != "p-near" || hospitals[1].ID != "p-far" {
		t.Errorf("results not sorted by ascending distance: %s, %s",
			hospitals[0].ID, hospitals[1].ID)
	}
	if hospitals[0].Distance == nil || hospitals[1].Distance == nil {
		t.Fatal("distance should be computed for every result")
	}
	if *hospitals[0].Distance >= *hospitals[1].Distance {
		t.Errorf("distances out of order: %d >= %d",
			*hospitals[0].Distance, *hospitals[1].Distance)
	}
}

func TestFindNearbyHospitalsUnconfigured(t *testing.T) {
	svc := NewLocationService(nil)

	_, err := svc.FindNearbyHospitals(context.Background(), 6.5244, 3.3792, 5000)
	if !apperr.IsKind(err, apperr.KindUnavailable) {
		t.Fatalf("expected ServiceUnavailable without an API key, got %v", err)
	}
}

func TestEmergencyServicesPrioritizesEmergencyNames(t *testing.T) {
	closeClinic := place("p1", "Ikeja Medical Centre", 6.5250, 3.3800, 4.9, "hospital")
	traumaFar := place("p2", "Lagos Trauma and Emergency Centre", 6.6000, 3.5000, 3.5, "hospital")

	svc := NewLocationService(&fakePlaces{byCategory: map[string][]Place{
		"hospital": {closeClinic, traumaFar},
	}})

	hospitals, err := svc.FindNearbyEmergencyServices(context.Background(), 6.5244, 3.3792, 0)
	if err != nil {
		t.Fatalf("emergency search: %v", err)
	}
	if len(hospitals) != 2 {
		t.Fatalf("expected 2 results, got %d", len(hospitals))
	}
	if hospitals[0].ID != "p2" {
		t.Errorf("emergency-named facility should rank first, got %s", hospitals[0].ID)
	}
	if !hospitals[0].EmergencyServices {
		t.Error("emergency search results should be flagged as emergency services")
	}
}

func TestSearchHospitalsCapsResults(t *testing.T) {
	var hits []Place
	for i := 0; i < 30; i++ {
		hits = append(hits, place(string(rune('a'+i)), "Clinic", 6.5, 3.4, 4.0, "hospital"))
	}

	svc := NewLocationService(&fakePlaces{textHits: hits})

	hospitals, err := svc.SearchHospitals(context.Background(), "teaching hospital", 0, 0, 0)
	if err != nil {
		t.Fatalf("text search: %v", err)
	}
	if len(hospitals) != 15 {
		t.Fatalf("expected text search capped at 15, got %d", len(hospitals))
	}
}

func TestHaversine(t *testing.T) {
	// Lagos Island to Ikeja is roughly 17km.
	d := haversine(6.4541, 3.3947, 6.6018, 3.3515)
	if d < 16000 || d > 18500 {
		t.Errorf("haversine distance off: got %dm", d)
	}

	if d := haversine(6.5244, 3.3792, 6.5244, 3.3792); d != 0 {
		t.Errorf("zero distance expected for identical points, got %d", d)
	}
}

func TestExtractSpecialties(t *testing.T) {
	got := extractSpecialties("Lagos Maternity and Women's Hospital", []string{"hospital"})
	want := map[string]bool{
		"Maternal Health":  true,
		"Women's Health":   true,
		"General Hospital": true,
	}
	if len(got) != len(want) {
		t.Fatalf("specialties %v, want %v", got, want)
	}
	for _, s := range got {
		if !want[s] {
			t.Errorf("unexpected specialty %q", s)
		}
	}

	if got := extractSpecialties("Corner Shop", nil); len(got) != 1 || got[0] != "General Medical Care" {
		t.Errorf("fallback specialty missing, got %v", got)
	}
}
