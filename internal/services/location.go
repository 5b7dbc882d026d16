package services

import (
	"context"
	"log"
	"math"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/virtualflux/mht-backend/internal/apperr"
)

const (
	defaultSearchRadius  = 5000
	maxEmergencyRadius   = 10000
	maxNearbyResults     = 20
	maxEmergencyResults  = 10
	maxTextSearchResults = 15
	earthRadiusMeters    = 6371000
)

// hospitalCategories are the place categories queried concurrently by the
// nearby search.
var hospitalCategories = []string{"hospital", "doctor", "health"}

// NearbyHospital is the API-facing shape of a place result.
type NearbyHospital struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Address           string   `json:"address"`
	Location          LatLng   `json:"location"`
	Distance          *int     `json:"distance,omitempty"`
	Rating            float64  `json:"rating,omitempty"`
	IsOpen            *bool    `json:"isOpen,omitempty"`
	PhoneNumber       string   `json:"phoneNumber,omitempty"`
	Website           string   `json:"website,omitempty"`
	Types             []string `json:"types"`
	Specialties       []string `json:"specialties"`
	EmergencyServices bool     `json:"emergencyServices"`
	OpeningHours      []string `json:"openingHours,omitempty"`
}

// LocationService finds hospitals and emergency services near a coordinate
// through the external places provider.
type LocationService struct {
	places PlacesClient
}

// NewLocationService wires the places client; pass nil when no API key is
// configured and every call will fail with ServiceUnavailable.
func NewLocationService(places PlacesClient) *LocationService {
	return &LocationService{places: places}
}

func (s *LocationService) ready() error {
	if s.places == nil {
		return apperr.Unavailable("Google Maps API key not configured")
	}
	return nil
}

// FindNearbyHospitals queries each hospital category concurrently, joins and
// de-duplicates the results by place id, computes the distance from the query
// point and returns them sorted nearest-first (rating-first when distance is
// unavailable).
func (s *LocationService) FindNearbyHospitals(ctx context.Context, lat, lng float64, radius int) ([]*NearbyHospital, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if radius <= 0 {
		radius = defaultSearchRadius
	}

	var mu sync.Mutex
	var all []Place

	g, gctx := errgroup.WithContext(ctx)
	for _, category := range hospitalCategories {
		category := category
		g.Go(func() error {
			places, err := s.places.NearbySearch(gctx, lat, lng, radius, category, "")
			if err != nil {
				// One failed category should not sink the whole search.
				log.Printf("places category %q failed: %v", category, err)
				return nil
			}
			mu.Lock()
			all = append(all, places...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	hospitals := s.transformAll(ctx, dedupe(all), lat, lng, false)
	sortByDistance(hospitals)

	return capResults(hospitals, maxNearbyResults), nil
}

// FindNearbyEmergencyServices searches for emergency facilities, putting
// places with emergency or trauma in the name first.
func (s *LocationService) FindNearbyEmergencyServices(ctx context.Context, lat, lng float64, radius int) ([]*NearbyHospital, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if radius <= 0 || radius > maxEmergencyRadius {
		radius = maxEmergencyRadius
	}

	places, err := s.places.NearbySearch(ctx, lat, lng, radius, "hospital",
		"emergency hospital trauma center ambulance")
	if err != nil {
		return nil, err
	}

	hospitals := s.transformAll(ctx, places, lat, lng, true)

	sort.SliceStable(hospitals, func(i, j int) bool {
		ai, bj := isEmergencyName(hospitals[i].Name), isEmergencyName(hospitals[j].Name)
		if ai != bj {
			return ai
		}
		return lessByDistance(hospitals[i], hospitals[j])
	})

	return capResults(hospitals, maxEmergencyResults), nil
}

// SearchHospitals runs a free-text hospital search, optionally biased around
// a coordinate.
func (s *LocationService) SearchHospitals(ctx context.Context, query string, lat, lng float64, radius int) ([]*NearbyHospital, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if radius <= 0 {
		radius = maxEmergencyRadius
	}

	places, err := s.places.TextSearch(ctx, query+" hospital medical center clinic", lat, lng, radius)
	if err != nil {
		return nil, err
	}

	hospitals := s.transformAll(ctx, places, lat, lng, false)
	return capResults(hospitals, maxTextSearchResults), nil
}

// GetPlaceDetails returns the provider's detail record for a place.
func (s *LocationService) GetPlaceDetails(ctx context.Context, placeID string) (*PlaceDetails, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	details, err := s.places.Details(ctx, placeID)
	if err != nil {
		return nil, apperr.NotFound("Place not found")
	}
	return details, nil
}

func dedupe(places []Place) []Place {
	seen := make(map[string]bool, len(places))
	unique := places[:0:0]
	for _, p := range places {
		if seen[p.PlaceID] {
			continue
		}
		seen[p.PlaceID] = true
		unique = append(unique, p)
	}
	return unique
}

func (s *LocationService) transformAll(ctx context.Context, places []Place, lat, lng float64, isEmergency bool) []*NearbyHospital {
	hospitals := make([]*NearbyHospital, 0, len(places))
	for _, p := range places {
		hospitals = append(hospitals, s.transform(ctx, p, lat, lng, isEmergency))
	}
	return hospitals
}

func (s *LocationService) transform(ctx context.Context, p Place, lat, lng float64, isEmergency bool) *NearbyHospital {
	h := &NearbyHospital{
		ID:                p.PlaceID,
		Name:              p.Name,
		Address:           p.FormattedAddress,
		Location:          p.Geometry.Location,
		Rating:            p.Rating,
		Types:             p.Types,
		Specialties:       extractSpecialties(p.Name, p.Types),
		EmergencyServices: isEmergency || hasEmergencyServices(p.Name, p.Types),
	}
	if h.Address == "" {
		h.Address = p.Vicinity
	}
	if h.Address == "" {
		h.Address = "Address not available"
	}
	if p.OpeningHours != nil {
		open := p.OpeningHours.OpenNow
		h.IsOpen = &open
	}
	if lat != 0 || lng != 0 {
		d := haversine(lat, lng, p.Geometry.Location.Lat, p.Geometry.Location.Lng)
		h.Distance = &d
	}

	// Detail enrichment is best effort; a miss leaves the fields empty.
	if details, err := s.places.Details(ctx, p.PlaceID); err == nil && details != nil {
		h.PhoneNumber = details.FormattedPhoneNumber
		if h.PhoneNumber == "" {
			h.PhoneNumber = details.InternationalPhoneNumber
		}
		h.Website = details.Website
		if details.OpeningHours != nil {
			h.OpeningHours = details.OpeningHours.WeekdayText
		}
	}

	return h
}

func sortByDistance(hospitals []*NearbyHospital) {
	sort.SliceStable(hospitals, func(i, j int) bool {
		return lessByDistance(hospitals[i], hospitals[j])
	})
}

func lessByDistance(a, b *NearbyHospital) bool {
	if a.Distance != nil && b.Distance != nil {
		return *a.Distance < *b.Distance
	}
	return a.Rating > b.Rating
}

func capResults(hospitals []*NearbyHospital, max int) []*NearbyHospital {
	if len(hospitals) > max {
		return hospitals[:max]
	}
	return hospitals
}

// haversine returns the great-circle distance between two coordinates in
// meters, rounded to the nearest meter.
func haversine(lat1, lng1, lat2, lng2 float64) int {
	dLat := deg2rad(lat2 - lat1)
	dLng := deg2rad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(lat1))*math.Cos(deg2rad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return int(math.Round(earthRadiusMeters * c))
}

func deg2rad(deg float64) float64 {
	return deg * (math.Pi / 180)
}

func isEmergencyName(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "emergency") || strings.Contains(lower, "trauma")
}

func extractSpecialties(name string, types []string) []string {
	var specialties []string
	lower := strings.ToLower(name)

	if strings.Contains(lower, "maternity") || strings.Contains(lower, "maternal") {
		specialties = append(specialties, "Maternal Health")
	}
	if strings.Contains(lower, "women") {
		specialties = append(specialties, "Women's Health")
	}
	if strings.Contains(lower, "obstetric") || strings.Contains(lower, "gynecolog") {
		specialties = append(specialties, "Obstetrics & Gynecology")
	}
	if strings.Contains(lower, "pediatric") || strings.Contains(lower, "children") {
		specialties = append(specialties, "Pediatrics")
	}
	if strings.Contains(lower, "emergency") || strings.Contains(lower, "trauma") {
		specialties = append(specialties, "Emergency Medicine")
	}
	if strings.Contains(lower, "teaching") || strings.Contains(lower, "university") {
		specialties = append(specialties, "Teaching Hospital")
	}
	if strings.Contains(lower, "specialist") || strings.Contains(lower, "specialty") {
		specialties = append(specialties, "Specialist Care")
	}

	for _, t := range types {
		switch t {
		case "hospital":
			specialties = append(specialties, "General Hospital")
		case "doctor":
			specialties = append(specialties, "Medical Practice")
		}
	}

	if len(specialties) == 0 {
		return []string{"General Medical Care"}
	}
	return specialties
}

func hasEmergencyServices(name string, types []string) bool {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "emergency") ||
		strings.Contains(lower, "trauma") ||
		strings.Contains(lower, "urgent") ||
		strings.Contains(lower, "teaching") {
		return true
	}
	for _, t := range types {
		if t == "hospital" {
			return true
		}
	}
	return false
}
