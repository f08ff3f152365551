package service

import (
	"context"
	"sort"
	"time"

	"pharmacy-duty-api/internal/apperr"
	"pharmacy-duty-api/internal/dutydate"
	"pharmacy-duty-api/internal/geo"
	"pharmacy-duty-api/internal/models"
)

// Nearby limit bounds.
const (
	MinNearbyLimit     = 1
	MaxNearbyLimit     = 20
	DefaultNearbyLimit = 5
)

// ProximityRepository is the record store surface the proximity service needs.
type ProximityRepository interface {
	ListAllOnDuty(ctx context.Context, date string) ([]models.Pharmacy, error)
}

// ProximityService answers closest/nearby pharmacy queries by ranking the
// day's full roster against a caller-supplied origin.
type ProximityService struct {
	repo     ProximityRepository
	resolver *dutydate.Resolver
	now      func() time.Time
}

// NewProximityService creates a new proximity service.
func NewProximityService(repo ProximityRepository, resolver *dutydate.Resolver) *ProximityService {
	return &ProximityService{
		repo:     repo,
		resolver: resolver,
		now:      time.Now,
	}
}

// Closest returns the single on-duty pharmacy nearest to the origin.
func (s *ProximityService) Closest(ctx context.Context, lat, lng float64) (models.RankedPharmacy, error) {
	ranked, err := s.rankOnDuty(ctx, lat, lng, 1)
	if err != nil {
		return models.RankedPharmacy{}, err
	}
	return ranked[0], nil
}

// Nearby returns up to limit on-duty pharmacies ordered by distance from the
// origin. The limit must be between MinNearbyLimit and MaxNearbyLimit.
func (s *ProximityService) Nearby(ctx context.Context, lat, lng float64, limit int) ([]models.RankedPharmacy, error) {
	if limit < MinNearbyLimit || limit > MaxNearbyLimit {
		return nil, apperr.InvalidInput("Limit must be an integer between 1 and 20")
	}
	return s.rankOnDuty(ctx, lat, lng, limit)
}

func (s *ProximityService) rankOnDuty(ctx context.Context, lat, lng float64, limit int) ([]models.RankedPharmacy, error) {
	if err := geo.ValidateCoordinates(lat, lng); err != nil {
		return nil, apperr.InvalidInput(err.Error())
	}

	date := s.resolver.Resolve(s.now())

	pharmacies, err := s.repo.ListAllOnDuty(ctx, date)
	if err != nil {
		return nil, apperr.Repository(err)
	}
	if len(pharmacies) == 0 {
		return nil, apperr.NotFound("No pharmacies on duty were found")
	}

	ranked := rank(pharmacies, lat, lng, limit)
	if len(ranked) == 0 {
		// Somebody is on duty, but nobody has usable coordinates. Callers
		// need to tell this apart from an empty roster.
		return nil, apperr.NotFound("No pharmacies with known coordinates were found")
	}
	return ranked, nil
}

// rank filters out non-geolocatable records, computes distances from the
// origin and returns the closest records in ascending order. The sort is
// stable so ties keep the repository's name ordering.
func rank(pharmacies []models.Pharmacy, lat, lng float64, limit int) []models.RankedPharmacy {
	ranked := []models.RankedPharmacy{}
	for _, p := range pharmacies {
		if !p.Geolocatable() {
			continue
		}
		d, err := geo.DistanceKm(lat, lng, p.Latitude, p.Longitude)
		if err != nil {
			// Out-of-range stored coordinates are as unusable as missing ones.
			continue
		}
		ranked = append(ranked, models.RankedPharmacy{Pharmacy: p, DistanceKm: d})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
