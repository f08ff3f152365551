package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"pharmacy-duty-api/internal/apperr"
	"pharmacy-duty-api/internal/collation"
	"pharmacy-duty-api/internal/dutydate"
	"pharmacy-duty-api/internal/models"
	"pharmacy-duty-api/internal/regions"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Country discriminator values accepted by the city listing.
const (
	CountryTurkey = "turkey"
	CountryCyprus = "cyprus"
)

// aliasQueryLimit bounds the concurrent sub-queries issued while expanding a
// composite region. Alias lists are single-digit sized so this is generous.
const aliasQueryLimit = 4

// DirectoryRepository is the record store surface the directory service needs.
type DirectoryRepository interface {
	ListCities(ctx context.Context, date string) ([]string, error)
	ListDistricts(ctx context.Context, city, date string) ([]string, error)
	ListPharmacies(ctx context.Context, city, district, date string) ([]models.Pharmacy, error)
}

// DirectoryService serves the city, district and pharmacy listings, expanding
// composite regions across their spelling variants.
type DirectoryService struct {
	repo     DirectoryRepository
	regions  *regions.Table
	resolver *dutydate.Resolver
	now      func() time.Time
}

// NewDirectoryService creates a new directory service.
func NewDirectoryService(repo DirectoryRepository, regionTable *regions.Table, resolver *dutydate.Resolver) *DirectoryService {
	return &DirectoryService{
		repo:     repo,
		regions:  regionTable,
		resolver: resolver,
		now:      time.Now,
	}
}

// ListCities returns the cities with on-duty pharmacies for the effective
// date. An optional country discriminator partitions the list: "cyprus"
// keeps only composite-region members, "turkey" keeps everything else.
func (s *DirectoryService) ListCities(ctx context.Context, country string) ([]string, error) {
	country = strings.ToLower(strings.TrimSpace(country))
	if country != "" && country != CountryTurkey && country != CountryCyprus {
		return nil, apperr.InvalidInput("Country must be 'turkey' or 'cyprus'")
	}

	date := s.resolver.Resolve(s.now())

	cities, err := s.repo.ListCities(ctx, date)
	if err != nil {
		return nil, apperr.Repository(err)
	}

	if country != "" {
		filtered := []string{}
		for _, city := range cities {
			if s.regions.IsMember(city) == (country == CountryCyprus) {
				filtered = append(filtered, city)
			}
		}
		cities = filtered
	}

	if len(cities) == 0 {
		return nil, apperr.NotFound("No cities with pharmacies on duty were found")
	}
	return cities, nil
}

// ListDistricts returns the districts of a city with on-duty pharmacies for
// the effective date, expanding composite regions across their aliases.
func (s *DirectoryService) ListDistricts(ctx context.Context, city string) ([]string, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, apperr.InvalidInput("City parameter is required")
	}

	date := s.resolver.Resolve(s.now())

	districts, err := s.districtsAcrossAliases(ctx, s.regions.Expand(city), date)
	if err != nil {
		return nil, apperr.Repository(err)
	}
	if len(districts) == 0 {
		return nil, apperr.NotFound(fmt.Sprintf("No districts with pharmacies on duty were found in %s", city))
	}
	return districts, nil
}

// ListPharmacies returns the on-duty roster records for a city district on
// the effective date. On an empty result it looks up sibling districts of the
// same city and embeds them in the not-found message as alternatives.
func (s *DirectoryService) ListPharmacies(ctx context.Context, city, district string) ([]models.Pharmacy, error) {
	city = strings.TrimSpace(city)
	district = strings.TrimSpace(district)
	if city == "" {
		return nil, apperr.InvalidInput("City parameter is required")
	}
	if district == "" {
		return nil, apperr.InvalidInput("District parameter is required")
	}

	date := s.resolver.Resolve(s.now())
	aliases := s.regions.Expand(city)

	pharmacies, err := s.pharmaciesAcrossAliases(ctx, aliases, district, date)
	if err != nil {
		return nil, apperr.Repository(err)
	}
	if len(pharmacies) == 0 {
		return nil, apperr.NotFound(s.noDutyMessage(ctx, aliases, city, district, date))
	}
	return pharmacies, nil
}

// noDutyMessage builds the not-found message for an empty district query.
// The sibling-district lookup is advisory: if it fails the message simply
// carries no alternatives.
func (s *DirectoryService) noDutyMessage(ctx context.Context, aliases []string, city, district, date string) string {
	siblings, err := s.districtsAcrossAliases(ctx, aliases, date)
	if err != nil {
		log.Warn().Err(err).Str("city", city).Msg("sibling district lookup failed, returning no suggestions")
		siblings = nil
	}
	if len(siblings) == 0 {
		return fmt.Sprintf("No pharmacies on duty in %s, %s. No other districts available", district, city)
	}
	return fmt.Sprintf(
		"No pharmacies on duty in %s, %s. Districts with on-duty pharmacies: %s",
		district, city, strings.Join(siblings, ", "),
	)
}

// districtsAcrossAliases fans the district listing out over the alias set and
// unions the results, deduplicating by trimmed label. A failing alias is
// logged and skipped; the call fails only when every alias fails.
func (s *DirectoryService) districtsAcrossAliases(ctx context.Context, aliases []string, date string) ([]string, error) {
	results := make([][]string, len(aliases))
	errs := make([]error, len(aliases))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(aliasQueryLimit)
	for i, alias := range aliases {
		g.Go(func() error {
			results[i], errs[i] = s.repo.ListDistricts(gctx, alias, date)
			return nil
		})
	}
	g.Wait()

	if err := firstErrorIfAllFailed(aliases, errs); err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	merged := []string{}
	for i, districts := range results {
		if errs[i] != nil {
			log.Warn().Err(errs[i]).Str("alias", aliases[i]).Msg("district query failed for region alias, skipping")
			continue
		}
		for _, d := range districts {
			label := strings.TrimSpace(d)
			if _, ok := seen[label]; ok {
				continue
			}
			seen[label] = struct{}{}
			merged = append(merged, label)
		}
	}

	collation.SortLabels(merged)
	return merged, nil
}

// pharmaciesAcrossAliases fans the record listing out over the alias set and
// unions the results, deduplicating by record ID. Same partial-failure policy
// as the district fan-out.
func (s *DirectoryService) pharmaciesAcrossAliases(ctx context.Context, aliases []string, district, date string) ([]models.Pharmacy, error) {
	results := make([][]models.Pharmacy, len(aliases))
	errs := make([]error, len(aliases))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(aliasQueryLimit)
	for i, alias := range aliases {
		g.Go(func() error {
			results[i], errs[i] = s.repo.ListPharmacies(gctx, alias, district, date)
			return nil
		})
	}
	g.Wait()

	if err := firstErrorIfAllFailed(aliases, errs); err != nil {
		return nil, err
	}

	seen := map[int64]struct{}{}
	merged := []models.Pharmacy{}
	for i, pharmacies := range results {
		if errs[i] != nil {
			log.Warn().Err(errs[i]).Str("alias", aliases[i]).Msg("pharmacy query failed for region alias, skipping")
			continue
		}
		for _, p := range pharmacies {
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			merged = append(merged, p)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return collation.Compare(merged[i].Name, merged[j].Name) < 0
	})
	return merged, nil
}

// firstErrorIfAllFailed implements the aggregate failure policy: partial
// success is tolerated, total failure is not.
func firstErrorIfAllFailed(aliases []string, errs []error) error {
	failures := 0
	for _, err := range errs {
		if err != nil {
			failures++
		}
	}
	if failures == len(aliases) && failures > 0 {
		return errs[0]
	}
	return nil
}
