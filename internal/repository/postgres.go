package repository

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"pharmacy-duty-api/internal/collation"
	"pharmacy-duty-api/internal/dutydate"
	"pharmacy-duty-api/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements the roster record facade for PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// ListCities returns the distinct city labels having at least one on-duty
// record on the given date, in Turkish-collated alphabetical order.
func (r *Repository) ListCities(ctx context.Context, date string) ([]string, error) {
	sql := `
		SELECT DISTINCT city
		FROM pharmacies
		WHERE duty_date = $1::date
	`

	rows, err := r.db.Query(ctx, sql, date)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list cities: %w", err)
	}
	defer rows.Close()

	cities := []string{}
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, fmt.Errorf("repository: failed to scan city: %w", err)
		}
		cities = append(cities, city)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating cities: %w", err)
	}

	collation.SortLabels(cities)
	return cities, nil
}

// ListDistricts returns the distinct district labels of a city (matched
// case-insensitively) on the given date, in Turkish-collated order.
func (r *Repository) ListDistricts(ctx context.Context, city, date string) ([]string, error) {
	sql := `
		SELECT DISTINCT district
		FROM pharmacies
		WHERE duty_date = $1::date AND LOWER(city) = LOWER($2)
	`

	rows, err := r.db.Query(ctx, sql, date, city)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list districts: %w", err)
	}
	defer rows.Close()

	districts := []string{}
	for rows.Next() {
		var district string
		if err := rows.Scan(&district); err != nil {
			return nil, fmt.Errorf("repository: failed to scan district: %w", err)
		}
		districts = append(districts, district)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating districts: %w", err)
	}

	collation.SortLabels(districts)
	return districts, nil
}

// ListPharmacies returns the full roster records for a city on the given
// date, optionally narrowed to one district. City and district match
// case-insensitively; an empty district applies no district filter.
func (r *Repository) ListPharmacies(ctx context.Context, city, district, date string) ([]models.Pharmacy, error) {
	sql := `
		SELECT id, city, district, name, address, phone, duty_date, latitude, longitude
		FROM pharmacies
		WHERE duty_date = $1::date AND LOWER(city) = LOWER($2)
	`
	args := []interface{}{date, city}
	if district != "" {
		sql += ` AND LOWER(district) = LOWER($3)`
		args = append(args, district)
	}
	sql += ` ORDER BY name`

	return r.queryPharmacies(ctx, sql, args...)
}

// ListAllOnDuty returns every roster record for the given date regardless of
// region, ordered by name. Feeds the proximity queries.
func (r *Repository) ListAllOnDuty(ctx context.Context, date string) ([]models.Pharmacy, error) {
	sql := `
		SELECT id, city, district, name, address, phone, duty_date, latitude, longitude
		FROM pharmacies
		WHERE duty_date = $1::date
		ORDER BY name
	`
	return r.queryPharmacies(ctx, sql, date)
}

func (r *Repository) queryPharmacies(ctx context.Context, sql string, args ...interface{}) ([]models.Pharmacy, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query pharmacies: %w", err)
	}
	defer rows.Close()

	pharmacies := []models.Pharmacy{}
	for rows.Next() {
		var (
			p        models.Pharmacy
			dutyDate time.Time
			lat, lng *string
		)
		err := rows.Scan(
			&p.ID,
			&p.City,
			&p.District,
			&p.Name,
			&p.Address,
			&p.Phone,
			&dutyDate,
			&lat,
			&lng,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan pharmacy: %w", err)
		}
		p.DutyDate = dutyDate.Format(dutydate.DateLayout)
		p.Latitude = parseCoordinate(lat)
		p.Longitude = parseCoordinate(lng)
		pharmacies = append(pharmacies, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating pharmacies: %w", err)
	}

	return pharmacies, nil
}

// parseCoordinate normalizes a stored coordinate. The upstream store keeps
// coordinates as text and sometimes omits them; anything absent, unparsable
// or non-finite becomes 0 so the geolocatability check stays a plain
// comparison downstream.
func parseCoordinate(raw *string) float64 {
	if raw == nil {
		return 0
	}
	v, err := strconv.ParseFloat(*raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
