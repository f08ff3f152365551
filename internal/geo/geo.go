package geo

import (
	"errors"
	"math"
)

// EarthRadiusKm is the Earth's mean radius in kilometers.
const EarthRadiusKm = 6371.0

// Validation errors. The message text is part of the API contract and is
// returned to clients verbatim, so it must not change.
var (
	ErrNotANumber          = errors.New("Latitude and longitude must be numbers")
	ErrNaNCoordinate       = errors.New("Latitude and longitude cannot be NaN")
	ErrLatitudeOutOfRange  = errors.New("Latitude must be between -90 and 90 degrees")
	ErrLongitudeOutOfRange = errors.New("Longitude must be between -180 and 180 degrees")
)

// ValidateCoordinates checks a coordinate pair. Checks run in a fixed order
// and the first failure wins: NaN, then latitude range, then longitude range.
func ValidateCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return ErrNaNCoordinate
	}
	if lat < -90 || lat > 90 {
		return ErrLatitudeOutOfRange
	}
	if lng < -180 || lng > 180 {
		return ErrLongitudeOutOfRange
	}
	return nil
}

// DistanceKm computes the great-circle distance between two points using the
// haversine formula, rounded to two decimal places. Both points are
// re-validated so an invalid input can never come back as a plausible number.
func DistanceKm(lat1, lng1, lat2, lng2 float64) (float64, error) {
	if err := ValidateCoordinates(lat1, lng1); err != nil {
		return 0, err
	}
	if err := ValidateCoordinates(lat2, lng2); err != nil {
		return 0, err
	}

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Round(EarthRadiusKm*c*100) / 100, nil
}
