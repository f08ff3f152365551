package models

import "math"

// Pharmacy represents a single pharmacy's on-duty roster entry for one calendar date.
type Pharmacy struct {
	ID        int64   `json:"id"`
	City      string  `json:"city"`
	District  string  `json:"district"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Phone     string  `json:"phone"`
	DutyDate  string  `json:"duty_date"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Geolocatable reports whether the record carries usable coordinates.
// A (0, 0) pair marks a record whose coordinates were absent or unparsable
// in the store, and non-finite values are never usable for distance math.
func (p Pharmacy) Geolocatable() bool {
	if p.Latitude == 0 && p.Longitude == 0 {
		return false
	}
	if math.IsNaN(p.Latitude) || math.IsInf(p.Latitude, 0) {
		return false
	}
	if math.IsNaN(p.Longitude) || math.IsInf(p.Longitude, 0) {
		return false
	}
	return true
}

// RankedPharmacy is a Pharmacy annotated with its computed distance from a
// query origin. Produced only for proximity queries, never persisted.
type RankedPharmacy struct {
	Pharmacy
	DistanceKm float64 `json:"distance_km"`
}
