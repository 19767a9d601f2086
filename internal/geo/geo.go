// Package geo provides spherical distance math and the radius-containment
// predicate used by post queries.
package geo

import "math"

// EarthRadiusKm is the mean earth radius used for spherical-cap queries.
const EarthRadiusKm = 6371.0

// Point is a WGS84 coordinate.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the point lies within coordinate bounds.
func (p Point) Valid() bool {
	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}

// DistanceKm returns the haversine great-circle distance between two points.
func DistanceKm(a, b Point) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Contains reports whether point lies within the spherical cap defined by
// center and radiusKm.
func Contains(center Point, radiusKm float64, point Point) bool {
	return DistanceKm(center, point) <= radiusKm
}

// Filter is the geographic containment predicate for SQL list queries. A zero
// Filter (Radius 0) matches everything, mirroring the original behavior when
// no location is supplied.
type Filter struct {
	Center   Point
	RadiusKm float64
}

// Enabled reports whether the filter constrains results.
func (f Filter) Enabled() bool {
	return f.RadiusKm > 0 && f.Center.Valid()
}

// SQL returns a WHERE fragment constraining latitude/longitude columns to the
// spherical cap, plus its bind args. The acos argument is clamped to [-1, 1]
// so floating point drift near the center cannot produce NaN.
func (f Filter) SQL() (string, []interface{}) {
	if !f.Enabled() {
		return "1 = 1", nil
	}
	cond := "(? * acos(LEAST(1.0, GREATEST(-1.0, " +
		"cos(radians(?)) * cos(radians(latitude)) * cos(radians(longitude) - radians(?)) + " +
		"sin(radians(?)) * sin(radians(latitude)))))) <= ?"
	args := []interface{}{
		EarthRadiusKm,
		f.Center.Latitude,
		f.Center.Longitude,
		f.Center.Latitude,
		f.RadiusKm,
	}
	return cond, args
}
