package spatial

import (
	"github.com/golang/geo/s2"
)

const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers
)

// GreatCircleMeters calculates the great-circle distance between two
// coordinates in meters. Coordinates are WGS84 degrees; the spherical-earth
// angle comes from the s2 geometry library, which is equivalent to the
// Haversine formula and stable for very small separations.
func GreatCircleMeters(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// SpeedKmh converts a distance in meters over an elapsed time in seconds to
// km/h. The caller guarantees deltaS > 0.
func SpeedKmh(distanceM, deltaS float64) float64 {
	return distanceM / deltaS * 3.6
}
