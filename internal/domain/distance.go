package domain

import "math"

// earthRadiusKm is the mean Earth radius used by the spherical
// approximation.
const earthRadiusKm = 6371.0

// Distance returns the great-circle distance between two coordinates
// in kilometers, computed with the haversine formula.
//
// The function is pure and symmetric: Distance(a, b) == Distance(b, a),
// and Distance(a, a) == 0.
func Distance(a, b Coordinate) float64 {
	dLat := degToRad(b.Latitude - a.Latitude)
	dLon := degToRad(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degToRad(a.Latitude))*
			math.Cos(degToRad(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func degToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}
