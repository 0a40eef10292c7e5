// Package geo provides great-circle distance and travel-time estimation.
package geo

import "math"

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// averageSpeedKmh is the assumed travel speed for ETA estimation.
const averageSpeedKmh = 40.0

// HaversineKm returns the great-circle distance in kilometers between two
// points given in decimal degrees.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	dPhi := radians(lat2 - lat1)
	dLambda := radians(lon2 - lon1)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// ETAMinutes estimates travel time in whole minutes for the given distance,
// assuming a fixed 40 km/h average speed. This is a coarse approximation,
// not a routed ETA.
func ETAMinutes(distanceKm float64) int {
	return int(math.Round(distanceKm / averageSpeedKmh * 60))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
