package utils

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Distance units accepted by the geo routes.
const (
	UnitMiles      = "mi"
	UnitKilometers = "km"
)

const (
	earthRadiusKm = 6378.1
	earthRadiusMi = 3963.2
)

var (
	ErrUnknownUnit   = errors.New("unknown distance unit")
	ErrInvalidLatLng = errors.New("invalid lat,lng pair")
)

func degToRad(d float64) float64 {
	return d * (math.Pi / 180)
}

// HaversineDistance returns the great-circle distance between two points in
// the given unit.
func HaversineDistance(lat1, lng1, lat2, lng2 float64, unit string) (float64, error) {
	radius, err := EarthRadius(unit)
	if err != nil {
		return 0, err
	}

	dLat := degToRad(lat2 - lat1)
	dLng := degToRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degToRad(lat1))*math.Cos(degToRad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return radius * c, nil
}

// EarthRadius returns the earth radius in unit.
func EarthRadius(unit string) (float64, error) {
	switch unit {
	case UnitMiles:
		return earthRadiusMi, nil
	case UnitKilometers:
		return earthRadiusKm, nil
	default:
		return 0, ErrUnknownUnit
	}
}

// ParseLatLng parses a "lat,lng" path segment.
func ParseLatLng(s string) (lat, lng float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, ErrInvalidLatLng
	}

	lat, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil || lat < -90 || lat > 90 {
		return 0, 0, ErrInvalidLatLng
	}
	lng, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || lng < -180 || lng > 180 {
		return 0, 0, ErrInvalidLatLng
	}

	return lat, lng, nil
}
