package datecard

import (
	"strings"
)

// DefaultCity is used when neither participant has a location.
const DefaultCity = "New York, NY"

// LocationCity extracts the city from "City, State" or "City, Country".
func LocationCity(location string) string {
	city, _, _ := strings.Cut(location, ",")
	return strings.TrimSpace(city)
}

// SharedLocation picks where the date should happen. Same city wins; else
// whoever has a location; two different cities are decided by coin flip
// rather than by a geographic midpoint.
func SharedLocation(a, b, defaultCity string, rng Rand) string {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)

	switch {
	case a != "" && b != "" && strings.EqualFold(LocationCity(a), LocationCity(b)):
		return a
	case a != "" && b == "":
		return a
	case a == "" && b != "":
		return b
	case a != "" && b != "":
		if rng.Intn(2) == 0 {
			return a
		}
		return b
	}

	if defaultCity == "" {
		return DefaultCity
	}
	return defaultCity
}
