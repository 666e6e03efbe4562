package streets

import (
	"math/rand"

	"parkspot-backend/internal/geo"
	"parkspot-backend/internal/points"
)

// Placeholder generation chances per probability band of the source segment.
const (
	placeholderChanceLow  = 0.05
	placeholderChanceMid  = 0.20
	placeholderChanceHigh = 0.30
)

// SamplePlaceholderPoints synthesizes system-owned "likely soon vacant" park
// points from scored segments. This is explicitly stochastic: the chance of a
// placeholder scales with the segment's probability band, its position is a
// random fraction along the segment, and its vacancy window is 10-70 minutes.
// The caller supplies the random source, so tests can pass a fixed seed.
func SamplePlaceholderPoints(segments []Segment, rng *rand.Rand) []points.ParkPoint {
	var out []points.ParkPoint
	for _, seg := range segments {
		if len(seg.Coordinates) < 2 {
			continue
		}
		if rng.Float64() >= placeholderChance(seg.ParkingProbability) {
			continue
		}

		start := seg.Coordinates[0]
		end := seg.Coordinates[len(seg.Coordinates)-1]
		out = append(out, points.ParkPoint{
			Owner:           points.SystemOwner(),
			Coordinate:      geo.Interpolate(start, end, rng.Float64()),
			DurationMinutes: 10 + rng.Intn(60),
		})
	}
	return out
}

func placeholderChance(probability float64) float64 {
	switch {
	case probability < 0.3:
		return placeholderChanceLow
	case probability < 0.7:
		return placeholderChanceMid
	default:
		return placeholderChanceHigh
	}
}
