package streets

import "hash/fnv"

// band is a parking-probability range derived from a road classification.
type band int

const (
	bandLow     band = iota // major arterials
	bandLowMid              // secondary roads
	bandMid                 // tertiary roads
	bandHigh                // residential and other minor roads
	bandUnknown             // unclassified or unrecognized tags
)

// bandRange returns the half-open [lo, hi) probability interval for b.
func bandRange(b band) (lo, hi float64) {
	switch b {
	case bandLow:
		return 0.0, 0.3
	case bandLowMid:
		return 0.3, 0.5
	case bandMid:
		return 0.5, 0.7
	case bandHigh:
		return 0.7, 1.0
	default:
		return 0.5, 0.5
	}
}

// classify maps an OSM highway tag to a probability band. Pure and
// deterministic: the same tag always lands in the same band.
func classify(highway string) band {
	switch highway {
	case "motorway", "trunk", "primary", "motorway_link", "trunk_link", "primary_link":
		return bandLow
	case "secondary", "secondary_link":
		return bandLowMid
	case "tertiary", "tertiary_link":
		return bandMid
	case "residential", "living_street", "service":
		return bandHigh
	default:
		return bandUnknown
	}
}

// probabilityFor assigns a parking probability inside the segment's band.
// The position within the band is derived from a hash of the segment id, so
// the same segment scores identically across fetches and restarts.
func probabilityFor(seg RawSegment) float64 {
	b := classify(seg.Classification)
	lo, hi := bandRange(b)
	if hi == lo {
		return lo
	}

	h := fnv.New32a()
	h.Write([]byte(seg.ID))
	frac := float64(h.Sum32()) / (float64(1<<32) + 1) // strictly < 1
	return lo + frac*(hi-lo)
}
