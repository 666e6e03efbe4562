package streets

import "parkspot-backend/internal/geo"

// NameUnknown is the sentinel street name for ways without a name tag.
const NameUnknown = "unknown"

// RawSegment is a not-yet-scored street segment as returned by the road-data
// fetcher: geometry plus the source's road classification tag.
type RawSegment struct {
	ID             string
	Name           string
	Classification string
	Coordinates    []geo.Coordinate
}

// Segment is a street segment annotated with a parking-probability estimate.
type Segment struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	Coordinates        []geo.Coordinate `json:"coordinates"`
	ParkingProbability float64          `json:"parkingProbability"`
}
