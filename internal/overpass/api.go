package overpass

// apiResponse models the top-level structure of the Overpass API's response.
type apiResponse struct {
	Elements []apiElement `json:"elements"`
}

// apiElement is a single way with its inline geometry (from `out geom`).
type apiElement struct {
	Type     string            `json:"type"`
	ID       int64             `json:"id"`
	Tags     map[string]string `json:"tags"`
	Geometry []apiCoordinate   `json:"geometry"`
}

type apiCoordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
