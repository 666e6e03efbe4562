package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"parkspot-backend/config"
	"parkspot-backend/internal/geo"
	"parkspot-backend/internal/streets"
)

// Client fetches drivable ways near a location from an Overpass API endpoint
// and slices them into two-point street segments.
type Client struct {
	cfg    config.OverpassConfig
	client *http.Client
}

// NewClient creates a road-data fetcher bound by the configured timeout.
func NewClient(cfg config.OverpassConfig) *Client {
	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// NearbyRoads queries the Overpass API for highway ways around center and
// returns their geometry as raw segments.
func (c *Client) NearbyRoads(ctx context.Context, center geo.Coordinate) ([]streets.RawSegment, error) {
	query := fmt.Sprintf(
		`[out:json][timeout:%d];way(around:%d,%f,%f)["highway"];out geom;`,
		c.cfg.TimeoutSeconds, c.cfg.SearchRadiusM, center.Latitude, center.Longitude,
	)

	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for key, value := range c.cfg.Headers {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal api response: %w", err)
	}

	return segmentsFromElements(apiResp.Elements), nil
}

// segmentsFromElements splits each way into consecutive-coordinate-pair
// segments with ids of the form "<wayID>-<index>". The index is stable within
// one fetch but not across providers.
func segmentsFromElements(elements []apiElement) []streets.RawSegment {
	var segments []streets.RawSegment
	for _, el := range elements {
		if el.Type != "way" || len(el.Geometry) < 2 {
			continue
		}
		for i := 0; i < len(el.Geometry)-1; i++ {
			segments = append(segments, streets.RawSegment{
				ID:             fmt.Sprintf("%d-%d", el.ID, i),
				Name:           el.Tags["name"],
				Classification: el.Tags["highway"],
				Coordinates: []geo.Coordinate{
					{Latitude: el.Geometry[i].Lat, Longitude: el.Geometry[i].Lon},
					{Latitude: el.Geometry[i+1].Lat, Longitude: el.Geometry[i+1].Lon},
				},
			})
		}
	}
	return segments
}
