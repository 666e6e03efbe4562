package overpass

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkspot-backend/config"
	"parkspot-backend/internal/geo"
)

func testConfig(url string) config.OverpassConfig {
	return config.OverpassConfig{
		URL:            url,
		TimeoutSeconds: 5,
		Timeout:        5 * time.Second,
		SearchRadiusM:  500,
	}
}

func TestNearbyRoads(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotQuery = r.PostFormValue("data")

		resp := apiResponse{
			Elements: []apiElement{
				{
					Type: "way",
					ID:   42,
					Tags: map[string]string{"highway": "residential", "name": "Moda Caddesi"},
					Geometry: []apiCoordinate{
						{Lat: 41.0, Lon: 29.0},
						{Lat: 41.001, Lon: 29.001},
						{Lat: 41.002, Lon: 29.001},
					},
				},
				// A node element and a degenerate way must both be skipped.
				{Type: "node", ID: 7},
				{Type: "way", ID: 43, Geometry: []apiCoordinate{{Lat: 41, Lon: 29}}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	segments, err := client.NearbyRoads(context.Background(), geo.Coordinate{Latitude: 41.0, Longitude: 29.0})
	require.NoError(t, err)

	// A 3-point way yields 2 consecutive-pair segments.
	require.Len(t, segments, 2)
	assert.Equal(t, "42-0", segments[0].ID)
	assert.Equal(t, "42-1", segments[1].ID)
	assert.Equal(t, "Moda Caddesi", segments[0].Name)
	assert.Equal(t, "residential", segments[0].Classification)
	assert.Equal(t, geo.Coordinate{Latitude: 41.001, Longitude: 29.001}, segments[0].Coordinates[1])
	assert.Equal(t, segments[0].Coordinates[1], segments[1].Coordinates[0])

	assert.Contains(t, gotQuery, `way(around:500,`)
	assert.Contains(t, gotQuery, `["highway"]`)
	assert.Contains(t, gotQuery, "out geom")
}

func TestNearbyRoadsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGatewayTimeout)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.NearbyRoads(context.Background(), geo.Coordinate{Latitude: 41.0, Longitude: 29.0})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "non-200")
}
