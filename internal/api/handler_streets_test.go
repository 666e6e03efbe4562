package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkspot-backend/internal/geo"
	"parkspot-backend/internal/streets"
)

// stubFetcher serves one canned road and counts calls.
type stubFetcher struct {
	calls int
	err   error
}

func (s *stubFetcher) NearbyRoads(_ context.Context, _ geo.Coordinate) ([]streets.RawSegment, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []streets.RawSegment{{
		ID:             "100-0",
		Name:           "Bahariye Caddesi",
		Classification: "residential",
		Coordinates: []geo.Coordinate{
			{Latitude: 41.0, Longitude: 29.0},
			{Latitude: 41.001, Longitude: 29.001},
		},
	}}, nil
}

func setupStreetsRouter(fetcher streets.RoadFetcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	est := streets.NewEstimator(fetcher, 500, 5*time.Minute)
	handler := NewHandler(nil, est, nil, nil, nil)

	r := gin.New()
	r.GET("/streets", handler.GetStreets)
	return r
}

func getStreets(router *gin.Engine, query string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/streets"+query, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestGetStreets(t *testing.T) {
	fetcher := &stubFetcher{}
	router := setupStreetsRouter(fetcher)

	w := getStreets(router, "?latitude=41.0&longitude=29.0")
	require.Equal(t, http.StatusOK, w.Code)

	var segments []streets.Segment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &segments))
	require.Len(t, segments, 1)
	assert.Equal(t, "Bahariye Caddesi", segments[0].Name)
	assert.GreaterOrEqual(t, segments[0].ParkingProbability, 0.7)
	assert.Less(t, segments[0].ParkingProbability, 1.0)

	// A nearby pan inside the freshness window is a cache hit.
	w = getStreets(router, "?latitude=41.0001&longitude=29.0001")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, fetcher.calls)
}

func TestGetStreetsValidation(t *testing.T) {
	router := setupStreetsRouter(&stubFetcher{})

	assert.Equal(t, http.StatusBadRequest, getStreets(router, "").Code)
	assert.Equal(t, http.StatusBadRequest, getStreets(router, "?latitude=41.0").Code)
	assert.Equal(t, http.StatusBadRequest, getStreets(router, "?latitude=abc&longitude=29.0").Code)
	assert.Equal(t, http.StatusBadRequest, getStreets(router, "?latitude=95.0&longitude=29.0").Code)
}

func TestGetStreetsFetchFailure(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("overpass down")}
	router := setupStreetsRouter(fetcher)

	w := getStreets(router, "?latitude=41.0&longitude=29.0")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "road data unavailable")
}
