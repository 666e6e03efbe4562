package streets

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"parkspot-backend/internal/geo"
)

// ErrNoData is returned when the road-data fetch fails and no cached result
// exists to fall back on.
var ErrNoData = errors.New("road data unavailable")

// RoadFetcher retrieves raw street segments near a location. Implemented by
// the overpass package.
type RoadFetcher interface {
	NearbyRoads(ctx context.Context, center geo.Coordinate) ([]RawSegment, error)
}

// availabilityCache holds the last successful fetch wholesale. A nil cache
// means no fetch has ever succeeded.
type availabilityCache struct {
	center    geo.Coordinate
	fetchedAt time.Time
	segments  []Segment
}

// Estimator annotates nearby street segments with parking-probability scores,
// caching results by location proximity and fetch time so small map pans do
// not hammer the external data source.
type Estimator struct {
	fetcher RoadFetcher
	radiusM float64
	ttl     time.Duration

	mu    sync.Mutex
	cache *availabilityCache
	now   func() time.Time

	// OnRefresh, when set, is invoked with the freshly scored segments every
	// time the cache is replaced wholesale. Never called on cache hits or
	// stale fallbacks. Set once at wiring time, before first use.
	OnRefresh func([]Segment)
}

// NewEstimator creates an estimator with an empty cache. radiusM is the
// proximity radius within which a cached result is reused; ttl is the
// freshness window.
func NewEstimator(fetcher RoadFetcher, radiusM float64, ttl time.Duration) *Estimator {
	return &Estimator{
		fetcher: fetcher,
		radiusM: radiusM,
		ttl:     ttl,
		now:     time.Now,
	}
}

// GetStreets returns scored street segments near center. A cached result is
// reused only when center is within the proximity radius of the cached
// location AND the cache is still inside the freshness window. On fetch
// failure a stale cache is returned rather than an error; with no cache at
// all the failure surfaces as ErrNoData.
//
// The mutex is held across the external fetch on purpose: the loser of a
// concurrent cache miss waits and reuses the winner's result instead of
// issuing a duplicate fetch. The fetch itself is timeout-bound.
func (e *Estimator) GetStreets(ctx context.Context, center geo.Coordinate) ([]Segment, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	if e.cacheValidLocked(center, now) {
		return e.cache.segments, nil
	}

	raw, err := e.fetcher.NearbyRoads(ctx, center)
	if err != nil {
		if e.cache != nil {
			log.Printf("Road data fetch failed, serving stale street data: %v", err)
			return e.cache.segments, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrNoData, err)
	}

	segments := score(raw)
	e.cache = &availabilityCache{
		center:    center,
		fetchedAt: now,
		segments:  segments,
	}
	if e.OnRefresh != nil {
		e.OnRefresh(segments)
	}
	return segments, nil
}

// cacheValidLocked checks the AND of the proximity and freshness conditions.
func (e *Estimator) cacheValidLocked(center geo.Coordinate, now time.Time) bool {
	if e.cache == nil {
		return false
	}
	if geo.DistanceM(center, e.cache.center) > e.radiusM {
		return false
	}
	return now.Sub(e.cache.fetchedAt) < e.ttl
}

// score assigns probabilities to raw segments, dropping degenerate ones.
func score(raw []RawSegment) []Segment {
	segments := make([]Segment, 0, len(raw))
	for _, r := range raw {
		if degenerate(r) {
			continue
		}
		name := r.Name
		if name == "" {
			name = NameUnknown
		}
		segments = append(segments, Segment{
			ID:                 r.ID,
			Name:               name,
			Coordinates:        r.Coordinates,
			ParkingProbability: probabilityFor(r),
		})
	}
	return segments
}

// degenerate reports whether a segment has no usable length.
func degenerate(r RawSegment) bool {
	if len(r.Coordinates) < 2 {
		return true
	}
	first := r.Coordinates[0]
	for _, c := range r.Coordinates[1:] {
		if geo.DistanceM(first, c) > 0 {
			return false
		}
	}
	return true
}
