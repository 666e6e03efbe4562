package points

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"parkspot-backend/internal/geo"
	"parkspot-backend/internal/model"
)

var (
	// ErrNotFound is returned when no active point carries the requested id.
	ErrNotFound = errors.New("park point not found")
	// ErrForbidden is returned when the requester does not own the point.
	ErrForbidden = errors.New("park point owned by another user")
	// ErrInvalidDuration is returned for non-positive claim durations.
	ErrInvalidDuration = errors.New("duration must be a positive number of minutes")
	// ErrInvalidCoordinate is returned for coordinates outside WGS84 ranges.
	ErrInvalidCoordinate = errors.New("coordinate out of range")
)

// ReportSink persists park reports. Implemented by the report package.
type ReportSink interface {
	Save(ctx context.Context, r model.ParkReport) (int64, error)
}

// VacancyNotifier is told about coordinates where a spot has just freed up.
type VacancyNotifier interface {
	Dispatch(c geo.Coordinate)
}

// Store owns the set of currently-active park points. All access goes through
// a single mutex; every read sweeps expired points first, so callers never
// observe a point whose remaining time has reached zero.
type Store struct {
	mu       sync.Mutex
	points   []ParkPoint // insertion order
	sink     ReportSink
	notifier VacancyNotifier
	now      func() time.Time
}

// NewStore creates an empty store. notifier may be nil.
func NewStore(sink ReportSink, notifier VacancyNotifier) *Store {
	return &Store{
		sink:     sink,
		notifier: notifier,
		now:      time.Now,
	}
}

// remainingMinutes computes ceil((endTime - now) / minute), floored at zero.
func remainingMinutes(p ParkPoint, now time.Time) int {
	end := p.endTime()
	if !end.After(now) {
		return 0
	}
	return int(math.Ceil(end.Sub(now).Minutes()))
}

// sweepLocked drops every expired point. Expired user-owned claims are treated
// as freshly vacated spots and handed to the notifier. Callers must hold mu.
func (s *Store) sweepLocked(now time.Time) {
	kept := s.points[:0]
	for _, p := range s.points {
		if remainingMinutes(p, now) > 0 {
			kept = append(kept, p)
			continue
		}
		if s.notifier != nil && !p.Owner.IsSystem() {
			s.notifier.Dispatch(p.Coordinate)
		}
	}
	s.points = kept
}

// activeLocked returns a copy of the active set with remaining time attached.
func (s *Store) activeLocked(now time.Time) []ParkPoint {
	out := make([]ParkPoint, len(s.points))
	for i, p := range s.points {
		p.RemainingMinutes = remainingMinutes(p, now)
		out[i] = p
	}
	return out
}

// ListActive sweeps expired points and returns the remaining active set.
func (s *Store) ListActive() []ParkPoint {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)
	return s.activeLocked(now)
}

// Create validates and registers a new user claim. The returned point carries
// its assigned id and an initial remaining time equal to the claimed duration.
func (s *Store) Create(owner Owner, coord geo.Coordinate, durationMinutes int) (ParkPoint, error) {
	if durationMinutes <= 0 {
		return ParkPoint{}, fmt.Errorf("%w: got %d", ErrInvalidDuration, durationMinutes)
	}
	if !coord.Valid() {
		return ParkPoint{}, fmt.Errorf("%w: (%v, %v)", ErrInvalidCoordinate, coord.Latitude, coord.Longitude)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	p := ParkPoint{
		ID:              uuid.NewString(),
		Owner:           owner,
		Coordinate:      coord,
		CreatedAt:       now,
		DurationMinutes: durationMinutes,
	}
	s.points = append(s.points, p)

	p.RemainingMinutes = durationMinutes
	return p, nil
}

// AddPlaceholders admits estimator-synthesized system points. Points that are
// invalid or already expired are skipped silently.
func (s *Store) AddPlaceholders(placeholders []ParkPoint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)
	for _, p := range placeholders {
		if !p.Coordinate.Valid() || p.DurationMinutes <= 0 {
			continue
		}
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		p.Owner = SystemOwner()
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		s.points = append(s.points, p)
	}
}

// Delete removes the point with the given id if the requesting user owns it.
// System placeholders can never be deleted through this path.
func (s *Store) Delete(id, requestingUserID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	for i, p := range s.points {
		if p.ID != id {
			continue
		}
		if p.Owner.IsSystem() || p.Owner.UserID != requestingUserID {
			return ErrForbidden
		}
		s.points = append(s.points[:i], s.points[i+1:]...)
		if s.notifier != nil {
			s.notifier.Dispatch(p.Coordinate)
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ReportAndRemove removes the point and persists a report attributed to the
// reporting user. The removal is the priority: if the sink write fails, the
// point is still gone and the error is returned alongside the updated set.
func (s *Store) ReportAndRemove(ctx context.Context, id, reporterID, reportType string) ([]ParkPoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	idx := -1
	for i, p := range s.points {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	removed := s.points[idx]
	s.points = append(s.points[:idx], s.points[idx+1:]...)

	remaining := s.activeLocked(now)

	_, err := s.sink.Save(ctx, model.ParkReport{
		OwnerID:    reporterID,
		Latitude:   removed.Coordinate.Latitude,
		Longitude:  removed.Coordinate.Longitude,
		ReportType: reportType,
		CreatedAt:  now,
	})
	if err != nil {
		return remaining, fmt.Errorf("point %s removed but report not persisted: %w", id, err)
	}
	return remaining, nil
}

// Run sweeps expired points on a fixed interval until ctx is cancelled, so
// vacancy notifications fire even when nobody is reading.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	log.Printf("Starting park point sweeper (interval %s)", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Park point sweeper shutting down.")
			return
		case <-ticker.C:
			s.mu.Lock()
			s.sweepLocked(s.now())
			s.mu.Unlock()
		}
	}
}
