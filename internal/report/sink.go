package report

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"parkspot-backend/internal/model"
)

// ErrStorage is returned when the persistence sink rejects a write or read.
var ErrStorage = errors.New("report storage failed")

// recentLimit caps the analytics history listing.
const recentLimit = 100

// Sink persists and lists park reports.
type Sink interface {
	Save(ctx context.Context, r model.ParkReport) (int64, error)
	ListRecent(ctx context.Context) ([]model.ParkReport, error)
}

// gormSink implements Sink using GORM.
type gormSink struct {
	db *gorm.DB
}

// NewGormSink creates a new GORM-backed report sink.
func NewGormSink(db *gorm.DB) Sink {
	return &gormSink{db: db}
}

// Save writes a single report record and returns its assigned id.
func (s *gormSink) Save(ctx context.Context, r model.ParkReport) (int64, error) {
	if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return r.ID, nil
}

// ListRecent returns the newest reports, capped at 100.
func (s *gormSink) ListRecent(ctx context.Context) ([]model.ParkReport, error) {
	var reports []model.ParkReport
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(recentLimit).
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return reports, nil
}
