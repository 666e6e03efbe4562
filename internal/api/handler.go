package api

import (
	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"parkspot-backend/internal/points"
	"parkspot-backend/internal/report"
	"parkspot-backend/internal/streets"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	points    *points.Store
	estimator *streets.Estimator
	reports   report.Sink
	db        *gorm.DB
	webpush   *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(ps *points.Store, est *streets.Estimator, sink report.Sink, db *gorm.DB, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		points:    ps,
		estimator: est,
		reports:   sink,
		db:        db,
		webpush:   webpushOptions,
	}
}
