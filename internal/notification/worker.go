package notification

import (
	"context"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"parkspot-backend/internal/geo"
	"parkspot-backend/internal/model"
)

// Sender defines the interface for sending a web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of Sender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool manages a pool of workers that push vacancy alerts to
// subscribers whose watched area contains a freed-up park point.
type WorkerPool struct {
	size    int
	jobs    chan geo.Coordinate
	db      *gorm.DB
	webpush *webpush.Options
	sender  Sender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan geo.Coordinate, size*8),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

// worker is the actual worker goroutine.
func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Notification worker %d started", id)
	for {
		select {
		case coord := <-wp.jobs:
			wp.notifyArea(ctx, coord)
		case <-ctx.Done():
			log.Printf("Notification worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues a vacated coordinate. Never blocks the caller: when the
// queue is full the alert is dropped, vacancy pushes are best effort.
func (wp *WorkerPool) Dispatch(coord geo.Coordinate) {
	select {
	case wp.jobs <- coord:
	default:
		log.Printf("Notification queue full, dropping vacancy alert for (%f, %f)", coord.Latitude, coord.Longitude)
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan geo.Coordinate {
	return wp.jobs
}

// notifyArea fetches subscriptions and pushes to every one whose area
// contains the vacated coordinate. Subscription counts are small, so the
// distance filter runs in process instead of in SQL.
func (wp *WorkerPool) notifyArea(ctx context.Context, coord geo.Coordinate) {
	var subscriptions []model.PushSubscription
	if err := wp.db.WithContext(ctx).Find(&subscriptions).Error; err != nil {
		log.Printf("Error fetching subscriptions: %v", err)
		return
	}

	message := []byte("A parking spot may have just opened up near you!")
	for _, sub := range subscriptions {
		center := geo.Coordinate{Latitude: sub.Latitude, Longitude: sub.Longitude}
		if geo.DistanceM(center, coord) > sub.RadiusM {
			continue
		}
		wp.sendNotification(ctx, sub, message)
	}
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions
	if resp.StatusCode == 410 {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
