package model

import "time"

// PushSubscription holds a browser push subscription tied to a map area.
// The subscriber is notified when a park point inside the area becomes vacant.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	Latitude  float64   `gorm:"not null"`
	Longitude float64   `gorm:"not null"`
	RadiusM   float64   `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}
