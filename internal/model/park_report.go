package model

import "time"

// Report type values accepted from clients.
const (
	ReportTypeParked        = "parked"
	ReportTypeWrongLocation = "wrong_location"
)

// ValidReportType reports whether t is a recognized report type.
func ValidReportType(t string) bool {
	return t == ReportTypeParked || t == ReportTypeWrongLocation
}

// ParkReport is a persisted record of a user reporting a spot as taken or wrong.
// The core only ever writes these; reads are served straight to the analytics view.
type ParkReport struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID    string    `gorm:"size:64;index;not null" json:"ownerId"`
	Latitude   float64   `gorm:"not null" json:"latitude"`
	Longitude  float64   `gorm:"not null" json:"longitude"`
	ReportType string    `gorm:"size:32;not null" json:"reportType"`
	StreetName string    `gorm:"size:256" json:"streetName"`
	CreatedAt  time.Time `gorm:"not null;index" json:"createdAt"`
}
