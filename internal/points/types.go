package points

import (
	"time"

	"parkspot-backend/internal/geo"
)

// OwnerKind distinguishes user-created claims from estimator placeholders.
type OwnerKind string

const (
	OwnerKindUser   OwnerKind = "user"
	OwnerKindSystem OwnerKind = "system"
)

// Owner is a tagged variant: either a real user id or the system sentinel.
// Representing this as a struct instead of a magic string keeps user ids from
// ever colliding with the sentinel.
type Owner struct {
	Kind   OwnerKind
	UserID string
}

// UserOwner returns an owner for the given user id.
func UserOwner(userID string) Owner {
	return Owner{Kind: OwnerKindUser, UserID: userID}
}

// SystemOwner returns the system sentinel owner used for placeholder points.
func SystemOwner() Owner {
	return Owner{Kind: OwnerKindSystem}
}

// IsSystem reports whether the owner is the system sentinel.
func (o Owner) IsSystem() bool {
	return o.Kind == OwnerKindSystem
}

// String renders the owner the way the API serializes it.
func (o Owner) String() string {
	if o.IsSystem() {
		return "system"
	}
	return o.UserID
}

// ParkPoint is a time-boxed claim that a coordinate is occupied, or a
// system-synthesized placeholder suggesting likely future vacancy.
type ParkPoint struct {
	ID              string
	Owner           Owner
	Coordinate      geo.Coordinate
	CreatedAt       time.Time
	DurationMinutes int

	// RemainingMinutes is derived on every read, never stored.
	RemainingMinutes int
}

// endTime is the instant at which the claim lapses.
func (p ParkPoint) endTime() time.Time {
	return p.CreatedAt.Add(time.Duration(p.DurationMinutes) * time.Minute)
}
