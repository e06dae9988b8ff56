package entity

import "time"

// Event is a time-boxed shared photo album. ExpiresAt is fixed at creation
// (CreatedAt + ExpiryDays days) and never recomputed; the record stays in the
// store after expiry until the sweeper removes it.
type Event struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	MaxPhotosPerUser int       `json:"maxPhotosPerUser"`
	ExpiryDays       int       `json:"expiryDays"`
	ExpiresAt        time.Time `json:"expiresAt"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Expired reports whether the event's expiry deadline has passed at t.
func (e *Event) Expired(t time.Time) bool {
	return t.After(e.ExpiresAt)
}
