package dto

// CreateEventRequestDTO carries the organizer's event settings. Field names
// follow the capture client's wire format. The quota upper bound is enforced
// client-side only; the server requires presence and positivity.
type CreateEventRequestDTO struct {
	Name             string `json:"name" binding:"required,max=255"`
	MaxPhotosPerUser int    `json:"maxPhotosPerUser" binding:"required,min=1"`
	ExpiryDays       int    `json:"expiryDays" binding:"required,min=1"`
}
