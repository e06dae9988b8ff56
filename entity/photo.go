package entity

import (
	"fmt"
	"time"
)

// Photo is the metadata record for one uploaded photo. The binary lives in
// object storage under Path; URL is only populated when listing, with a
// short-lived presigned link.
type Photo struct {
	ID         string    `json:"id"`
	EventID    string    `json:"eventId"`
	UserID     string    `json:"userId"`
	Path       string    `json:"path"`
	UploadedAt time.Time `json:"uploadedAt"`
	URL        string    `json:"url,omitempty"`
}

// PhotoObjectPath derives the storage key for a photo, eventId/userId/photoId
// with a fixed jpg extension.
func PhotoObjectPath(eventID, userID, photoID string) string {
	return fmt.Sprintf("%s/%s/%s.jpg", eventID, userID, photoID)
}
