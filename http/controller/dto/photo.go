package dto

// UploadPhotoRequestDTO carries one captured photo as a base64 data URL plus
// the anonymous uploader id the client keeps in its local session state.
type UploadPhotoRequestDTO struct {
	PhotoData string `json:"photoData" binding:"required"`
	UserID    string `json:"userId" binding:"required"`
}
