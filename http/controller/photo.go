package controller

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eventsnap/eventsnap-service/entity"
	"github.com/eventsnap/eventsnap-service/http/controller/dto"
	"github.com/eventsnap/eventsnap-service/repository"
	"github.com/eventsnap/eventsnap-service/utils"
)

const photoContentType = "image/jpeg"

func (ctrl *Controller) UploadPhoto(c *gin.Context) {
	ctx := c.Request.Context()
	eventID := c.Param("eventId")

	var req dto.UploadPhotoRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Photo] Failed to bind UploadPhoto request: %v", err)
		utils.JSON400(c, "Missing photo data or user ID")
		return
	}

	event, err := ctrl.Repository.EventRepo.FindActiveByID(ctx, eventID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEventNotFound):
			utils.JSON404(c, "Event not found")
		case errors.Is(err, repository.ErrEventExpired):
			utils.JSON410(c, "Event has expired")
		default:
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Photo] Failed to fetch event %s", eventID)
			utils.JSON500(c, "Failed to upload photo")
		}
		return
	}

	// Quota check. Read-then-write, not a reservation: two concurrent
	// uploads at the boundary can both pass and overshoot by one.
	count, err := ctrl.Repository.PhotoRepo.CountByEventAndUser(ctx, eventID, req.UserID)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Photo] Failed to count photos for event %s, user %s", eventID, req.UserID)
		utils.JSON500(c, "Failed to upload photo")
		return
	}
	if count >= event.MaxPhotosPerUser {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Photo] User %s reached quota %d on event %s", req.UserID, event.MaxPhotosPerUser, eventID)
		utils.JSON403(c, "Photo limit reached")
		return
	}

	data, err := utils.DecodeImageDataURL(req.PhotoData)
	if err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Photo] Invalid photo payload for event %s: %v", eventID, err)
		utils.JSON400(c, "Invalid photo data")
		return
	}

	maxSize := ctrl.Config.EnvConfig.Photo.MaxSizeBytes
	if int64(len(data)) > maxSize {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Photo] Photo of %d bytes exceeds limit %d on event %s", len(data), maxSize, eventID)
		utils.JSON400(c, "Photo exceeds maximum allowed size")
		return
	}

	photoID := uuid.NewString()
	path := entity.PhotoObjectPath(eventID, req.UserID, photoID)
	bucket := ctrl.Config.EnvConfig.Photo.Bucket

	// Blob first, metadata second: a failed blob write leaves nothing to
	// roll back, and metadata is never written for a missing blob.
	if err := ctrl.Infra.Storage.PutObject(ctx, bucket, path, data, photoContentType); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Photo] Storage upload failed for %s", path)
		utils.JSON500(c, "Failed to upload photo")
		return
	}

	photo := &entity.Photo{
		ID:         photoID,
		EventID:    eventID,
		UserID:     req.UserID,
		Path:       path,
		UploadedAt: time.Now(),
	}

	if err := ctrl.Repository.PhotoRepo.Create(ctx, photo); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Photo] Failed to persist metadata for %s", path)
		utils.JSON500(c, "Failed to upload photo")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Photo] Stored photo %s for event %s, user %s (%d/%d)",
		photoID, eventID, req.UserID, count+1, event.MaxPhotosPerUser)

	utils.JSON200(c, gin.H{"photo": photo})
}

func (ctrl *Controller) ListPhotos(c *gin.Context) {
	ctx := c.Request.Context()
	eventID := c.Param("eventId")

	_, err := ctrl.Repository.EventRepo.FindActiveByID(ctx, eventID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEventNotFound):
			utils.JSON404(c, "Event not found")
		case errors.Is(err, repository.ErrEventExpired):
			utils.JSON410(c, "Event has expired")
		default:
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Photo] Failed to fetch event %s", eventID)
			utils.JSON500(c, "Failed to fetch photos")
		}
		return
	}

	photos, err := ctrl.Repository.PhotoRepo.FindByEvent(ctx, eventID)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Photo] Failed to list photos for event %s", eventID)
		utils.JSON500(c, "Failed to fetch photos")
		return
	}

	bucket := ctrl.Config.EnvConfig.Photo.Bucket
	ttl := ctrl.Config.EnvConfig.Photo.SignedURLTTL
	for i := range photos {
		url, err := ctrl.Infra.Storage.PresignedGetURL(ctx, bucket, photos[i].Path, ttl)
		if err != nil {
			// One bad URL must not fail the whole listing; the photo is
			// returned without a link and the client shows a placeholder.
			ctrl.Infra.Logger.WarningWithContextf(ctx, "[Photo] Failed to presign %s: %v", photos[i].Path, err)
			continue
		}
		photos[i].URL = url
	}

	utils.JSON200(c, gin.H{"photos": photos})
}

func (ctrl *Controller) CountUserPhotos(c *gin.Context) {
	ctx := c.Request.Context()
	eventID := c.Param("eventId")
	userID := c.Param("userId")

	count, err := ctrl.Repository.PhotoRepo.CountByEventAndUser(ctx, eventID, userID)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Photo] Failed to count photos for event %s, user %s", eventID, userID)
		utils.JSON500(c, "Failed to fetch photo count")
		return
	}

	utils.JSON200(c, gin.H{"count": count})
}
