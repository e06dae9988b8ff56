package controller

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eventsnap/eventsnap-service/entity"
	"github.com/eventsnap/eventsnap-service/http/controller/dto"
	"github.com/eventsnap/eventsnap-service/repository"
	"github.com/eventsnap/eventsnap-service/utils"
)

func (ctrl *Controller) CreateEvent(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateEventRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Event] Failed to bind CreateEvent request: %v", err)
		utils.JSON400(c, "Missing required fields")
		return
	}

	maxExpiryDays := ctrl.Config.EnvConfig.Photo.MaxExpiryDays
	if req.ExpiryDays > maxExpiryDays {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Event] Rejected expiryDays=%d above limit %d", req.ExpiryDays, maxExpiryDays)
		utils.JSON400(c, fmt.Sprintf("Maximum expiry time is %d days", maxExpiryDays))
		return
	}

	now := time.Now()
	event := &entity.Event{
		ID:               uuid.NewString(),
		Name:             req.Name,
		MaxPhotosPerUser: req.MaxPhotosPerUser,
		ExpiryDays:       req.ExpiryDays,
		ExpiresAt:        now.AddDate(0, 0, req.ExpiryDays),
		CreatedAt:        now,
	}

	if err := ctrl.Repository.EventRepo.Create(ctx, event); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Event] Failed to create event '%s'", req.Name)
		utils.JSON500(c, "Failed to create event")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Event] Created event %s ('%s'), quota %d, expires %s",
		event.ID, event.Name, event.MaxPhotosPerUser, event.ExpiresAt.Format(time.RFC3339))

	utils.JSON200(c, gin.H{"event": event})
}

func (ctrl *Controller) GetEvent(c *gin.Context) {
	ctx := c.Request.Context()
	eventID := c.Param("eventId")

	event, err := ctrl.Repository.EventRepo.FindActiveByID(ctx, eventID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEventNotFound):
			utils.JSON404(c, "Event not found")
		case errors.Is(err, repository.ErrEventExpired):
			utils.JSON410(c, "Event has expired")
		default:
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Event] Failed to fetch event %s", eventID)
			utils.JSON500(c, "Failed to fetch event")
		}
		return
	}

	utils.JSON200(c, gin.H{"event": event})
}
