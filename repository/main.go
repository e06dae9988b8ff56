package repository

import (
	"github.com/eventsnap/eventsnap-service/infra"
)

type Repository struct {
	EventRepo *EventRepository
	PhotoRepo *PhotoRepository
}

func InitRepository(infra *infra.Infra) *Repository {
	if infra == nil || infra.Redis == nil {
		panic("Failed to initialize Repository: Redis client is required")
	}

	return &Repository{
		EventRepo: NewEventRepository(infra.Redis),
		PhotoRepo: NewPhotoRepository(infra.Redis),
	}
}
