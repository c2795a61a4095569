package repository

import (
	"context"
	"errors"

	"nationwide/internal/models"
)

var ErrNotFound = errors.New("record not found")

type AchievementRepository interface {
	Create(ctx context.Context, a *models.Achievement) error
	GetByID(ctx context.Context, id string) (*models.Achievement, error)
	Update(ctx context.Context, a *models.Achievement) error
	Delete(ctx context.Context, id string) error
	// List returns one page of matches and the total number of matches.
	List(ctx context.Context, filter models.AchievementFilter) ([]*models.Achievement, int64, error)
}

type VideoRepository interface {
	Create(ctx context.Context, v *models.Video) error
	GetByID(ctx context.Context, id string) (*models.Video, error)
	Update(ctx context.Context, v *models.Video) error
	Delete(ctx context.Context, id string) error
	// List orders by display order, then creation time.
	List(ctx context.Context, activeOnly bool) ([]*models.Video, error)
}
