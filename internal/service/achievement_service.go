package service

import (
	"context"
	"fmt"
	"time"

	"nationwide/internal/dto"
	"nationwide/internal/media"
	"nationwide/internal/models"
	"nationwide/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultAchievementPage  = 1
	defaultAchievementLimit = 12
	dateLayout              = "2006-01-02"
)

type AchievementService struct {
	repo   repository.AchievementRepository
	store  media.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewAchievementService(repo repository.AchievementRepository, store media.Store, logger *zap.Logger) *AchievementService {
	return &AchievementService{repo: repo, store: store, logger: logger, now: time.Now}
}

// ListAdmin returns one page for the admin screen, optionally filtered by name.
func (s *AchievementService) ListAdmin(ctx context.Context, q dto.AdminAchievementQuery) (*dto.AdminAchievementList, error) {
	page, limit := pageAndLimit(q.Page, q.Limit)
	items, total, err := s.repo.List(ctx, models.AchievementFilter{
		Search:   cleanText(q.Name),
		SortBy:   models.AchievementSortCreatedAt,
		SortDesc: true,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}

	return &dto.AdminAchievementList{
		Achievements:      nonNil(items),
		CurrentPage:       page,
		TotalPages:        totalPages(total, limit),
		TotalAchievements: total,
	}, nil
}

// ListPublic backs the public achievements page. Defaults to newest date first.
func (s *AchievementService) ListPublic(ctx context.Context, q dto.PublicAchievementQuery) (*dto.PublicAchievementList, error) {
	page, limit := pageAndLimit(q.Page, q.Limit)
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = models.AchievementSortDate
	}

	items, total, err := s.repo.List(ctx, models.AchievementFilter{
		Search:   cleanText(q.Search),
		SortBy:   sortBy,
		SortDesc: q.SortOrder != "asc",
		Limit:    limit,
		Offset:   (page - 1) * limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}

	return &dto.PublicAchievementList{
		Data: nonNil(items),
		Pagination: dto.Pagination{
			CurrentPage: page,
			TotalPages:  totalPages(total, limit),
			TotalItems:  total,
			Limit:       limit,
		},
	}, nil
}

func (s *AchievementService) Get(ctx context.Context, id string) (*models.Achievement, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AchievementService) Create(ctx context.Context, form dto.AchievementForm, photo *FileInput) (*models.Achievement, error) {
	date, err := time.Parse(dateLayout, form.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	now := s.now().UTC()
	a := &models.Achievement{
		ID:          uuid.NewString(),
		Title:       cleanText(form.Title),
		Description: cleanText(form.Description),
		StudentName: cleanText(form.StudentName),
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if photo != nil {
		m, err := s.uploadPhoto(ctx, photo)
		if err != nil {
			return nil, err
		}
		a.Photo = m
	}

	if err := s.repo.Create(ctx, a); err != nil {
		if a.Photo != nil {
			s.deleteMedia(ctx, a.Photo.PublicID)
		}
		return nil, fmt.Errorf("failed to create achievement: %w", err)
	}

	s.logger.Info("Achievement created", zap.String("id", a.ID), zap.String("title", a.Title))
	return a, nil
}

// Update applies the non-empty form fields. A new photo replaces the old one, which is then deleted.
func (s *AchievementService) Update(ctx context.Context, id string, form dto.AchievementUpdateForm, photo *FileInput) (*models.Achievement, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if v := cleanText(form.Title); v != "" {
		a.Title = v
	}
	if v := cleanText(form.Description); v != "" {
		a.Description = v
	}
	if v := cleanText(form.StudentName); v != "" {
		a.StudentName = v
	}
	if form.Date != "" {
		date, err := time.Parse(dateLayout, form.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
		}
		a.Date = date
	}

	var oldPhoto *models.Media
	if photo != nil {
		m, err := s.uploadPhoto(ctx, photo)
		if err != nil {
			return nil, err
		}
		oldPhoto, a.Photo = a.Photo, m
	}
	a.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, a); err != nil {
		if photo != nil {
			s.deleteMedia(ctx, a.Photo.PublicID)
		}
		return nil, err
	}
	if oldPhoto != nil {
		s.deleteMedia(ctx, oldPhoto.PublicID)
	}
	return a, nil
}

func (s *AchievementService) Delete(ctx context.Context, id string) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if a.Photo != nil {
		s.deleteMedia(ctx, a.Photo.PublicID)
	}
	s.logger.Info("Achievement deleted", zap.String("id", id))
	return nil
}

func (s *AchievementService) uploadPhoto(ctx context.Context, photo *FileInput) (*models.Media, error) {
	up, err := photo.upload(media.KindImage)
	if err != nil {
		return nil, err
	}
	asset, err := s.store.Upload(ctx, up)
	if err != nil {
		return nil, fmt.Errorf("failed to upload photo: %w", err)
	}
	return &models.Media{URL: asset.URL, PublicID: asset.PublicID}, nil
}

// deleteMedia is best effort: the record change has already been committed.
func (s *AchievementService) deleteMedia(ctx context.Context, publicID string) {
	if err := s.store.Delete(ctx, publicID, media.KindImage); err != nil {
		s.logger.Warn("Failed to delete photo", zap.String("public_id", publicID), zap.Error(err))
	}
}

func pageAndLimit(page, limit int) (int, int) {
	if page < 1 {
		page = defaultAchievementPage
	}
	if limit < 1 {
		limit = defaultAchievementLimit
	}
	return page, limit
}

func nonNil[T any](items []*T) []*T {
	if items == nil {
		return []*T{}
	}
	return items
}
