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

type VideoService struct {
	repo   repository.VideoRepository
	store  media.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewVideoService(repo repository.VideoRepository, store media.Store, logger *zap.Logger) *VideoService {
	return &VideoService{repo: repo, store: store, logger: logger, now: time.Now}
}

// List returns videos by display order. The public site only sees active ones.
func (s *VideoService) List(ctx context.Context, activeOnly bool) ([]*models.Video, error) {
	videos, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	return nonNil(videos), nil
}

// Upload stores the file and appends a new active video after the existing ones.
func (s *VideoService) Upload(ctx context.Context, form dto.VideoForm, file *FileInput) (*models.Video, error) {
	if file == nil {
		return nil, ErrFileRequired
	}

	existing, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}

	asset, err := s.uploadVideo(ctx, file)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	v := &models.Video{
		ID:          uuid.NewString(),
		Title:       cleanText(form.Title),
		Description: cleanText(form.Description),
		CourseName:  cleanText(form.CourseName),
		URL:         asset.URL,
		PublicID:    asset.PublicID,
		Duration:    asset.Duration,
		Thumbnail:   asset.Thumbnail,
		Order:       len(existing),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		s.deleteMedia(ctx, v.PublicID)
		return nil, fmt.Errorf("failed to create video: %w", err)
	}

	s.logger.Info("Video uploaded", zap.String("id", v.ID), zap.String("title", v.Title))
	return v, nil
}

// Update applies the provided fields. A replacement file is uploaded first and the old media deleted afterwards.
func (s *VideoService) Update(ctx context.Context, id string, upd dto.VideoUpdate, file *FileInput) (*models.Video, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		v.Title = cleanText(*upd.Title)
	}
	if upd.Description != nil {
		v.Description = cleanText(*upd.Description)
	}
	if upd.CourseName != nil {
		v.CourseName = cleanText(*upd.CourseName)
	}
	if upd.Order != nil {
		v.Order = *upd.Order
	}
	if upd.IsActive != nil {
		v.IsActive = *upd.IsActive
	}

	var oldPublicID string
	if file != nil {
		asset, err := s.uploadVideo(ctx, file)
		if err != nil {
			return nil, err
		}
		oldPublicID = v.PublicID
		v.URL, v.PublicID, v.Duration, v.Thumbnail = asset.URL, asset.PublicID, asset.Duration, asset.Thumbnail
	}
	v.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, v); err != nil {
		if file != nil {
			s.deleteMedia(ctx, v.PublicID)
		}
		return nil, err
	}
	if oldPublicID != "" {
		s.deleteMedia(ctx, oldPublicID)
	}
	return v, nil
}

func (s *VideoService) Delete(ctx context.Context, id string) error {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.deleteMedia(ctx, v.PublicID)
	s.logger.Info("Video deleted", zap.String("id", id))
	return nil
}

func (s *VideoService) uploadVideo(ctx context.Context, file *FileInput) (*media.Asset, error) {
	up, err := file.upload(media.KindVideo)
	if err != nil {
		return nil, err
	}
	asset, err := s.store.Upload(ctx, up)
	if err != nil {
		return nil, fmt.Errorf("failed to upload video: %w", err)
	}
	return asset, nil
}

func (s *VideoService) deleteMedia(ctx context.Context, publicID string) {
	if publicID == "" {
		return
	}
	if err := s.store.Delete(ctx, publicID, media.KindVideo); err != nil {
		s.logger.Warn("Failed to delete video media", zap.String("public_id", publicID), zap.Error(err))
	}
}
