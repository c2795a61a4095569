package service

import (
	"context"
	"fmt"
	"io"
	"sync"

	"nationwide/internal/media"
	"nationwide/internal/models"
	"nationwide/internal/repository"
)

func newMemAchievementRepo(items ...*models.Achievement) *repository.MemoryAchievementRepository {
	r := repository.NewMemoryAchievementRepository()
	for _, a := range items {
		_ = r.Create(context.Background(), a)
	}
	return r
}

func newMemVideoRepo(items ...*models.Video) *repository.MemoryVideoRepository {
	r := repository.NewMemoryVideoRepository()
	for _, v := range items {
		_ = r.Create(context.Background(), v)
	}
	return r
}

// fakeStore records uploads and deletions.
type fakeStore struct {
	mu        sync.Mutex
	uploads   []media.Upload
	deleted   []string
	uploadErr error
	next      int
}

func (s *fakeStore) Upload(_ context.Context, up media.Upload) (*media.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	_, _ = io.Copy(io.Discard, up.Body)
	s.uploads = append(s.uploads, up)
	s.next++
	id := fmt.Sprintf("%s-%d", up.Kind, s.next)
	return &media.Asset{URL: "https://cdn.example/" + id, PublicID: id, Duration: 30}, nil
}

func (s *fakeStore) Delete(_ context.Context, publicID string, _ media.Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, publicID)
	return nil
}
