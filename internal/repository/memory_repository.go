package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"nationwide/internal/models"
)

// MemoryAchievementRepository keeps achievements in process memory. Used by the memory driver and tests.
type MemoryAchievementRepository struct {
	mu    sync.RWMutex
	items map[string]models.Achievement
}

func NewMemoryAchievementRepository() *MemoryAchievementRepository {
	return &MemoryAchievementRepository{items: make(map[string]models.Achievement)}
}

func (r *MemoryAchievementRepository) Create(_ context.Context, a *models.Achievement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[a.ID] = *a
	return nil
}

func (r *MemoryAchievementRepository) GetByID(_ context.Context, id string) (*models.Achievement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (r *MemoryAchievementRepository) Update(_ context.Context, a *models.Achievement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[a.ID]; !ok {
		return ErrNotFound
	}
	r.items[a.ID] = *a
	return nil
}

func (r *MemoryAchievementRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *MemoryAchievementRepository) List(_ context.Context, filter models.AchievementFilter) ([]*models.Achievement, int64, error) {
	r.mu.RLock()
	search := strings.ToLower(filter.Search)
	matches := make([]*models.Achievement, 0, len(r.items))
	for _, a := range r.items {
		if search == "" ||
			strings.Contains(strings.ToLower(a.Title), search) ||
			strings.Contains(strings.ToLower(a.Description), search) ||
			strings.Contains(strings.ToLower(a.StudentName), search) {
			a := a
			matches = append(matches, &a)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(matches, func(i, j int) bool {
		c := compareAchievements(matches[i], matches[j], filter.SortBy)
		if c == 0 {
			return matches[i].ID < matches[j].ID
		}
		if filter.SortDesc {
			return c > 0
		}
		return c < 0
	})

	total := int64(len(matches))
	if filter.Offset >= len(matches) {
		return []*models.Achievement{}, total, nil
	}
	matches = matches[filter.Offset:]
	if filter.Limit > 0 && len(matches) > filter.Limit {
		matches = matches[:filter.Limit]
	}
	return matches, total, nil
}

func compareAchievements(a, b *models.Achievement, sortBy string) int {
	switch sortBy {
	case models.AchievementSortDate:
		return a.Date.Compare(b.Date)
	case models.AchievementSortTitle:
		return strings.Compare(a.Title, b.Title)
	case models.AchievementSortStudentName:
		return strings.Compare(a.StudentName, b.StudentName)
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

type MemoryVideoRepository struct {
	mu    sync.RWMutex
	items map[string]models.Video
}

func NewMemoryVideoRepository() *MemoryVideoRepository {
	return &MemoryVideoRepository{items: make(map[string]models.Video)}
}

func (r *MemoryVideoRepository) Create(_ context.Context, v *models.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[v.ID] = *v
	return nil
}

func (r *MemoryVideoRepository) GetByID(_ context.Context, id string) (*models.Video, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &v, nil
}

func (r *MemoryVideoRepository) Update(_ context.Context, v *models.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[v.ID]; !ok {
		return ErrNotFound
	}
	r.items[v.ID] = *v
	return nil
}

func (r *MemoryVideoRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *MemoryVideoRepository) List(_ context.Context, activeOnly bool) ([]*models.Video, error) {
	r.mu.RLock()
	videos := make([]*models.Video, 0, len(r.items))
	for _, v := range r.items {
		if activeOnly && !v.IsActive {
			continue
		}
		v := v
		videos = append(videos, &v)
	}
	r.mu.RUnlock()

	sort.SliceStable(videos, func(i, j int) bool {
		if videos[i].Order != videos[j].Order {
			return videos[i].Order < videos[j].Order
		}
		if !videos[i].CreatedAt.Equal(videos[j].CreatedAt) {
			return videos[i].CreatedAt.Before(videos[j].CreatedAt)
		}
		return videos[i].ID < videos[j].ID
	})
	return videos, nil
}
