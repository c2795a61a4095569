package repository

import (
	"context"
	"testing"
	"time"

	"nationwide/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAchievementRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAchievementRepository()
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"Priya", "arjun", "Meera", "Zoya"} {
		require.NoError(t, repo.Create(ctx, &models.Achievement{
			ID:          string(rune('a' + i)),
			Title:       "Offer from Deakin",
			StudentName: name,
			Date:        base.AddDate(0, 0, -i),
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}))
	}

	tests := []struct {
		name    string
		filter  models.AchievementFilter
		wantIDs []string
		total   int64
	}{
		{"created desc", models.AchievementFilter{SortDesc: true}, []string{"d", "c", "b", "a"}, 4},
		{"date asc", models.AchievementFilter{SortBy: models.AchievementSortDate}, []string{"d", "c", "b", "a"}, 4},
		{"student name page", models.AchievementFilter{SortBy: models.AchievementSortStudentName, Limit: 2, Offset: 1}, []string{"a", "d"}, 4},
		{"search is case insensitive", models.AchievementFilter{Search: "ARJUN"}, []string{"b"}, 1},
		{"offset past end", models.AchievementFilter{Offset: 10}, []string{}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, total, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.total, total)
			ids := []string{}
			for _, a := range items {
				ids = append(ids, a.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestMemoryVideoRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryVideoRepository()
	now := time.Now()
	require.NoError(t, repo.Create(ctx, &models.Video{ID: "late", Order: 0, IsActive: true, CreatedAt: now.Add(time.Minute)}))
	require.NoError(t, repo.Create(ctx, &models.Video{ID: "early", Order: 0, IsActive: true, CreatedAt: now}))
	require.NoError(t, repo.Create(ctx, &models.Video{ID: "off", Order: 0, IsActive: false, CreatedAt: now}))

	active, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "early", active[0].ID)

	assert.ErrorIs(t, repo.Update(ctx, &models.Video{ID: "missing"}), ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "missing"), ErrNotFound)
	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
