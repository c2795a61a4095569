package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"nationwide/internal/dto"
	"nationwide/internal/media"
	"nationwide/internal/models"
	"nationwide/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedAchievements(n int) []*models.Achievement {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]*models.Achievement, n)
	for i := range out {
		out[i] = &models.Achievement{
			ID:          fmt.Sprintf("a%02d", i),
			Title:       fmt.Sprintf("Visa approved %02d", i),
			StudentName: fmt.Sprintf("Student %02d", i),
			Date:        base.AddDate(0, 0, i),
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
		}
	}
	return out
}

func TestAchievementService_ListAdmin(t *testing.T) {
	svc := NewAchievementService(newMemAchievementRepo(seedAchievements(30)...), &fakeStore{}, zap.NewNop())

	res, err := svc.ListAdmin(context.Background(), dto.AdminAchievementQuery{Page: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, res.CurrentPage)
	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, int64(30), res.TotalAchievements)
	assert.Len(t, res.Achievements, 6)
	assert.Equal(t, "a05", res.Achievements[0].ID, "newest first")

	res, err = svc.ListAdmin(context.Background(), dto.AdminAchievementQuery{Name: "student 07"})
	require.NoError(t, err)
	require.Len(t, res.Achievements, 1)
	assert.Equal(t, "a07", res.Achievements[0].ID)
}

func TestAchievementService_ListPublicEmpty(t *testing.T) {
	svc := NewAchievementService(newMemAchievementRepo(), &fakeStore{}, zap.NewNop())

	res, err := svc.ListPublic(context.Background(), dto.PublicAchievementQuery{})
	require.NoError(t, err)
	assert.NotNil(t, res.Data)
	assert.Empty(t, res.Data)
	assert.Equal(t, dto.Pagination{CurrentPage: 1, TotalPages: 0, TotalItems: 0, Limit: 12}, res.Pagination)
}

func TestAchievementService_ListPublicSort(t *testing.T) {
	svc := NewAchievementService(newMemAchievementRepo(seedAchievements(5)...), &fakeStore{}, zap.NewNop())

	res, err := svc.ListPublic(context.Background(), dto.PublicAchievementQuery{SortBy: "date", SortOrder: "asc", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, "a00", res.Data[0].ID)
	assert.Equal(t, 3, res.Pagination.TotalPages)

	res, err = svc.ListPublic(context.Background(), dto.PublicAchievementQuery{})
	require.NoError(t, err)
	assert.Equal(t, "a04", res.Data[0].ID, "defaults to latest date first")
}

func TestAchievementService_CreateWithPhoto(t *testing.T) {
	repo := newMemAchievementRepo()
	store := &fakeStore{}
	svc := NewAchievementService(repo, store, zap.NewNop())

	a, err := svc.Create(context.Background(), dto.AchievementForm{
		Title: "  PR granted ", Description: "Canada PR", StudentName: "Asha", Date: "2024-05-20",
	}, &FileInput{Name: "asha.jpg", Size: 3, Body: strings.NewReader("jpg")})
	require.NoError(t, err)

	assert.Equal(t, "PR granted", a.Title)
	assert.Equal(t, time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC), a.Date)
	require.NotNil(t, a.Photo)
	assert.Equal(t, "image-1", a.Photo.PublicID)
	require.Len(t, store.uploads, 1)
	assert.Equal(t, media.KindImage, store.uploads[0].Kind)

	stored, err := repo.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Photo, stored.Photo)
}

func TestAchievementService_CreateRejects(t *testing.T) {
	svc := NewAchievementService(newMemAchievementRepo(), &fakeStore{}, zap.NewNop())

	_, err := svc.Create(context.Background(), dto.AchievementForm{Title: "t", Description: "d", StudentName: "s", Date: "20/05/2024"}, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), dto.AchievementForm{Title: "t", Description: "d", StudentName: "s", Date: "2024-05-20"},
		&FileInput{Name: "big.jpg", Size: media.MaxUploadSize + 1, Body: strings.NewReader("")})
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestAchievementService_CreateUploadFailure(t *testing.T) {
	repo := newMemAchievementRepo()
	svc := NewAchievementService(repo, &fakeStore{uploadErr: errors.New("cdn down")}, zap.NewNop())

	_, err := svc.Create(context.Background(), dto.AchievementForm{Title: "t", Description: "d", StudentName: "s", Date: "2024-05-20"},
		&FileInput{Name: "a.jpg", Size: 1, Body: strings.NewReader("x")})
	require.Error(t, err)
	_, total, err := repo.List(context.Background(), models.AchievementFilter{})
	require.NoError(t, err)
	assert.Zero(t, total, "nothing stored when the photo upload fails")
}

func TestAchievementService_UpdateReplacesPhoto(t *testing.T) {
	existing := seedAchievements(1)[0]
	existing.Photo = &models.Media{URL: "https://cdn.example/old", PublicID: "old"}
	store := &fakeStore{}
	svc := NewAchievementService(newMemAchievementRepo(existing), store, zap.NewNop())

	a, err := svc.Update(context.Background(), existing.ID, dto.AchievementUpdateForm{StudentName: "Ravi"},
		&FileInput{Name: "new.png", Size: 1, Body: strings.NewReader("x")})
	require.NoError(t, err)

	assert.Equal(t, "Ravi", a.StudentName)
	assert.Equal(t, existing.Title, a.Title, "empty fields are left unchanged")
	assert.Equal(t, "image-1", a.Photo.PublicID)
	assert.Equal(t, []string{"old"}, store.deleted)
}

func TestAchievementService_UpdateMissing(t *testing.T) {
	svc := NewAchievementService(newMemAchievementRepo(), &fakeStore{}, zap.NewNop())
	_, err := svc.Update(context.Background(), "nope", dto.AchievementUpdateForm{Title: "x"}, nil)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAchievementService_DeleteRemovesPhoto(t *testing.T) {
	existing := seedAchievements(1)[0]
	existing.Photo = &models.Media{PublicID: "p1"}
	repo := newMemAchievementRepo(existing)
	store := &fakeStore{}
	svc := NewAchievementService(repo, store, zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), existing.ID))
	assert.Equal(t, []string{"p1"}, store.deleted)

	_, err := repo.GetByID(context.Background(), existing.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), existing.ID), repository.ErrNotFound)
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "ok", cleanText("  ok\n"))
	assert.Equal(t, "ab", cleanText("a\xffb"))
}
