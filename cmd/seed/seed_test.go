package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"nationwide/internal/dto"
	"nationwide/internal/media"
	"nationwide/internal/repository"
	"nationwide/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestSeederIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "media", "priya.jpg"), "jpeg")
	writeFile(t, filepath.Join(dir, "media", "review.mp4"), "mp4")
	writeFile(t, filepath.Join(dir, "seed.json"), `{
		"achievements": [
			{"title": "Visa approved", "description": "Melbourne", "studentName": "Priya", "date": "2024-05-02", "photo": "media/priya.jpg"},
			{"title": "Offer letter", "description": "Deakin", "studentName": "Aman", "date": "2024-06-10"}
		],
		"videos": [
			{"title": "My journey", "courseName": "Nursing", "file": "media/review.mp4"}
		]
	}`)

	doc, err := loadSeedFile(filepath.Join(dir, "seed.json"))
	require.NoError(t, err)
	require.Len(t, doc.Achievements, 2)

	logger := zap.NewNop()
	store, err := media.NewLocalStore(filepath.Join(dir, "uploads"), "/uploads", "seed", logger)
	require.NoError(t, err)
	achievements := service.NewAchievementService(repository.NewMemoryAchievementRepository(), store, logger)
	videos := service.NewVideoService(repository.NewMemoryVideoRepository(), store, logger)

	s := &seeder{achievements: achievements, videos: videos, baseDir: dir, logger: logger}
	cacheFile := filepath.Join(dir, ".seed_cache.json")
	ctx := context.Background()

	require.NoError(t, s.run(ctx, doc, cacheFile))
	require.NoError(t, s.run(ctx, doc, cacheFile))

	list, err := achievements.ListAdmin(ctx, dto.AdminAchievementQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, list.TotalAchievements)

	vids, err := videos.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, vids, 1)
	assert.Equal(t, "My journey", vids[0].Title)

	cache, err := loadCache(cacheFile)
	require.NoError(t, err)
	assert.Len(t, cache.Records, 3)
}

func TestSeederSkipsBrokenRecords(t *testing.T) {
	dir := t.TempDir()
	logger := zap.NewNop()
	store, err := media.NewLocalStore(filepath.Join(dir, "uploads"), "/uploads", "seed", logger)
	require.NoError(t, err)
	achievements := service.NewAchievementService(repository.NewMemoryAchievementRepository(), store, logger)

	s := &seeder{achievements: achievements, baseDir: dir, logger: logger}
	doc := &SeedDocument{Achievements: []SeedAchievement{
		{Title: "Bad date", Description: "d", StudentName: "s", Date: "yesterday"},
		{Title: "Missing photo", Description: "d", StudentName: "s", Date: "2024-01-01", Photo: "nope.jpg"},
	}}
	cacheFile := filepath.Join(dir, "cache.json")

	require.NoError(t, s.run(context.Background(), doc, cacheFile))

	cache, err := loadCache(cacheFile)
	require.NoError(t, err)
	assert.Empty(t, cache.Records)
}

func TestLoadSeedFileRejectsVideoWithoutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	writeFile(t, path, `{"videos":[{"title":"x","courseName":"y"}]}`)

	_, err := loadSeedFile(path)
	assert.Error(t, err)
}

func TestCheckKnowledgeBase(t *testing.T) {
	assert.NoError(t, checkKnowledgeBase(filepath.Join("..", "..", "data", "knowledge.json"), zap.NewNop()))

	path := filepath.Join(t.TempDir(), "kb.json")
	writeFile(t, path, `{"instituteName":"X","unknownKey":1}`)
	assert.Error(t, checkKnowledgeBase(path, zap.NewNop()))
}
