package main

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"nationwide/internal/dto"
	"nationwide/internal/service"

	"go.uber.org/zap"
)

// SeedDocument lists records to create. Media paths are relative to the seed file.
type SeedDocument struct {
	Achievements []SeedAchievement `json:"achievements"`
	Videos       []SeedVideo       `json:"videos"`
}

type SeedAchievement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StudentName string `json:"studentName"`
	Date        string `json:"date"`
	Photo       string `json:"photo,omitempty"`
}

type SeedVideo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CourseName  string `json:"courseName"`
	File        string `json:"file"`
}

// SeededRecord is a cache entry for a record that was already created.
type SeededRecord struct {
	ID       string    `json:"id"`
	SeededAt time.Time `json:"seeded_at"`
}

// CacheData maps a record hash to the record created from it.
type CacheData struct {
	Records map[string]SeededRecord `json:"records"`
}

func loadSeedFile(path string) (*SeedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var doc SeedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	for i, v := range doc.Videos {
		if v.File == "" {
			return nil, fmt.Errorf("video %d (%q) has no file", i, v.Title)
		}
	}
	return &doc, nil
}

// loadCache loads the cache of seeded records
func loadCache(cacheFile string) (*CacheData, error) {
	cache := &CacheData{Records: make(map[string]SeededRecord)}

	data, err := os.ReadFile(cacheFile)
	if errors.Is(err, os.ErrNotExist) {
		return cache, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	if len(data) == 0 {
		return cache, nil
	}
	if err := json.Unmarshal(data, cache); err != nil {
		return nil, fmt.Errorf("failed to parse cache file: %w", err)
	}
	if cache.Records == nil {
		cache.Records = make(map[string]SeededRecord)
	}
	return cache, nil
}

// saveCache saves the cache of seeded records
func saveCache(cacheFile string, cache *CacheData) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}
	if err := os.WriteFile(cacheFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}

// recordHash identifies a seed entry by its kind and content.
func recordHash(kind string, v any) string {
	data, _ := json.Marshal(v)
	return fmt.Sprintf("%s:%x", kind, md5.Sum(data))
}

type seeder struct {
	achievements *service.AchievementService
	videos       *service.VideoService
	baseDir      string
	logger       *zap.Logger
}

// run creates every record not yet in the cache. A failed record is logged and retried on the next run.
func (s *seeder) run(ctx context.Context, doc *SeedDocument, cacheFile string) error {
	cache, err := loadCache(cacheFile)
	if err != nil {
		s.logger.Warn("Failed to load cache, will seed all records", zap.Error(err))
		cache = &CacheData{Records: make(map[string]SeededRecord)}
	}

	created := 0
	for _, a := range doc.Achievements {
		key := recordHash("achievement", a)
		if cached, ok := cache.Records[key]; ok {
			s.logger.Info("Achievement already seeded, skipping",
				zap.String("title", a.Title),
				zap.String("id", cached.ID),
			)
			continue
		}
		id, err := s.seedAchievement(ctx, a)
		if err != nil {
			s.logger.Error("Failed to seed achievement", zap.String("title", a.Title), zap.Error(err))
			continue
		}
		cache.Records[key] = SeededRecord{ID: id, SeededAt: time.Now()}
		created++
	}

	for _, v := range doc.Videos {
		key := recordHash("video", v)
		if cached, ok := cache.Records[key]; ok {
			s.logger.Info("Video already seeded, skipping",
				zap.String("title", v.Title),
				zap.String("id", cached.ID),
			)
			continue
		}
		id, err := s.seedVideo(ctx, v)
		if err != nil {
			s.logger.Error("Failed to seed video", zap.String("title", v.Title), zap.Error(err))
			continue
		}
		cache.Records[key] = SeededRecord{ID: id, SeededAt: time.Now()}
		created++
	}

	if err := saveCache(cacheFile, cache); err != nil {
		s.logger.Warn("Failed to save cache", zap.Error(err))
	} else {
		s.logger.Info("Cache saved", zap.Int("created", created), zap.Int("records", len(cache.Records)))
	}
	return nil
}

func (s *seeder) seedAchievement(ctx context.Context, a SeedAchievement) (string, error) {
	form := dto.AchievementForm{
		Title:       a.Title,
		Description: a.Description,
		StudentName: a.StudentName,
		Date:        a.Date,
	}

	var photo *service.FileInput
	if a.Photo != "" {
		f, in, err := s.openFile(a.Photo)
		if err != nil {
			return "", err
		}
		defer f.Close()
		photo = in
	}

	created, err := s.achievements.Create(ctx, form, photo)
	if err != nil {
		return "", err
	}
	s.logger.Info("Created achievement", zap.String("id", created.ID), zap.String("title", created.Title))
	return created.ID, nil
}

func (s *seeder) seedVideo(ctx context.Context, v SeedVideo) (string, error) {
	f, in, err := s.openFile(v.File)
	if err != nil {
		return "", err
	}
	defer f.Close()

	created, err := s.videos.Upload(ctx, dto.VideoForm{
		Title:       v.Title,
		Description: v.Description,
		CourseName:  v.CourseName,
	}, in)
	if err != nil {
		return "", err
	}
	s.logger.Info("Created video", zap.String("id", created.ID), zap.String("title", created.Title))
	return created.ID, nil
}

func (s *seeder) openFile(rel string) (*os.File, *service.FileInput, error) {
	path := rel
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.baseDir, rel)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open media: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to stat media: %w", err)
	}
	return f, &service.FileInput{
		Name:        filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Size:        info.Size(),
		Body:        f,
	}, nil
}
