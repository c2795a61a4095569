package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"nationwide/internal/media"
	"nationwide/internal/repository"
	"nationwide/internal/service"
	"nationwide/pkg/auth"
	"nationwide/pkg/config"
	"nationwide/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	seedFile := flag.String("file", filepath.Join("data", "seed.json"), "seed document with achievements and videos")
	cacheFile := flag.String("cache", filepath.Join("data", ".seed_cache.json"), "records already seeded")
	checkOnly := flag.Bool("check", false, "only validate the knowledge base and seed document")
	hashPassword := flag.Bool("hash-password", false, "read a password from the terminal and print its bcrypt hash for ADMIN_PASSWORD_HASH")
	flag.Parse()

	if *hashPassword {
		if err := printPasswordHash(); err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		return
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	if err := checkKnowledgeBase(cfg.Knowledge.Path, appLogger); err != nil {
		appLogger.Fatal("Knowledge base is invalid", zap.String("path", cfg.Knowledge.Path), zap.Error(err))
	}

	doc, err := loadSeedFile(*seedFile)
	if err != nil {
		appLogger.Fatal("Failed to load seed file", zap.String("path", *seedFile), zap.Error(err))
	}
	if *checkOnly {
		appLogger.Info("Seed check passed",
			zap.Int("achievements", len(doc.Achievements)),
			zap.Int("videos", len(doc.Videos)),
		)
		return
	}

	// Connect to database
	ctx := context.Background()
	stores, err := repository.Open(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer stores.Close()

	mediaStore, err := media.New(&cfg.Media, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize media store", zap.Error(err))
	}

	s := &seeder{
		achievements: service.NewAchievementService(stores.Achievements, mediaStore, appLogger),
		videos:       service.NewVideoService(stores.Videos, mediaStore, appLogger),
		baseDir:      filepath.Dir(*seedFile),
		logger:       appLogger,
	}

	appLogger.Info("Starting database seeding...")
	if err := s.run(ctx, doc, *cacheFile); err != nil {
		appLogger.Fatal("Seeding failed", zap.Error(err))
	}
	appLogger.Info("Database seeding completed successfully!")
}

func checkKnowledgeBase(path string, logger *zap.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	kb, err := repository.DecodeKnowledgeBase(f)
	if err != nil {
		return err
	}
	logger.Info("Knowledge base is valid",
		zap.String("institute", kb.InstituteName),
		zap.Int("offices", len(kb.Contact.Offices)),
		zap.Int("faqs", len(kb.FAQs)),
	)
	return nil
}

func printPasswordHash() error {
	fmt.Fprint(os.Stderr, "Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}
	if len(password) == 0 {
		return fmt.Errorf("empty password")
	}
	hash, err := auth.HashPassword(string(password))
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}
