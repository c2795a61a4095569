package media

import (
	"fmt"

	"nationwide/pkg/config"

	"go.uber.org/zap"
)

// New builds the store selected by cfg.Provider.
func New(cfg *config.MediaConfig, logger *zap.Logger) (Store, error) {
	switch cfg.Provider {
	case config.MediaCloudinary:
		if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
			return nil, fmt.Errorf("cloudinary credentials are not configured")
		}
		return NewCloudinaryStore(CloudinaryConfig{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			BaseURL:   cfg.CloudinaryBaseURL,
			Folder:    cfg.Folder,
		}, nil, logger), nil
	case config.MediaS3:
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET is not configured")
		}
		return NewS3Store(S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
			Folder:    cfg.Folder,
		}, logger), nil
	case config.MediaLocal, "":
		return NewLocalStore(cfg.LocalDir, "/uploads", cfg.Folder, logger)
	default:
		return nil, fmt.Errorf("unknown media provider %q", cfg.Provider)
	}
}
