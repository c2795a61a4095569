package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// LocalStore writes media under a directory that the server exposes at urlPrefix.
type LocalStore struct {
	dir       string
	urlPrefix string
	folder    string
	logger    *zap.Logger
}

func NewLocalStore(dir, urlPrefix, folder string, logger *zap.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/"), folder: folder, logger: logger}, nil
}

func (s *LocalStore) Upload(ctx context.Context, up Upload) (*Asset, error) {
	if up.Kind != KindImage && up.Kind != KindVideo {
		return nil, ErrUnsupportedKind
	}

	key := objectKey(s.folder, up.Kind, up.FileName)
	filePath := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}

	dst, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, NewProgressReader(up.Body, up.Size, up.FileName, s.logger)); err != nil {
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	s.logger.Info("Uploaded media", zap.String("provider", "local"), zap.String("path", filePath))
	asset := &Asset{URL: path.Join(s.urlPrefix, key), PublicID: key}
	return asset, nil
}

func (s *LocalStore) Delete(ctx context.Context, publicID string, _ Kind) error {
	if publicID == "" {
		return nil
	}
	clean := path.Clean("/" + publicID)
	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(clean)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
