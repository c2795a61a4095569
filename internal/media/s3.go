package media

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

const s3PartSize = 8 << 20

type S3Config struct {
	Endpoint  string // empty for AWS, "http://127.0.0.1:9000" for MinIO
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	PublicURL string // base URL objects are served from
	Folder    string
}

// S3Store keeps media in an S3-compatible bucket.
type S3Store struct {
	client   *s3.Client
	uploader *manager.Uploader
	cfg      S3Config
	logger   *zap.Logger
}

func NewS3Store(cfg S3Config, logger *zap.Logger) *S3Store {
	client := s3.NewFromConfig(aws.Config{Region: cfg.Region}, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
		o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	})
	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = s3PartSize
	})
	return &S3Store{client: client, uploader: uploader, cfg: cfg, logger: logger}
}

func (s *S3Store) Upload(ctx context.Context, up Upload) (*Asset, error) {
	if up.Kind != KindImage && up.Kind != KindVideo {
		return nil, ErrUnsupportedKind
	}

	key := objectKey(s.cfg.Folder, up.Kind, up.FileName)
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
		Body:   NewProgressReader(up.Body, up.Size, up.FileName, s.logger),
	}
	if up.ContentType != "" {
		input.ContentType = aws.String(up.ContentType)
	}
	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return nil, fmt.Errorf("s3 upload failed: %w", err)
	}

	s.logger.Info("Uploaded media",
		zap.String("provider", "s3"),
		zap.String("bucket", s.cfg.Bucket),
		zap.String("key", key),
	)
	return &Asset{URL: s.publicURL(key), PublicID: key}, nil
}

// Delete removes the object, retrying transient failures.
func (s *S3Store) Delete(ctx context.Context, publicID string, _ Kind) error {
	if publicID == "" {
		return nil
	}
	b := retry.WithMaxRetries(3, retry.NewFibonacci(200*time.Millisecond))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.cfg.Bucket),
			Key:    aws.String(publicID),
		})
		if err != nil {
			s.logger.Warn("S3 delete failed", zap.String("key", publicID), zap.Error(err))
			return retry.RetryableError(err)
		}
		return nil
	})
}

func (s *S3Store) publicURL(key string) string {
	base := strings.TrimRight(s.cfg.PublicURL, "/")
	if base == "" {
		base = strings.TrimRight(s.cfg.Endpoint, "/") + "/" + s.cfg.Bucket
	}
	return base + "/" + key
}
