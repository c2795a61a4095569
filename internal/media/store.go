// Package media stores uploaded photos and videos with a CDN or object store.
package media

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxUploadSize is the largest media file accepted by the admin endpoints.
const MaxUploadSize = 50 << 20

// Kind selects the provider resource type.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

var ErrUnsupportedKind = errors.New("unsupported media kind")

// Upload describes a file to store. Size may be -1 when unknown.
type Upload struct {
	Kind        Kind
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Asset is a stored file.
type Asset struct {
	URL       string
	PublicID  string
	Duration  float64
	Thumbnail string
}

type Store interface {
	Upload(ctx context.Context, up Upload) (*Asset, error)
	Delete(ctx context.Context, publicID string, kind Kind) error
}

// objectKey builds "<folder>/<kind>s/<uuid><ext>".
func objectKey(folder string, kind Kind, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return path.Join(folder, string(kind)+"s", uuid.NewString()+ext)
}

// ProgressReader logs how much of an upload has been read, at every 25% step.
type ProgressReader struct {
	r        io.Reader
	total    int64
	read     int64
	nextStep int64
	name     string
	logger   *zap.Logger
}

func NewProgressReader(r io.Reader, total int64, name string, logger *zap.Logger) *ProgressReader {
	return &ProgressReader{r: r, total: total, nextStep: 25, name: name, logger: logger}
}

func (p *ProgressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)
	if p.total > 0 {
		for p.nextStep <= 100 && p.read*100 >= p.total*p.nextStep {
			p.logger.Debug("Upload progress",
				zap.String("file", p.name),
				zap.Int64("percent", p.nextStep),
				zap.Int64("bytes", p.read),
			)
			p.nextStep += 25
		}
	}
	return n, err
}

// BytesRead returns the number of bytes consumed so far.
func (p *ProgressReader) BytesRead() int64 {
	return p.read
}
