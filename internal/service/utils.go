package service

import (
	"io"
	"strings"
	"unicode/utf8"

	"nationwide/internal/media"
)

// FileInput is an uploaded file as received by a handler. Size is the declared size in bytes.
type FileInput struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

func (f *FileInput) upload(kind media.Kind) (media.Upload, error) {
	if f.Size > media.MaxUploadSize {
		return media.Upload{}, ErrFileTooLarge
	}
	return media.Upload{
		Kind:        kind,
		FileName:    f.Name,
		ContentType: f.ContentType,
		Size:        f.Size,
		Body:        io.LimitReader(f.Body, media.MaxUploadSize+1),
	}, nil
}

// cleanText trims form input and drops invalid UTF-8 sequences, which PostgreSQL rejects.
func cleanText(s string) string {
	s = strings.TrimSpace(s)
	if utf8.ValidString(s) {
		return s
	}

	var result strings.Builder
	result.Grow(len(s))
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			s = s[1:]
			continue
		}
		result.WriteRune(r)
		s = s[size:]
	}
	return result.String()
}

func totalPages(total int64, limit int) int {
	if limit <= 0 || total == 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
