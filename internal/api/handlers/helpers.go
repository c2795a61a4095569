package handlers

import (
	"errors"
	"io"
	"strings"

	"nationwide/internal/repository"
	"nationwide/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// formFile opens an optional multipart file. It returns a nil input when the field is absent.
// The returned closer must be called once the upload is finished.
func formFile(c *fiber.Ctx, field string) (*service.FileInput, io.Closer, error) {
	if !isMultipart(c) {
		return nil, nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, err
	}
	files := form.File[field]
	if len(files) == 0 {
		return nil, nil, nil
	}
	fh := files[0]

	src, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &service.FileInput{
		Name:        fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Body:        src,
	}, src, nil
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm)
}

func closeQuietly(cl io.Closer) {
	if cl != nil {
		_ = cl.Close()
	}
}

// writeError maps service and repository errors to HTTP responses.
func writeError(c *fiber.Ctx, logger *zap.Logger, err error, action string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	case errors.Is(err, service.ErrFileTooLarge):
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": "File too large. Maximum size is 50MB"})
	case errors.Is(err, service.ErrFileRequired):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File is required"})
	case errors.Is(err, service.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	logger.Error(action+" failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": action + " failed",
	})
}
