package handlers

import (
	"nationwide/internal/dto"
	"nationwide/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type VideoHandler struct {
	videoService *service.VideoService
	logger       *zap.Logger
}

func NewVideoHandler(videoService *service.VideoService, logger *zap.Logger) *VideoHandler {
	return &VideoHandler{
		videoService: videoService,
		logger:       logger,
	}
}

// ListPublic godoc
// @Summary List review videos
// @Description Active videos in display order
// @Tags videos
// @Produce json
// @Success 200 {object} dto.VideoList
// @Router /api/videos [get]
func (h *VideoHandler) ListPublic(c *fiber.Ctx) error {
	return h.list(c, true)
}

// ListAdmin godoc
// @Summary List all review videos (admin)
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.VideoList
// @Router /api/admin/videos [get]
func (h *VideoHandler) ListAdmin(c *fiber.Ctx) error {
	return h.list(c, false)
}

func (h *VideoHandler) list(c *fiber.Ctx, activeOnly bool) error {
	videos, err := h.videoService.List(c.Context(), activeOnly)
	if err != nil {
		return writeError(c, h.logger, err, "Listing videos")
	}
	return c.JSON(dto.VideoList{Videos: videos})
}

// Upload godoc
// @Summary Upload a review video
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param video formData file true "Video file (max 50MB)"
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param courseName formData string true "Course name"
// @Security Bearer
// @Success 200 {object} dto.VideoEnvelope
// @Failure 400 {object} map[string]string
// @Failure 413 {object} map[string]string
// @Router /api/admin/videos/upload [post]
func (h *VideoHandler) Upload(c *fiber.Ctx) error {
	var form dto.VideoForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid form data",
		})
	}

	file, closer, err := formFile(c, "video")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read video",
		})
	}
	defer closeQuietly(closer)
	if file == nil {
		return writeError(c, h.logger, service.ErrFileRequired, "Uploading video")
	}
	if fields := validateStruct(&form); fields != nil {
		return validationFailed(c, fields)
	}

	v, err := h.videoService.Upload(c.Context(), form, file)
	if err != nil {
		return writeError(c, h.logger, err, "Uploading video")
	}
	return c.JSON(dto.VideoEnvelope{Video: v})
}

// Update godoc
// @Summary Update a review video
// @Description Accepts JSON or multipart. Omitted fields are left unchanged; a video file replaces the media.
// @Tags admin
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Video ID"
// @Param request body dto.VideoUpdate false "Fields to change"
// @Security Bearer
// @Success 200 {object} dto.VideoEnvelope
// @Failure 404 {object} map[string]string
// @Router /api/admin/videos/{id} [put]
func (h *VideoHandler) Update(c *fiber.Ctx) error {
	var upd dto.VideoUpdate
	if err := c.BodyParser(&upd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if fields := validateStruct(&upd); fields != nil {
		return validationFailed(c, fields)
	}

	file, closer, err := formFile(c, "video")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read video",
		})
	}
	defer closeQuietly(closer)

	v, err := h.videoService.Update(c.Context(), c.Params("id"), upd, file)
	if err != nil {
		return writeError(c, h.logger, err, "Updating video")
	}
	return c.JSON(dto.VideoEnvelope{Video: v})
}

// Delete godoc
// @Summary Delete a review video
// @Tags admin
// @Param id path string true "Video ID"
// @Security Bearer
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/admin/videos/{id} [delete]
func (h *VideoHandler) Delete(c *fiber.Ctx) error {
	if err := h.videoService.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, h.logger, err, "Deleting video")
	}
	return c.JSON(fiber.Map{"message": "Video deleted successfully"})
}
