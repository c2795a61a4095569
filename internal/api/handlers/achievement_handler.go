package handlers

import (
	"nationwide/internal/dto"
	"nationwide/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AchievementHandler struct {
	achievementService *service.AchievementService
	logger             *zap.Logger
}

func NewAchievementHandler(achievementService *service.AchievementService, logger *zap.Logger) *AchievementHandler {
	return &AchievementHandler{
		achievementService: achievementService,
		logger:             logger,
	}
}

// ListPublic godoc
// @Summary List achievements
// @Description Paginated student achievements for the public site
// @Tags achievements
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 12)"
// @Param sortBy query string false "date, createdAt, title or studentName"
// @Param sortOrder query string false "asc or desc"
// @Param search query string false "Matches title, description or student name"
// @Success 200 {object} dto.PublicAchievementList
// @Failure 400 {object} map[string]string
// @Router /api/achievements [get]
func (h *AchievementHandler) ListPublic(c *fiber.Ctx) error {
	var q dto.PublicAchievementQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid query parameters",
		})
	}
	if fields := validateStruct(&q); fields != nil {
		return validationFailed(c, fields)
	}

	res, err := h.achievementService.ListPublic(c.Context(), q)
	if err != nil {
		return writeError(c, h.logger, err, "Listing achievements")
	}
	return c.JSON(res)
}

// ListAdmin godoc
// @Summary List achievements (admin)
// @Tags admin
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 12)"
// @Param name query string false "Filter by title or student name"
// @Security Bearer
// @Success 200 {object} dto.AdminAchievementList
// @Failure 401 {object} map[string]string
// @Router /api/admin/achievements [get]
func (h *AchievementHandler) ListAdmin(c *fiber.Ctx) error {
	var q dto.AdminAchievementQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid query parameters",
		})
	}
	if fields := validateStruct(&q); fields != nil {
		return validationFailed(c, fields)
	}

	res, err := h.achievementService.ListAdmin(c.Context(), q)
	if err != nil {
		return writeError(c, h.logger, err, "Listing achievements")
	}
	return c.JSON(res)
}

// Create godoc
// @Summary Create an achievement
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param studentName formData string true "Student name"
// @Param date formData string true "Date (YYYY-MM-DD)"
// @Param photo formData file false "Photo"
// @Security Bearer
// @Success 201 {object} models.Achievement
// @Failure 400 {object} map[string]string
// @Failure 413 {object} map[string]string
// @Router /api/admin/achievements [post]
func (h *AchievementHandler) Create(c *fiber.Ctx) error {
	var form dto.AchievementForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid form data",
		})
	}
	if fields := validateStruct(&form); fields != nil {
		return validationFailed(c, fields)
	}

	photo, closer, err := formFile(c, "photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read photo",
		})
	}
	defer closeQuietly(closer)

	a, err := h.achievementService.Create(c.Context(), form, photo)
	if err != nil {
		return writeError(c, h.logger, err, "Creating achievement")
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

// Update godoc
// @Summary Update an achievement
// @Description Empty fields are left unchanged. A new photo replaces the old one.
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Achievement ID"
// @Param title formData string false "Title"
// @Param description formData string false "Description"
// @Param studentName formData string false "Student name"
// @Param date formData string false "Date (YYYY-MM-DD)"
// @Param photo formData file false "Photo"
// @Security Bearer
// @Success 200 {object} models.Achievement
// @Failure 404 {object} map[string]string
// @Router /api/admin/achievements/{id} [put]
func (h *AchievementHandler) Update(c *fiber.Ctx) error {
	var form dto.AchievementUpdateForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid form data",
		})
	}
	if fields := validateStruct(&form); fields != nil {
		return validationFailed(c, fields)
	}

	photo, closer, err := formFile(c, "photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read photo",
		})
	}
	defer closeQuietly(closer)

	a, err := h.achievementService.Update(c.Context(), c.Params("id"), form, photo)
	if err != nil {
		return writeError(c, h.logger, err, "Updating achievement")
	}
	return c.JSON(a)
}

// Delete godoc
// @Summary Delete an achievement
// @Tags admin
// @Param id path string true "Achievement ID"
// @Security Bearer
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/admin/achievements/{id} [delete]
func (h *AchievementHandler) Delete(c *fiber.Ctx) error {
	if err := h.achievementService.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, h.logger, err, "Deleting achievement")
	}
	return c.JSON(fiber.Map{"message": "Achievement deleted successfully"})
}
