package dto

import "nationwide/internal/models"

// AchievementForm carries the text fields of the multipart achievement form.
// Date is YYYY-MM-DD.
type AchievementForm struct {
	Title       string `form:"title" validate:"required,notblank,max=200"`
	Description string `form:"description" validate:"required,notblank,max=2000"`
	StudentName string `form:"studentName" validate:"required,notblank,max=120"`
	Date        string `form:"date" validate:"required,datetime=2006-01-02"`
}

// AchievementUpdateForm is the partial variant used by PUT; empty fields are left unchanged.
type AchievementUpdateForm struct {
	Title       string `form:"title" validate:"omitempty,notblank,max=200"`
	Description string `form:"description" validate:"omitempty,notblank,max=2000"`
	StudentName string `form:"studentName" validate:"omitempty,notblank,max=120"`
	Date        string `form:"date" validate:"omitempty,datetime=2006-01-02"`
}

type AdminAchievementQuery struct {
	Page  int    `query:"page" validate:"omitempty,min=1"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Name  string `query:"name"`
}

type AdminAchievementList struct {
	Achievements      []*models.Achievement `json:"achievements"`
	CurrentPage       int                   `json:"currentPage"`
	TotalPages        int                   `json:"totalPages"`
	TotalAchievements int64                 `json:"totalAchievements"`
}

type PublicAchievementQuery struct {
	Page      int    `query:"page" validate:"omitempty,min=1"`
	Limit     int    `query:"limit" validate:"omitempty,min=1,max=100"`
	SortBy    string `query:"sortBy" validate:"omitempty,oneof=date createdAt title studentName"`
	SortOrder string `query:"sortOrder" validate:"omitempty,oneof=asc desc"`
	Search    string `query:"search"`
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
	Limit       int   `json:"limit"`
}

type PublicAchievementList struct {
	Data       []*models.Achievement `json:"data"`
	Pagination Pagination            `json:"pagination"`
}
