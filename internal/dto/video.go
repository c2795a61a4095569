package dto

import "nationwide/internal/models"

type VideoForm struct {
	Title       string `form:"title" validate:"required,notblank,max=200"`
	Description string `form:"description" validate:"max=2000"`
	CourseName  string `form:"courseName" validate:"required,notblank,max=200"`
}

// VideoUpdate is accepted as JSON or multipart. Nil fields are left unchanged.
type VideoUpdate struct {
	Title       *string `json:"title" form:"title" validate:"omitempty,notblank,max=200"`
	Description *string `json:"description" form:"description" validate:"omitempty,max=2000"`
	CourseName  *string `json:"courseName" form:"courseName" validate:"omitempty,notblank,max=200"`
	Order       *int    `json:"order" form:"order" validate:"omitempty,min=0"`
	IsActive    *bool   `json:"isActive" form:"isActive"`
}

type VideoList struct {
	Videos []*models.Video `json:"videos"`
}

type VideoEnvelope struct {
	Video *models.Video `json:"video"`
}
