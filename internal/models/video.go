package models

import "time"

// MaxLiveVideos is the soft cap on review videos, enforced by the admin client before uploading.
const MaxLiveVideos = 5

type Video struct {
	ID          string    `json:"id" bson:"_id" db:"id"`
	Title       string    `json:"title" bson:"title" db:"title"`
	Description string    `json:"description" bson:"description" db:"description"`
	CourseName  string    `json:"courseName" bson:"course_name" db:"course_name"`
	URL         string    `json:"url" bson:"url" db:"url"`
	PublicID    string    `json:"publicId" bson:"public_id" db:"public_id"`
	Duration    float64   `json:"duration,omitempty" bson:"duration,omitempty" db:"duration"`
	Order       int       `json:"order" bson:"order" db:"sort_order"`
	IsActive    bool      `json:"isActive" bson:"is_active" db:"is_active"`
	Thumbnail   string    `json:"thumbnail,omitempty" bson:"thumbnail,omitempty" db:"thumbnail"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at" db:"updated_at"`
}
