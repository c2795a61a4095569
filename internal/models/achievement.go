package models

import "time"

// Media is a file held by the media provider.
type Media struct {
	URL      string `json:"url" bson:"url"`
	PublicID string `json:"publicId" bson:"public_id"`
}

type Achievement struct {
	ID          string    `json:"id" bson:"_id" db:"id"`
	Title       string    `json:"title" bson:"title" db:"title"`
	Description string    `json:"description" bson:"description" db:"description"`
	StudentName string    `json:"studentName" bson:"student_name" db:"student_name"`
	Date        time.Time `json:"date" bson:"date" db:"date"`
	Photo       *Media    `json:"photo,omitempty" bson:"photo,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at" db:"updated_at"`
}

// Sortable achievement fields exposed by the public listing.
const (
	AchievementSortDate        = "date"
	AchievementSortCreatedAt   = "createdAt"
	AchievementSortTitle       = "title"
	AchievementSortStudentName = "studentName"
)

type AchievementFilter struct {
	Search   string // matches title, description or student name
	SortBy   string
	SortDesc bool
	Limit    int
	Offset   int
}
