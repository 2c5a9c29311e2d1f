package entities

import "time"

// CourseSummary - публичная карточка курса.
type CourseSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	TutorName   string    `json:"tutorName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TutorSummary - публичная карточка преподавателя.
type TutorSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	CourseCount int    `json:"courseCount"`
}
