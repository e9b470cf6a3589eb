package client

import (
	"time"

	"github.com/google/uuid"
)

type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	IsActive  bool      `json:"isActive"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Course struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	OwnerID   uuid.UUID `json:"ownerId"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Node struct {
	ID          uuid.UUID `json:"id"`
	CourseID    uuid.UUID `json:"courseId"`
	Type        string    `json:"type"`
	Content     string    `json:"content"`
	IsFlashcard bool      `json:"isFlashcard"`
	IsQuizItem  bool      `json:"isQuizItem"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type RegisterInput struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

type CreateCourseInput struct {
	Title string `json:"title"`
}

type UpdateCourseInput struct {
	Title *string `json:"title,omitempty"`
}

type CreateNodeInput struct {
	CourseID    uuid.UUID `json:"courseId"`
	Type        string    `json:"type,omitempty"`
	Content     string    `json:"content"`
	IsFlashcard bool      `json:"isFlashcard"`
	IsQuizItem  bool      `json:"isQuizItem"`
}

type UpdateNodeInput struct {
	Type        *string `json:"type,omitempty"`
	Content     *string `json:"content,omitempty"`
	IsFlashcard *bool   `json:"isFlashcard,omitempty"`
	IsQuizItem  *bool   `json:"isQuizItem,omitempty"`
}

// UserPage is one page of GET /users plus the total across pages.
type UserPage struct {
	Users []User
	Total int
}
