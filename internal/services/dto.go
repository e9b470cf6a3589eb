package services

import (
	"time"

	"github.com/google/uuid"

	types "github.com/akademus/akademus-api/internal/domain"
)

type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

type UserDTO struct {
	ID        uuid.UUID        `json:"id"`
	Email     string           `json:"email"`
	FirstName string           `json:"firstName"`
	LastName  string           `json:"lastName"`
	IsActive  bool             `json:"isActive"`
	Status    types.UserStatus `json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

type CourseDTO struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	OwnerID   uuid.UUID `json:"ownerId"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type NodeDTO struct {
	ID          uuid.UUID      `json:"id"`
	CourseID    uuid.UUID      `json:"courseId"`
	Type        types.NodeType `json:"type"`
	Content     string         `json:"content"`
	IsFlashcard bool           `json:"isFlashcard"`
	IsQuizItem  bool           `json:"isQuizItem"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func toUserDTO(u *types.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsActive:  u.Lifecycle().IsActive(),
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toCourseDTO(c *types.Course) *CourseDTO {
	if c == nil {
		return nil
	}
	return &CourseDTO{
		ID:        c.ID,
		Title:     c.Title,
		OwnerID:   c.OwnerID,
		IsActive:  c.Lifecycle().IsActive(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toNodeDTO(n *types.Node) *NodeDTO {
	if n == nil {
		return nil
	}
	return &NodeDTO{
		ID:          n.ID,
		CourseID:    n.CourseID,
		Type:        n.Type,
		Content:     n.Content,
		IsFlashcard: n.IsFlashcard,
		IsQuizItem:  n.IsQuizItem,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

func toCourseDTOs(in []*types.Course) []*CourseDTO {
	out := make([]*CourseDTO, 0, len(in))
	for _, c := range in {
		out = append(out, toCourseDTO(c))
	}
	return out
}

func toNodeDTOs(in []*types.Node) []*NodeDTO {
	out := make([]*NodeDTO, 0, len(in))
	for _, n := range in {
		out = append(out, toNodeDTO(n))
	}
	return out
}
