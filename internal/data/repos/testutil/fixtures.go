package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/akademus/akademus-api/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
		Status:    types.UserStatusActive,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, title string) *types.Course {
	tb.Helper()
	c := &types.Course{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Title:   title,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedNode(tb testing.TB, ctx context.Context, tx *gorm.DB, courseID uuid.UUID, content string) *types.Node {
	tb.Helper()
	n := &types.Node{
		ID:       uuid.New(),
		CourseID: courseID,
		Type:     types.NodeText,
		Content:  content,
	}
	if err := tx.WithContext(ctx).Create(n).Error; err != nil {
		tb.Fatalf("seed node: %v", err)
	}
	return n
}

// UniqueEmail keeps fixtures from colliding on a shared database.
func UniqueEmail(prefix string) string {
	return prefix + "+" + uuid.NewString()[:8] + "@example.com"
}
