package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akademus/akademus-api/internal/domain/lifecycle"
)

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusSuspended
}

// User emails are unique across deleted rows too, so a removed account keeps
// its address reserved.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password  string    `gorm:"not null;column:password" json:"-"`
	FirstName string    `gorm:"not null;column:first_name" json:"first_name"`
	LastName  string    `gorm:"not null;column:last_name" json:"last_name"`
	Status    Status    `gorm:"type:varchar(16);not null;default:'ACTIVE';column:status" json:"status"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "user" }

func (u *User) Lifecycle() lifecycle.State { return lifecycle.Of(u.DeletedAt) }

// CanSignIn reports whether the account may log in or hold a session.
func (u *User) CanSignIn() bool {
	return u != nil && u.Lifecycle().IsActive() && u.Status == StatusActive
}
