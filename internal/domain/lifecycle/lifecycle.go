package lifecycle

import "gorm.io/gorm"

// State is the soft-delete lifecycle shared by users, courses and nodes.
// It is derived from the deleted_at column and never stored on its own.
type State string

const (
	Active  State = "ACTIVE"
	Deleted State = "DELETED"
)

func Of(deletedAt gorm.DeletedAt) State {
	if deletedAt.Valid {
		return Deleted
	}
	return Active
}

func (s State) IsActive() bool { return s == Active }
