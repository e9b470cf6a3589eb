package domain

import (
	"github.com/akademus/akademus-api/internal/domain/learning"
	"github.com/akademus/akademus-api/internal/domain/lifecycle"
	"github.com/akademus/akademus-api/internal/domain/user"
)

type (
	User       = user.User
	UserStatus = user.Status

	Course   = learning.Course
	Node     = learning.Node
	NodeType = learning.NodeType

	LifecycleState = lifecycle.State
)

const (
	UserStatusActive    = user.StatusActive
	UserStatusSuspended = user.StatusSuspended

	NodeText  = learning.NodeText
	NodeImage = learning.NodeImage
	NodeVideo = learning.NodeVideo
	NodeAudio = learning.NodeAudio

	MaxNodeContentLength = learning.MaxNodeContentLength

	LifecycleActive  = lifecycle.Active
	LifecycleDeleted = lifecycle.Deleted
)

// Models lists every persisted type, in migration order.
func Models() []any {
	return []any{
		&User{},
		&Course{},
		&Node{},
	}
}
