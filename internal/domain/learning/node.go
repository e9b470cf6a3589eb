package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akademus/akademus-api/internal/domain/lifecycle"
)

type NodeType string

const (
	NodeText  NodeType = "TEXT"
	NodeImage NodeType = "IMAGE"
	NodeVideo NodeType = "VIDEO"
	NodeAudio NodeType = "AUDIO"
)

// NodeTypes lists every accepted node type in display order.
var NodeTypes = []NodeType{NodeText, NodeImage, NodeVideo, NodeAudio}

func (t NodeType) Valid() bool {
	for _, v := range NodeTypes {
		if t == v {
			return true
		}
	}
	return false
}

const MaxNodeContentLength = 10000

// Node is a knowledge item inside a course. CourseID never changes after
// creation and nodes outlive a soft-deleted course.
type Node struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null;index;column:course_id" json:"course_id"`
	Type        NodeType  `gorm:"type:varchar(16);not null;default:'TEXT';column:type" json:"type"`
	Content     string    `gorm:"type:text;not null;column:content" json:"content"`
	IsFlashcard bool      `gorm:"not null;default:false;column:is_flashcard" json:"is_flashcard"`
	IsQuizItem  bool      `gorm:"not null;default:false;column:is_quiz_item" json:"is_quiz_item"`

	CreatedAt time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Node) TableName() string { return "node" }

func (n *Node) Lifecycle() lifecycle.State { return lifecycle.Of(n.DeletedAt) }
