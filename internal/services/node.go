package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akademus/akademus-api/internal/data/repos"
	types "github.com/akademus/akademus-api/internal/domain"
	"github.com/akademus/akademus-api/internal/pkg/dbctx"
	"github.com/akademus/akademus-api/internal/platform/apierr"
	"github.com/akademus/akademus-api/internal/platform/logger"
)

type CreateNodeInput struct {
	CourseID    uuid.UUID
	Type        types.NodeType
	Content     string
	IsFlashcard bool
	IsQuizItem  bool
}

// UpdateNodeInput has no CourseID: a node never moves between courses.
type UpdateNodeInput struct {
	Type        *types.NodeType
	Content     *string
	IsFlashcard *bool
	IsQuizItem  *bool
}

type NodeService interface {
	Create(ctx context.Context, ownerID uuid.UUID, in CreateNodeInput) (*NodeDTO, error)
	ListForCourse(ctx context.Context, courseID uuid.UUID) ([]*NodeDTO, error)
	GetOne(ctx context.Context, id uuid.UUID) (*NodeDTO, error)
	Update(ctx context.Context, id uuid.UUID, patch UpdateNodeInput) (*NodeDTO, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type nodeService struct {
	db         *gorm.DB
	log        *logger.Logger
	nodeRepo   repos.NodeRepo
	courseRepo repos.CourseRepo
}

func NewNodeService(db *gorm.DB, log *logger.Logger, nodeRepo repos.NodeRepo, courseRepo repos.CourseRepo) NodeService {
	return &nodeService{
		db:         db,
		log:        log.With("service", "NodeService"),
		nodeRepo:   nodeRepo,
		courseRepo: courseRepo,
	}
}

func checkNodeContent(fe fieldErrors, content string) string {
	content = strings.TrimSpace(content)
	switch {
	case content == "":
		fe.add("content", "content is required")
	case utf8.RuneCountInString(content) > types.MaxNodeContentLength:
		fe.add("content", fmt.Sprintf("content must not exceed %d characters", types.MaxNodeContentLength))
	}
	return content
}

func checkNodeType(fe fieldErrors, t types.NodeType) types.NodeType {
	if !t.Valid() {
		fe.add("type", "type must be one of TEXT, IMAGE, VIDEO, AUDIO")
	}
	return t
}

func (s *nodeService) Create(ctx context.Context, ownerID uuid.UUID, in CreateNodeInput) (*NodeDTO, error) {
	fe := fieldErrors{}
	if in.CourseID == uuid.Nil {
		fe.add("courseId", "course id is required")
	}
	nodeType := in.Type
	if nodeType == "" {
		nodeType = types.NodeText
	}
	checkNodeType(fe, nodeType)
	content := checkNodeContent(fe, in.Content)
	if err := fe.err(); err != nil {
		return nil, err
	}

	var created *types.Node
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		course, err := s.courseRepo.GetByIDAndOwner(dbc, in.CourseID, ownerID)
		if err != nil {
			return fmt.Errorf("load course: %w", err)
		}
		if course == nil {
			return apierr.NotFound("course not found")
		}
		rows, err := s.nodeRepo.Create(dbc, []*types.Node{{
			CourseID:    course.ID,
			Type:        nodeType,
			Content:     content,
			IsFlashcard: in.IsFlashcard,
			IsQuizItem:  in.IsQuizItem,
		}})
		if err != nil {
			return fmt.Errorf("create node: %w", err)
		}
		created = rows[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toNodeDTO(created), nil
}

func (s *nodeService) ListForCourse(ctx context.Context, courseID uuid.UUID) ([]*NodeDTO, error) {
	rows, err := s.nodeRepo.GetByCourseID(dbctx.Context{Ctx: ctx}, courseID)
	if err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}
	return toNodeDTOs(rows), nil
}

func (s *nodeService) GetOne(ctx context.Context, id uuid.UUID) (*NodeDTO, error) {
	rows, err := s.nodeRepo.GetByIDs(dbctx.Context{Ctx: ctx}, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("load node: %w", err)
	}
	if len(rows) == 0 {
		return nil, apierr.NotFound("node not found")
	}
	return toNodeDTO(rows[0]), nil
}

func (s *nodeService) Update(ctx context.Context, id uuid.UUID, patch UpdateNodeInput) (*NodeDTO, error) {
	fe := fieldErrors{}
	updates := map[string]interface{}{}
	if patch.Type != nil {
		updates["type"] = checkNodeType(fe, *patch.Type)
	}
	if patch.Content != nil {
		updates["content"] = checkNodeContent(fe, *patch.Content)
	}
	if patch.IsFlashcard != nil {
		updates["is_flashcard"] = *patch.IsFlashcard
	}
	if patch.IsQuizItem != nil {
		updates["is_quiz_item"] = *patch.IsQuizItem
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	var updated *types.Node
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		ok, err := s.nodeRepo.UpdateFields(dbc, id, updates)
		if err != nil {
			return fmt.Errorf("update node: %w", err)
		}
		if !ok {
			return apierr.NotFound("node not found")
		}
		rows, err := s.nodeRepo.GetByIDs(dbc, []uuid.UUID{id})
		if err != nil {
			return fmt.Errorf("reload node: %w", err)
		}
		if len(rows) == 0 {
			return apierr.NotFound("node not found")
		}
		updated = rows[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toNodeDTO(updated), nil
}

func (s *nodeService) Remove(ctx context.Context, id uuid.UUID) error {
	ok, err := s.nodeRepo.SoftDeleteByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return fmt.Errorf("delete node: %w", err)
	}
	if !ok {
		return apierr.NotFound("node not found")
	}
	return nil
}
