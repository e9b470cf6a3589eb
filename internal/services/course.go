package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akademus/akademus-api/internal/data/repos"
	types "github.com/akademus/akademus-api/internal/domain"
	"github.com/akademus/akademus-api/internal/pkg/dbctx"
	"github.com/akademus/akademus-api/internal/platform/apierr"
	"github.com/akademus/akademus-api/internal/platform/logger"
)

type CreateCourseInput struct {
	Title string
}

type UpdateCourseInput struct {
	Title *string
}

// CourseService scopes every operation to the owning user. A course owned by
// someone else is reported exactly like a missing one.
type CourseService interface {
	Create(ctx context.Context, ownerID uuid.UUID, in CreateCourseInput) (*CourseDTO, error)
	ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]*CourseDTO, error)
	GetOne(ctx context.Context, id, ownerID uuid.UUID) (*CourseDTO, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, patch UpdateCourseInput) (*CourseDTO, error)
	Remove(ctx context.Context, id, ownerID uuid.UUID) error
}

type courseService struct {
	db         *gorm.DB
	log        *logger.Logger
	courseRepo repos.CourseRepo
}

func NewCourseService(db *gorm.DB, log *logger.Logger, courseRepo repos.CourseRepo) CourseService {
	return &courseService{
		db:         db,
		log:        log.With("service", "CourseService"),
		courseRepo: courseRepo,
	}
}

func (s *courseService) Create(ctx context.Context, ownerID uuid.UUID, in CreateCourseInput) (*CourseDTO, error) {
	fe := fieldErrors{}
	title := checkCourseTitle(fe, in.Title)
	if err := fe.err(); err != nil {
		return nil, err
	}

	rows, err := s.courseRepo.Create(dbctx.Context{Ctx: ctx}, []*types.Course{{
		OwnerID: ownerID,
		Title:   title,
	}})
	if err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	s.log.Info("course created", "course_id", rows[0].ID, "owner_id", ownerID)
	return toCourseDTO(rows[0]), nil
}

func (s *courseService) ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]*CourseDTO, error) {
	rows, err := s.courseRepo.GetByOwnerID(dbctx.Context{Ctx: ctx}, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return toCourseDTOs(rows), nil
}

func (s *courseService) GetOne(ctx context.Context, id, ownerID uuid.UUID) (*CourseDTO, error) {
	c, err := s.courseRepo.GetByIDAndOwner(dbctx.Context{Ctx: ctx}, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if c == nil {
		return nil, apierr.NotFound("course not found")
	}
	return toCourseDTO(c), nil
}

func (s *courseService) Update(ctx context.Context, id, ownerID uuid.UUID, patch UpdateCourseInput) (*CourseDTO, error) {
	fe := fieldErrors{}
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = checkCourseTitle(fe, *patch.Title)
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	var updated *types.Course
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		ok, err := s.courseRepo.UpdateFieldsByOwner(dbc, id, ownerID, updates)
		if err != nil {
			return fmt.Errorf("update course: %w", err)
		}
		if !ok {
			return apierr.NotFound("course not found")
		}
		c, err := s.courseRepo.GetByIDAndOwner(dbc, id, ownerID)
		if err != nil {
			return fmt.Errorf("reload course: %w", err)
		}
		if c == nil {
			return apierr.NotFound("course not found")
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCourseDTO(updated), nil
}

func (s *courseService) Remove(ctx context.Context, id, ownerID uuid.UUID) error {
	ok, err := s.courseRepo.SoftDeleteByOwner(dbctx.Context{Ctx: ctx}, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if !ok {
		return apierr.NotFound("course not found")
	}
	s.log.Info("course removed", "course_id", id, "owner_id", ownerID)
	return nil
}
