package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/akademus/akademus-api/internal/data/repos"
	types "github.com/akademus/akademus-api/internal/domain"
	"github.com/akademus/akademus-api/internal/pkg/dbctx"
	"github.com/akademus/akademus-api/internal/platform/apierr"
	"github.com/akademus/akademus-api/internal/platform/logger"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type CreateUserInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// UpdateUserInput is a partial update; empty fields are left untouched.
type UpdateUserInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
	Status    types.UserStatus
}

type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*UserDTO, error)
	FindOne(ctx context.Context, id uuid.UUID) (*UserDTO, error)
	ListPaginated(ctx context.Context, page, limit int) ([]*UserDTO, int64, error)
	Update(ctx context.Context, id uuid.UUID, patch UpdateUserInput) (*UserDTO, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
	hasher   *PasswordHasher
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, hasher *PasswordHasher) UserService {
	return &userService{
		db:       db,
		log:      log.With("service", "UserService"),
		userRepo: userRepo,
		hasher:   hasher,
	}
}

func (s *userService) Create(ctx context.Context, in CreateUserInput) (*UserDTO, error) {
	fe := fieldErrors{}
	email := checkEmail(fe, in.Email)
	firstName := checkName(fe, "firstName", "first name", in.FirstName)
	lastName := checkName(fe, "lastName", "last name", in.LastName)
	if in.Password == "" {
		fe.add("password", "password is required")
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var created *types.User
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		exists, err := s.userRepo.EmailExists(dbc, email)
		if err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if exists {
			return apierr.Conflict("user with this email already exists")
		}
		rows, err := s.userRepo.Create(dbc, []*types.User{{
			Email:     email,
			Password:  hashed,
			FirstName: firstName,
			LastName:  lastName,
			Status:    types.UserStatusActive,
		}})
		if err != nil {
			return translateWriteErr("create user", err, "user with this email already exists")
		}
		created = rows[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("user created", "user_id", created.ID)
	return toUserDTO(created), nil
}

func (s *userService) FindOne(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	rows, err := s.userRepo.GetByIDs(dbctx.Context{Ctx: ctx}, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if len(rows) == 0 {
		return nil, apierr.NotFound("user not found")
	}
	return toUserDTO(rows[0]), nil
}

func (s *userService) ListPaginated(ctx context.Context, page, limit int) ([]*UserDTO, int64, error) {
	fe := fieldErrors{}
	if page < 1 {
		fe.add("page", "page must be at least 1")
	}
	if limit < 1 {
		fe.add("limit", "limit must be at least 1")
	}
	if err := fe.err(); err != nil {
		return nil, 0, err
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	rows, total, err := s.userRepo.List(dbctx.Context{Ctx: ctx}, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	out := make([]*UserDTO, 0, len(rows))
	for _, u := range rows {
		out = append(out, toUserDTO(u))
	}
	return out, total, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, patch UpdateUserInput) (*UserDTO, error) {
	fe := fieldErrors{}
	updates := map[string]interface{}{}
	var email string
	if patch.Email != "" {
		email = checkEmail(fe, patch.Email)
		updates["email"] = email
	}
	if patch.FirstName != "" {
		updates["first_name"] = checkName(fe, "firstName", "first name", patch.FirstName)
	}
	if patch.LastName != "" {
		updates["last_name"] = checkName(fe, "lastName", "last name", patch.LastName)
	}
	if patch.Status != "" {
		if !patch.Status.Valid() {
			fe.add("status", "status must be one of ACTIVE, SUSPENDED")
		}
		updates["status"] = patch.Status
	}
	if err := fe.err(); err != nil {
		return nil, err
	}
	if patch.Password != "" {
		hashed, err := s.hasher.Hash(patch.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		updates["password"] = hashed
	}

	var updated *types.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		current, err := s.userRepo.GetByIDs(dbc, []uuid.UUID{id})
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}
		if len(current) == 0 {
			return apierr.NotFound("user not found")
		}
		if email != "" && email != current[0].Email {
			taken, err := s.userRepo.EmailTakenByOther(dbc, email, id)
			if err != nil {
				return fmt.Errorf("check email: %w", err)
			}
			if taken {
				return apierr.Conflict("user with this email already exists")
			}
		}
		ok, err := s.userRepo.UpdateFields(dbc, id, updates)
		if err != nil {
			return translateWriteErr("update user", err, "user with this email already exists")
		}
		if !ok {
			return apierr.NotFound("user not found")
		}
		rows, err := s.userRepo.GetByIDs(dbc, []uuid.UUID{id})
		if err != nil {
			return fmt.Errorf("reload user: %w", err)
		}
		if len(rows) == 0 {
			return apierr.NotFound("user not found")
		}
		updated = rows[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toUserDTO(updated), nil
}

func (s *userService) Remove(ctx context.Context, id uuid.UUID) error {
	ok, err := s.userRepo.SoftDeleteByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if !ok {
		return apierr.NotFound("user not found")
	}
	s.log.Info("user removed", "user_id", id)
	return nil
}

// translateWriteErr maps a unique-index violation to Conflict.
func translateWriteErr(op string, err error, conflictMsg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apierr.Conflict(conflictMsg)
	}
	return fmt.Errorf("%s: %w", op, err)
}
