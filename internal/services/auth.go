package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/akademus/akademus-api/internal/data/repos"
	types "github.com/akademus/akademus-api/internal/domain"
	"github.com/akademus/akademus-api/internal/pkg/dbctx"
	"github.com/akademus/akademus-api/internal/platform/apierr"
	"github.com/akademus/akademus-api/internal/platform/ctxutil"
	"github.com/akademus/akademus-api/internal/platform/logger"
)

const invalidCredentials = "invalid credentials"

type RegisterInput = CreateUserInput

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*TokenResponse, error)
	Login(ctx context.Context, email, password string) (*TokenResponse, error)
	ValidateSession(ctx context.Context, tokenString string) (*types.User, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	Profile(ctx context.Context) (*UserDTO, error)
}

type authService struct {
	log         *logger.Logger
	userRepo    repos.UserRepo
	userService UserService
	hasher      *PasswordHasher
	tokens      *TokenIssuer
}

func NewAuthService(
	log *logger.Logger,
	userRepo repos.UserRepo,
	userService UserService,
	hasher *PasswordHasher,
	tokens *TokenIssuer,
) AuthService {
	return &authService{
		log:         log.With("service", "AuthService"),
		userRepo:    userRepo,
		userService: userService,
		hasher:      hasher,
		tokens:      tokens,
	}
}

func (as *authService) Register(ctx context.Context, in RegisterInput) (*TokenResponse, error) {
	created, err := as.userService.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	tok, err := as.tokens.Issue(created.ID, created.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	as.log.Info("user registered", "user_id", created.ID)
	return &TokenResponse{AccessToken: tok}, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apierr.Unauthorized(invalidCredentials)
	}

	users, err := as.userRepo.GetByEmails(dbctx.Context{Ctx: ctx}, []string{email})
	if err != nil {
		return nil, fmt.Errorf("load user by email: %w", err)
	}
	if len(users) == 0 || !users[0].CanSignIn() {
		return nil, apierr.Unauthorized(invalidCredentials)
	}
	user := users[0]
	if !as.hasher.Compare(user.Password, password) {
		as.log.Warn("login rejected", "user_id", user.ID)
		return nil, apierr.Unauthorized(invalidCredentials)
	}

	tok, err := as.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &TokenResponse{AccessToken: tok}, nil
}

// ValidateSession fails closed: any token or account problem is Unauthorized.
func (as *authService) ValidateSession(ctx context.Context, tokenString string) (*types.User, error) {
	userID, _, err := as.tokens.Parse(tokenString)
	if err != nil {
		as.log.Debug("session token rejected", "error", err)
		return nil, apierr.Unauthorized("invalid or expired token")
	}
	users, err := as.userRepo.GetByIDs(dbctx.Context{Ctx: ctx}, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("load session user: %w", err)
	}
	if len(users) == 0 || !users[0].CanSignIn() {
		return nil, apierr.Unauthorized("invalid or expired token")
	}
	return users[0], nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	user, err := as.ValidateSession(ctx, tokenString)
	if err != nil {
		return ctx, err
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		TokenString: tokenString,
		UserID:      user.ID,
		Email:       user.Email,
	}), nil
}

func (as *authService) Profile(ctx context.Context) (*UserDTO, error) {
	userID := ctxutil.UserID(ctx)
	if userID == uuid.Nil {
		return nil, apierr.Unauthorized("not authenticated")
	}
	users, err := as.userRepo.GetByIDs(dbctx.Context{Ctx: ctx}, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if len(users) == 0 || !users[0].CanSignIn() {
		return nil, apierr.Unauthorized("not authenticated")
	}
	return toUserDTO(users[0]), nil
}
