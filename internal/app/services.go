package app

import (
	"gorm.io/gorm"

	"github.com/akademus/akademus-api/internal/platform/logger"
	"github.com/akademus/akademus-api/internal/services"
)

type Services struct {
	Tokens *services.TokenIssuer
	Hasher *services.PasswordHasher

	Auth   services.AuthService
	User   services.UserService
	Course services.CourseService
	Node   services.NodeService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) Services {
	log.Info("Wiring services...")
	tokens := services.NewTokenIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiresIn)
	hasher := services.NewPasswordHasher(cfg.BcryptCost)

	userService := services.NewUserService(db, log, reposet.User, hasher)
	return Services{
		Tokens: tokens,
		Hasher: hasher,
		Auth:   services.NewAuthService(log, reposet.User, userService, hasher, tokens),
		User:   userService,
		Course: services.NewCourseService(db, log, reposet.Course),
		Node:   services.NewNodeService(db, log, reposet.Node, reposet.Course),
	}
}
