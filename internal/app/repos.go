package app

import (
	"gorm.io/gorm"

	"github.com/akademus/akademus-api/internal/data/repos"
	"github.com/akademus/akademus-api/internal/platform/logger"
)

type Repos struct {
	User   repos.UserRepo
	Course repos.CourseRepo
	Node   repos.NodeRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:   repos.NewUserRepo(db, log),
		Course: repos.NewCourseRepo(db, log),
		Node:   repos.NewNodeRepo(db, log),
	}
}
