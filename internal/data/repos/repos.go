package repos

import (
	"gorm.io/gorm"

	"github.com/akademus/akademus-api/internal/data/repos/learning"
	"github.com/akademus/akademus-api/internal/data/repos/user"
	"github.com/akademus/akademus-api/internal/platform/logger"
)

type UserRepo = user.UserRepo

type CourseRepo = learning.CourseRepo
type NodeRepo = learning.NodeRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return user.NewUserRepo(db, baseLog)
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return learning.NewCourseRepo(db, baseLog)
}

func NewNodeRepo(db *gorm.DB, baseLog *logger.Logger) NodeRepo {
	return learning.NewNodeRepo(db, baseLog)
}
