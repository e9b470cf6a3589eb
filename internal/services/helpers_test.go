package services

import (
	"testing"
	"time"

	"github.com/akademus/akademus-api/internal/data/repos"
	"github.com/akademus/akademus-api/internal/data/repos/testutil"
	"github.com/akademus/akademus-api/internal/platform/apierr"
)

type testServices struct {
	users   UserService
	auth    AuthService
	courses CourseService
	nodes   NodeService
	tokens  *TokenIssuer
	repos   struct {
		users   repos.UserRepo
		courses repos.CourseRepo
		nodes   repos.NodeRepo
	}
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	db := testutil.SQLite(t)
	log := testutil.Logger(t)

	ts := &testServices{}
	ts.repos.users = repos.NewUserRepo(db, log)
	ts.repos.courses = repos.NewCourseRepo(db, log)
	ts.repos.nodes = repos.NewNodeRepo(db, log)

	hasher := NewPasswordHasher(4)
	ts.tokens = NewTokenIssuer("test-secret", "akademus-api", time.Hour)
	ts.users = NewUserService(db, log, ts.repos.users, hasher)
	ts.auth = NewAuthService(log, ts.repos.users, ts.users, hasher, ts.tokens)
	ts.courses = NewCourseService(db, log, ts.repos.courses)
	ts.nodes = NewNodeService(db, log, ts.repos.nodes, ts.repos.courses)
	return ts
}

func requireCode(t *testing.T, op string, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("%s: expected %s error, got nil", op, code)
	}
	if !apierr.Is(err, code) {
		t.Fatalf("%s: expected %s error, got %v", op, code, err)
	}
}
