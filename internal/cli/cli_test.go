package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/akademus/akademus-api/internal/client"
	"github.com/akademus/akademus-api/internal/data/repos"
	"github.com/akademus/akademus-api/internal/data/repos/testutil"
	akhttp "github.com/akademus/akademus-api/internal/http"
	httpH "github.com/akademus/akademus-api/internal/http/handlers"
	httpMW "github.com/akademus/akademus-api/internal/http/middleware"
	"github.com/akademus/akademus-api/internal/services"
)

func startAPI(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.SQLite(t)
	log := testutil.Logger(t)

	userRepo := repos.NewUserRepo(db, log)
	courseRepo := repos.NewCourseRepo(db, log)
	hasher := services.NewPasswordHasher(4)
	tokens := services.NewTokenIssuer("cli-test-secret", "akademus-api", time.Hour)
	userService := services.NewUserService(db, log, userRepo, hasher)
	authService := services.NewAuthService(log, userRepo, userService, hasher, tokens)

	engine := akhttp.NewRouter(akhttp.RouterConfig{
		Log:            log,
		AuthHandler:    httpH.NewAuthHandler(log, authService),
		AuthMiddleware: httpMW.NewAuthMiddleware(log, authService),
		CourseHandler:  httpH.NewCourseHandler(log, services.NewCourseService(db, log, courseRepo)),
		NodeHandler:    httpH.NewNodeHandler(log, services.NewNodeService(db, log, repos.NewNodeRepo(db, log), courseRepo)),
	})
	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return srv.URL
}

type runner struct {
	t         *testing.T
	apiURL    string
	tokenFile string
}

func (r runner) run(args ...string) (string, error) {
	r.t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--api", r.apiURL, "--token-file", r.tokenFile}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (r runner) mustJSON(out any, args ...string) {
	r.t.Helper()
	raw, err := r.run(append(args, "--json")...)
	require.NoError(r.t, err, raw)
	require.NoError(r.t, json.Unmarshal([]byte(raw), out), raw)
}

func TestCLISession(t *testing.T) {
	r := runner{t: t, apiURL: startAPI(t), tokenFile: filepath.Join(t.TempDir(), "token")}

	out, err := r.run("register", "--email", "a@x.com", "--first-name", "Ada", "--last-name", "Lovelace", "--password", "s3cret-pass")
	require.NoError(t, err, out)
	require.Contains(t, out, "a@x.com")

	var me client.User
	r.mustJSON(&me, "whoami")
	require.Equal(t, "a@x.com", me.Email)

	var course client.Course
	r.mustJSON(&course, "courses", "create", "--title", "Bio 101")
	require.Equal(t, "Bio 101", course.Title)

	var node client.Node
	r.mustJSON(&node, "nodes", "create", "--course", course.ID.String(), "--content", "cell wall", "--flashcard")
	require.True(t, node.IsFlashcard)
	require.Equal(t, "TEXT", node.Type)

	var updated client.Node
	r.mustJSON(&updated, "nodes", "update", node.ID.String(), "--quiz")
	require.True(t, updated.IsQuizItem)
	require.True(t, updated.IsFlashcard)
	require.Equal(t, "cell wall", updated.Content)

	out, err = r.run("nodes", "list", course.ID.String())
	require.NoError(t, err)
	require.Contains(t, out, "cell wall")

	var courses []client.Course
	r.mustJSON(&courses, "courses", "list")
	require.Len(t, courses, 1)

	_, err = r.run("courses", "delete", course.ID.String())
	require.NoError(t, err)
	_, err = r.run("courses", "get", course.ID.String())
	require.Error(t, err)
	require.True(t, client.IsNotFound(err))

	_, err = r.run("logout")
	require.NoError(t, err)
	_, err = r.run("whoami")
	require.ErrorContains(t, err, "not signed in")
}

func TestCLIRejectsBadInput(t *testing.T) {
	r := runner{t: t, apiURL: "http://127.0.0.1:1", tokenFile: filepath.Join(t.TempDir(), "token")}

	_, err := r.run("courses", "get", "not-a-uuid")
	require.ErrorContains(t, err, "invalid id")

	t.Setenv("AKADEMUS_PASSWORD", "")
	_, err = r.run("login", "--email", "a@x.com")
	require.ErrorContains(t, err, "password required")
}

func TestPreview(t *testing.T) {
	require.Equal(t, "short", preview("short", 10))
	require.Equal(t, "abcd…", preview("abcdefgh", 5))
}
