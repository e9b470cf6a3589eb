package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akademus/akademus-api/internal/data/repos"
	"github.com/akademus/akademus-api/internal/data/repos/testutil"
	httpH "github.com/akademus/akademus-api/internal/http/handlers"
	httpMW "github.com/akademus/akademus-api/internal/http/middleware"
	"github.com/akademus/akademus-api/internal/observability"
	"github.com/akademus/akademus-api/internal/platform/ratelimit"
	"github.com/akademus/akademus-api/internal/services"
)

type testAPI struct {
	t      *testing.T
	engine *gin.Engine
}

func newTestAPI(t *testing.T, authRule ratelimit.Rule) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.SQLite(t)
	log := testutil.Logger(t)

	userRepo := repos.NewUserRepo(db, log)
	courseRepo := repos.NewCourseRepo(db, log)
	nodeRepo := repos.NewNodeRepo(db, log)

	hasher := services.NewPasswordHasher(4)
	tokens := services.NewTokenIssuer("router-test-secret", "akademus-api", time.Hour)
	userService := services.NewUserService(db, log, userRepo, hasher)
	authService := services.NewAuthService(log, userRepo, userService, hasher, tokens)
	courseService := services.NewCourseService(db, log, courseRepo)
	nodeService := services.NewNodeService(db, log, nodeRepo, courseRepo)

	engine := NewRouter(RouterConfig{
		Log:                 log,
		Metrics:             observability.NewMetrics(),
		AuthHandler:         httpH.NewAuthHandler(log, authService),
		AuthMiddleware:      httpMW.NewAuthMiddleware(log, authService),
		RateLimitMiddleware: httpMW.NewRateLimitMiddleware(log, ratelimit.NewMemory(authRule), nil),
		UserHandler:         httpH.NewUserHandler(log, userService),
		CourseHandler:       httpH.NewCourseHandler(log, courseService),
		NodeHandler:         httpH.NewNodeHandler(log, nodeService),
		HealthHandler:       httpH.NewHealthHandler("test", "test"),
	})
	return &testAPI{t: t, engine: engine}
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) expect(rec *httptest.ResponseRecorder, status int, out any) {
	a.t.Helper()
	if rec.Code != status {
		a.t.Fatalf("status: got %d want %d body=%s", rec.Code, status, rec.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			a.t.Fatalf("decode: %v body=%s", err, rec.Body.String())
		}
	}
}

type errorBody struct {
	Error struct {
		Message string            `json:"message"`
		Code    string            `json:"code"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

func (a *testAPI) register(email string) string {
	a.t.Helper()
	var tok services.TokenResponse
	a.expect(a.do("POST", "/auth/register", "", map[string]string{
		"email": email, "firstName": "Ada", "lastName": "Lovelace", "password": "s3cret-pass",
	}), http.StatusCreated, &tok)
	if tok.AccessToken == "" {
		a.t.Fatalf("register: empty token")
	}
	return tok.AccessToken
}

func TestCourseAndNodeScenario(t *testing.T) {
	api := newTestAPI(t, ratelimit.Rule{})
	token := api.register("a@x.com")

	var login services.TokenResponse
	api.expect(api.do("POST", "/auth/login", "", map[string]string{
		"email": "a@x.com", "password": "s3cret-pass",
	}), http.StatusOK, &login)

	var me services.UserDTO
	api.expect(api.do("GET", "/auth/profile", login.AccessToken, nil), http.StatusOK, &me)
	if me.Email != "a@x.com" || !me.IsActive {
		t.Fatalf("profile: unexpected %+v", me)
	}

	var course services.CourseDTO
	api.expect(api.do("POST", "/courses", token, map[string]string{"title": "Bio 101"}), http.StatusCreated, &course)
	if course.OwnerID != me.ID {
		t.Fatalf("create course: owner %s want %s", course.OwnerID, me.ID)
	}

	var node services.NodeDTO
	api.expect(api.do("POST", "/nodes", token, map[string]any{
		"courseId": course.ID.String(), "type": "TEXT", "content": "cell wall",
	}), http.StatusCreated, &node)

	var nodes []services.NodeDTO
	api.expect(api.do("GET", "/nodes/course/"+course.ID.String(), token, nil), http.StatusOK, &nodes)
	if len(nodes) != 1 || nodes[0].ID != node.ID {
		t.Fatalf("list nodes: unexpected %+v", nodes)
	}

	api.expect(api.do("DELETE", "/courses/"+course.ID.String(), token, nil), http.StatusNoContent, nil)
	api.expect(api.do("GET", "/courses/"+course.ID.String(), token, nil), http.StatusNotFound, nil)
	api.expect(api.do("DELETE", "/courses/"+course.ID.String(), token, nil), http.StatusNotFound, nil)

	nodes = nil
	api.expect(api.do("GET", "/nodes/course/"+course.ID.String(), token, nil), http.StatusOK, &nodes)
	if len(nodes) != 1 {
		t.Fatalf("list nodes after course delete: got %d", len(nodes))
	}

	content := "plasma membrane"
	var updated services.NodeDTO
	api.expect(api.do("PUT", "/nodes/"+node.ID.String(), token, map[string]any{"content": content, "isFlashcard": true}), http.StatusOK, &updated)
	if updated.Content != content || !updated.IsFlashcard || updated.Type != "TEXT" {
		t.Fatalf("update node: unexpected %+v", updated)
	}
	api.expect(api.do("DELETE", "/nodes/"+node.ID.String(), token, nil), http.StatusNoContent, nil)
	api.expect(api.do("GET", "/nodes/"+node.ID.String(), token, nil), http.StatusNotFound, nil)
}

func TestCourseOwnershipIsHidden(t *testing.T) {
	api := newTestAPI(t, ratelimit.Rule{})
	alice := api.register("alice@x.com")
	bob := api.register("bob@x.com")

	var course services.CourseDTO
	api.expect(api.do("POST", "/courses", alice, map[string]string{"title": "Chemistry"}), http.StatusCreated, &course)

	path := "/courses/" + course.ID.String()
	api.expect(api.do("GET", path, bob, nil), http.StatusNotFound, nil)
	api.expect(api.do("PATCH", path, bob, map[string]string{"title": "Stolen"}), http.StatusNotFound, nil)
	api.expect(api.do("DELETE", path, bob, nil), http.StatusNotFound, nil)
	api.expect(api.do("POST", "/nodes", bob, map[string]any{"courseId": course.ID.String(), "content": "x"}), http.StatusNotFound, nil)

	var list []services.CourseDTO
	api.expect(api.do("GET", "/courses", bob, nil), http.StatusOK, &list)
	if len(list) != 0 {
		t.Fatalf("bob's courses: expected none, got %d", len(list))
	}
}

func TestAuthAndValidationErrors(t *testing.T) {
	api := newTestAPI(t, ratelimit.Rule{})
	token := api.register("v@x.com")

	var eb errorBody
	api.expect(api.do("GET", "/courses", "", nil), http.StatusUnauthorized, &eb)
	if eb.Error.Code != "unauthorized" {
		t.Fatalf("no token: code %q", eb.Error.Code)
	}
	api.expect(api.do("GET", "/courses", "not-a-jwt", nil), http.StatusUnauthorized, nil)

	eb = errorBody{}
	api.expect(api.do("POST", "/auth/register", "", map[string]string{"email": "nope"}), http.StatusBadRequest, &eb)
	if eb.Error.Code != "validation_failed" || eb.Error.Fields["email"] == "" || eb.Error.Fields["firstName"] == "" {
		t.Fatalf("register validation: unexpected %+v", eb.Error)
	}

	api.expect(api.do("POST", "/auth/register", "", map[string]string{
		"email": "v@x.com", "firstName": "A", "lastName": "B", "password": "pw",
	}), http.StatusConflict, nil)
	api.expect(api.do("POST", "/auth/login", "", map[string]string{
		"email": "v@x.com", "password": "wrong",
	}), http.StatusUnauthorized, nil)

	api.expect(api.do("GET", "/courses/not-a-uuid", token, nil), http.StatusBadRequest, nil)
	api.expect(api.do("POST", "/courses", token, map[string]string{"title": "ab"}), http.StatusBadRequest, nil)
	api.expect(api.do("POST", "/nodes", token, map[string]any{"courseId": "bad", "content": "x"}), http.StatusBadRequest, nil)
	api.expect(api.do("POST", "/nodes", token, map[string]any{
		"courseId": "6f1c1f7e-1111-4a4a-9a9a-000000000001", "content": "x", "type": "PDF",
	}), http.StatusBadRequest, nil)
}

func TestUsersEndpoints(t *testing.T) {
	api := newTestAPI(t, ratelimit.Rule{})
	for i := 0; i < 15; i++ {
		api.expect(api.do("POST", "/users", "", map[string]string{
			"email": testutil.UniqueEmail("u"), "firstName": "F", "lastName": "L", "password": "pw",
		}), http.StatusCreated, nil)
	}

	var page []services.UserDTO
	rec := api.do("GET", "/users?page=2&limit=10", "", nil)
	api.expect(rec, http.StatusOK, &page)
	if len(page) != 5 {
		t.Fatalf("page 2: got %d users", len(page))
	}
	if got := rec.Header().Get(httpH.TotalCountHeader); got != "15" {
		t.Fatalf("total header: got %q", got)
	}
	api.expect(api.do("GET", "/users?page=abc", "", nil), http.StatusBadRequest, nil)
	api.expect(api.do("GET", "/users?limit=0", "", nil), http.StatusBadRequest, nil)

	var u services.UserDTO
	api.expect(api.do("PATCH", "/users/"+page[0].ID.String(), "", map[string]string{"firstName": "Grace"}), http.StatusOK, &u)
	if u.FirstName != "Grace" || u.LastName != "L" {
		t.Fatalf("patch user: unexpected %+v", u)
	}
	api.expect(api.do("PATCH", "/users/"+page[0].ID.String(), "", map[string]string{"status": "BANNED"}), http.StatusBadRequest, nil)
	api.expect(api.do("DELETE", "/users/"+page[0].ID.String(), "", nil), http.StatusNoContent, nil)
	api.expect(api.do("DELETE", "/users/"+page[0].ID.String(), "", nil), http.StatusNotFound, nil)
	api.expect(api.do("GET", "/users/"+page[0].ID.String(), "", nil), http.StatusNotFound, nil)
}

func TestAuthRateLimit(t *testing.T) {
	api := newTestAPI(t, ratelimit.Rule{Max: 3, Window: time.Minute})
	body := map[string]string{"email": "rl@x.com", "password": "whatever"}
	for i := 0; i < 3; i++ {
		api.expect(api.do("POST", "/auth/login", "", body), http.StatusUnauthorized, nil)
	}
	var eb errorBody
	api.expect(api.do("POST", "/auth/login", "", body), http.StatusTooManyRequests, &eb)
	if eb.Error.Code != "too_many_requests" {
		t.Fatalf("rate limit: code %q", eb.Error.Code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	api := newTestAPI(t, ratelimit.Rule{})

	var health map[string]any
	rec := api.do("GET", "/health", "", nil)
	api.expect(rec, http.StatusOK, &health)
	if health["status"] != "ok" || health["service"] != "akademus-api" {
		t.Fatalf("health: unexpected %+v", health)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("health: missing X-Request-Id")
	}

	rec = api.do("GET", "/metrics", "", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `akademus_http_requests_total{method="GET",route="/health",status="200"} 1`) {
		t.Fatalf("metrics: status=%d body missing health sample", rec.Code)
	}
}
