package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/project-tracker/internal/auth/authtest"
	authdomain "github.com/GoSim-25-26J-441/project-tracker/internal/auth/domain"
	"github.com/GoSim-25-26J-441/project-tracker/internal/auth/repository"
	authservice "github.com/GoSim-25-26J-441/project-tracker/internal/auth/service"
	"github.com/GoSim-25-26J-441/project-tracker/internal/auth/token"
	"github.com/GoSim-25-26J-441/project-tracker/internal/projects/projectstest"
)

func buildTestRouter(t *testing.T, loginRate int) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authSvc := authservice.NewAuthService(
		authtest.NewUsers(),
		token.NewIssuer("0123456789abcdef0123456789abcdef", time.Hour),
		repository.NewMemoryRevocationStore(),
	)
	_, err := authSvc.CreateUser(context.Background(), authdomain.CreateUserRequest{
		Name: "Ada", Email: "ada@example.com", Password: "correct horse",
	})
	require.NoError(t, err)
	session, err := authSvc.Login(context.Background(), "ada@example.com", "correct horse")
	require.NoError(t, err)

	r := BuildRouter(RouterDeps{
		ServiceName:        "project-tracker",
		Version:            "test",
		Projects:           projectstest.NewStore(),
		Auth:               authSvc,
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		LoginRatePerMinute: loginRate,
	})
	return r, session.Token
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestBuildRouter_Routes(t *testing.T) {
	r, tok := buildTestRouter(t, 0)

	rr := serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))

	rr = serve(r, httptest.NewRequest(http.MethodGet, "/api/projects", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader(`{"title":"Write spec"}`))
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Content-Type", "application/json")
	rr = serve(r, req)
	assert.Equal(t, http.StatusCreated, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rr = serve(r, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"title":"Write spec"`)

	rr = serve(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "project_tracker_http_requests_total")
}

func TestBuildRouter_CORS(t *testing.T) {
	r, _ := buildTestRouter(t, 0)

	req := httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "authorization,content-type")
	rr := serve(r, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
	req.Header.Set("Origin", "http://evil.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr = serve(r, req)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestBuildRouter_LoginRateLimited(t *testing.T) {
	r, _ := buildTestRouter(t, 2)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"email":"ada@example.com","password":"wrong"}`))
		req.Header.Set("Content-Type", "application/json")
		codes = append(codes, serve(r, req).Code)
	}
	assert.Equal(t, []int{http.StatusUnauthorized, http.StatusUnauthorized, http.StatusTooManyRequests}, codes)
}

func TestSetGinMode(t *testing.T) {
	prev := gin.Mode()
	t.Cleanup(func() { gin.SetMode(prev) })

	SetGinMode("production")
	assert.Equal(t, gin.ReleaseMode, gin.Mode())
	SetGinMode("test")
	assert.Equal(t, gin.TestMode, gin.Mode())
}
