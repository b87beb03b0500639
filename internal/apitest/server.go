// Package apitest runs the full API router in-process over in-memory stores.
package apitest

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/project-tracker/internal/auth/authtest"
	authdomain "github.com/GoSim-25-26J-441/project-tracker/internal/auth/domain"
	"github.com/GoSim-25-26J-441/project-tracker/internal/auth/repository"
	authservice "github.com/GoSim-25-26J-441/project-tracker/internal/auth/service"
	"github.com/GoSim-25-26J-441/project-tracker/internal/auth/token"
	"github.com/GoSim-25-26J-441/project-tracker/internal/bootstrap"
	"github.com/GoSim-25-26J-441/project-tracker/internal/projects/projectstest"
)

// Credentials of the account seeded by NewServer.
const (
	Name     = "Ada Lovelace"
	Email    = "ada@example.com"
	Password = "correct horse battery"
	Secret   = "0123456789abcdef0123456789abcdef"
)

type Server struct {
	*httptest.Server

	Projects *projectstest.Store
	Auth     *authservice.AuthService
	User     *authdomain.User
}

// NewServer starts a server with one seeded user. It is closed when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := projectstest.NewStore()
	authSvc := authservice.NewAuthService(
		authtest.NewUsers(),
		token.NewIssuer(Secret, time.Hour),
		repository.NewMemoryRevocationStore(),
	)
	user, err := authSvc.CreateUser(context.Background(), authdomain.CreateUserRequest{
		Name: Name, Email: Email, Password: Password,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "project-tracker",
		Version:     "test",
		Projects:    store,
		Auth:        authSvc,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &Server{Server: srv, Projects: store, Auth: authSvc, User: user}
}

// Token logs the seeded user in and returns a bearer token.
func (s *Server) Token(t testing.TB) string {
	t.Helper()
	session, err := s.Auth.Login(context.Background(), Email, Password)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	return session.Token
}
