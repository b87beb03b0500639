package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/GoSim-25-26J-441/project-tracker/internal/auth"
	"github.com/GoSim-25-26J-441/project-tracker/internal/projects/domain"
	"github.com/GoSim-25-26J-441/project-tracker/internal/projects/projectstest"
	"github.com/GoSim-25-26J-441/project-tracker/internal/projects/service"
)

const testUser int64 = 1

func setupRouter(t *testing.T, log *zap.Logger) (*gin.Engine, *projectstest.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := projectstest.NewStore()
	h := New(service.NewProjectService(store), log)

	r := gin.New()
	api := r.Group("/api", func(c *gin.Context) {
		auth.SetUser(c, testUser, "test-jti", time.Now().Add(time.Hour))
		c.Next()
	})
	h.Register(api.Group("/projects"))
	return r, store
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeProject(t *testing.T, rr *httptest.ResponseRecorder) domain.Project {
	t.Helper()
	var p domain.Project
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	return p
}

func decodeList(t *testing.T, rr *httptest.ResponseRecorder) []domain.Project {
	t.Helper()
	var items []domain.Project
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &items))
	return items
}

func TestCreateProject(t *testing.T) {
	r, _ := setupRouter(t, nil)

	rr := do(r, http.MethodPost, "/api/projects", `{"title":"Write spec"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	p := decodeProject(t, rr)
	assert.Equal(t, "Write spec", p.Title)
	assert.Equal(t, domain.StatusInProgress, p.Status)
	assert.Equal(t, testUser, p.UserID)
	assert.NotZero(t, p.ID)
	assert.Nil(t, p.DueDate)
}

func TestCreateProject_AllFields(t *testing.T) {
	r, _ := setupRouter(t, nil)

	rr := do(r, http.MethodPost, "/api/projects",
		`{"title":"Ship","description":"v1","due_date":"2024-03-01","status":"completed"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"due_date":"2024-03-01"`)

	p := decodeProject(t, rr)
	assert.Equal(t, "v1", *p.Description)
	assert.Equal(t, domain.StatusCompleted, p.Status)
}

func TestCreateProject_EmptyOptionalsAreAbsent(t *testing.T) {
	r, _ := setupRouter(t, nil)

	rr := do(r, http.MethodPost, "/api/projects", `{"title":"Undated","description":"","due_date":"","status":""}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	p := decodeProject(t, rr)
	assert.Equal(t, domain.StatusInProgress, p.Status)
	assert.Nil(t, p.DueDate)
	assert.Nil(t, p.Description)
}

func TestCreateProject_TitleLengthAfterTrim(t *testing.T) {
	r, _ := setupRouter(t, nil)

	title := strings.Repeat("a", 250)
	rr := do(r, http.MethodPost, "/api/projects", `{"title":"`+title+`          "}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, title, decodeProject(t, rr).Title)

	seeded := decodeProject(t, rr)
	rr = do(r, http.MethodPut, "/api/projects/"+itoa(seeded.ID), `{"title":"  `+strings.Repeat("b", 255)+`  "}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, strings.Repeat("b", 255), decodeProject(t, rr).Title)
}

func TestCreateProject_Validation(t *testing.T) {
	r, store := setupRouter(t, nil)

	tests := []struct {
		name    string
		body    string
		field   string
		message string
	}{
		{"missing title", `{}`, "title", "The title field is required."},
		{"blank title", `{"title":"   "}`, "title", "The title field is required."},
		{"long title", `{"title":"` + strings.Repeat("a", 256) + `"}`, "title", "The title field must not be greater than 255 characters."},
		{"bad date", `{"title":"x","due_date":"tomorrow"}`, "due_date", "The due date field must be a valid date."},
		{"bad status", `{"title":"x","status":"archived"}`, "status", "The selected status is invalid."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(r, http.MethodPost, "/api/projects", tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

			var body struct {
				Message string              `json:"message"`
				Errors  map[string][]string `json:"errors"`
			}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body.Message)
			assert.Equal(t, []string{tt.message}, body.Errors[tt.field])
		})
	}

	assert.Empty(t, store.All())
}

func TestCreateProject_MultipleErrorsSummary(t *testing.T) {
	r, _ := setupRouter(t, nil)

	rr := do(r, http.MethodPost, "/api/projects", `{"due_date":"nope","status":"x"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), `"message":"The title field is required. (and 2 more errors)"`)
}

func TestListProjects_FilterAndSort(t *testing.T) {
	r, store := setupRouter(t, nil)
	jan := domain.NewDate(2024, time.January, 1)
	mar := domain.NewDate(2024, time.March, 1)
	store.Seed(domain.Project{UserID: testUser, Title: "undated", Status: domain.StatusCompleted})
	store.Seed(domain.Project{UserID: testUser, Title: "march", DueDate: &mar, Status: domain.StatusCompleted})
	store.Seed(domain.Project{UserID: testUser, Title: "january", DueDate: &jan, Status: domain.StatusInProgress})
	store.Seed(domain.Project{UserID: 2, Title: "someone else", Status: domain.StatusCompleted})

	rr := do(r, http.MethodGet, "/api/projects?sort=due_date&order=asc", "")
	require.Equal(t, http.StatusOK, rr.Code)
	items := decodeList(t, rr)
	require.Len(t, items, 3)
	assert.Equal(t, "january", items[0].Title)
	assert.Equal(t, "march", items[1].Title)
	assert.Equal(t, "undated", items[2].Title)

	rr = do(r, http.MethodGet, "/api/projects?sort=due_date&order=desc", "")
	items = decodeList(t, rr)
	require.Len(t, items, 3)
	assert.Equal(t, "undated", items[0].Title)

	rr = do(r, http.MethodGet, "/api/projects?status=completed", "")
	items = decodeList(t, rr)
	require.Len(t, items, 2)
	for _, p := range items {
		assert.Equal(t, domain.StatusCompleted, p.Status)
	}
	assert.Equal(t, "march", items[0].Title)

	rr = do(r, http.MethodGet, "/api/projects?status=bogus&sort=bogus&order=bogus", "")
	assert.Len(t, decodeList(t, rr), 3)
}

func TestListProjects_EmptyIsArray(t *testing.T) {
	r, _ := setupRouter(t, nil)

	rr := do(r, http.MethodGet, "/api/projects", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestShowProject(t *testing.T) {
	r, store := setupRouter(t, nil)
	mine := store.Seed(domain.Project{UserID: testUser, Title: "mine", Status: domain.StatusInProgress})
	theirs := store.Seed(domain.Project{UserID: 2, Title: "theirs", Status: domain.StatusInProgress})

	rr := do(r, http.MethodGet, "/api/projects/"+itoa(mine.ID), "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "mine", decodeProject(t, rr).Title)

	for _, path := range []string{"/api/projects/" + itoa(theirs.ID), "/api/projects/999", "/api/projects/abc"} {
		rr = do(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
		assert.JSONEq(t, `{"message":"Project not found"}`, rr.Body.String())
	}
}

func TestUpdateProject_Partial(t *testing.T) {
	r, store := setupRouter(t, nil)
	due := domain.NewDate(2024, time.March, 1)
	desc := "draft"
	seeded := store.Seed(domain.Project{UserID: testUser, Title: "Write spec", Description: &desc, DueDate: &due, Status: domain.StatusInProgress})

	rr := do(r, http.MethodPut, "/api/projects/"+itoa(seeded.ID), `{"status":"completed"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	p := decodeProject(t, rr)
	assert.Equal(t, domain.StatusCompleted, p.Status)
	assert.Equal(t, "Write spec", p.Title)
	assert.Equal(t, "draft", *p.Description)
	assert.Equal(t, "2024-03-01", p.DueDate.String())
}

func TestUpdateProject_ClearsOptionalFields(t *testing.T) {
	r, store := setupRouter(t, nil)
	due := domain.NewDate(2024, time.March, 1)
	desc := "draft"
	seeded := store.Seed(domain.Project{UserID: testUser, Title: "t", Description: &desc, DueDate: &due, Status: domain.StatusInProgress})

	rr := do(r, http.MethodPatch, "/api/projects/"+itoa(seeded.ID), `{"description":"","due_date":""}`)
	require.Equal(t, http.StatusOK, rr.Code)

	p := decodeProject(t, rr)
	assert.Nil(t, p.Description)
	assert.Nil(t, p.DueDate)
}

func TestUpdateProject_UndatedProjectFullForm(t *testing.T) {
	r, store := setupRouter(t, nil)
	seeded := store.Seed(domain.Project{UserID: testUser, Title: "Undated", Status: domain.StatusInProgress})

	rr := do(r, http.MethodPut, "/api/projects/"+itoa(seeded.ID),
		`{"title":"Undated","description":"","due_date":"","status":"completed"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	p := decodeProject(t, rr)
	assert.Equal(t, domain.StatusCompleted, p.Status)
	assert.Nil(t, p.DueDate)
}

func TestUpdateProject_EmptyStatusRejected(t *testing.T) {
	r, store := setupRouter(t, nil)
	seeded := store.Seed(domain.Project{UserID: testUser, Title: "t", Status: domain.StatusCompleted})

	rr := do(r, http.MethodPut, "/api/projects/"+itoa(seeded.ID), `{"status":""}`)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "The selected status is invalid.")
}

func TestUpdateProject_EmptyTitleRejected(t *testing.T) {
	r, store := setupRouter(t, nil)
	seeded := store.Seed(domain.Project{UserID: testUser, Title: "Write spec", Status: domain.StatusInProgress})

	rr := do(r, http.MethodPut, "/api/projects/"+itoa(seeded.ID), `{"title":""}`)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "The title field is required.")

	rr = do(r, http.MethodGet, "/api/projects/"+itoa(seeded.ID), "")
	assert.Equal(t, "Write spec", decodeProject(t, rr).Title)
}

func TestUpdateProject_NotOwned(t *testing.T) {
	r, store := setupRouter(t, nil)
	theirs := store.Seed(domain.Project{UserID: 2, Title: "theirs", Status: domain.StatusInProgress})

	rr := do(r, http.MethodPut, "/api/projects/"+itoa(theirs.ID), `{"title":"mine now"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "theirs", store.All()[0].Title)
}

func TestDeleteProject(t *testing.T) {
	r, store := setupRouter(t, nil)
	seeded := store.Seed(domain.Project{UserID: testUser, Title: "t", Status: domain.StatusInProgress})

	rr := do(r, http.MethodDelete, "/api/projects/"+itoa(seeded.ID), "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())

	rr = do(r, http.MethodDelete, "/api/projects/"+itoa(seeded.ID), "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(r, http.MethodGet, "/api/projects", "")
	assert.Empty(t, decodeList(t, rr))
}

func TestStoreFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	r, store := setupRouter(t, zap.New(core))
	store.Err = errors.New("connection refused")

	rr := do(r, http.MethodGet, "/api/projects", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"message":"Server Error"}`, rr.Body.String())

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "project request failed", entry.Message)
	assert.Equal(t, "connection refused", entry.ContextMap()["error"])
}

func TestMalformedBody(t *testing.T) {
	r, _ := setupRouter(t, nil)

	rr := do(r, http.MethodPost, "/api/projects", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(r, http.MethodPost, "/api/projects", `{"title":"one"}{"title":"two"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"message":"The request body must be a JSON object."}`, rr.Body.String())
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
