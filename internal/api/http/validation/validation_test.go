package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title   string  `json:"title" validate:"required,notblank,max=5"`
	DueDate *string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Status  string  `json:"status" validate:"omitempty,oneof=in_progress completed"`
}

func bindBody(t *testing.T, body string) (sample, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	var s sample
	err := New().Bind(c, &s)
	return s, err
}

func TestBind_Valid(t *testing.T) {
	s, err := bindBody(t, `{"title":"ok","due_date":"2024-01-01","status":"completed"}`)
	require.NoError(t, err)
	assert.Equal(t, "ok", s.Title)
}

func TestBind_FieldErrors(t *testing.T) {
	_, err := bindBody(t, `{"title":"   ","due_date":"01/01/2024","status":"archived"}`)

	var verrs *Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "The title field is required. (and 2 more errors)", verrs.Message)
	assert.Equal(t, []string{"The due date field must be a valid date."}, verrs.Errors["due_date"])
	assert.Equal(t, []string{"The selected status is invalid."}, verrs.Errors["status"])
}

func TestBind_SingleError(t *testing.T) {
	_, err := bindBody(t, `{"title":"too long"}`)

	var verrs *Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "The title field must not be greater than 5 characters.", verrs.Message)
}

func TestBind_EmptyBodyIsEmptyObject(t *testing.T) {
	_, err := bindBody(t, "")

	var verrs *Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{"The title field is required."}, verrs.Errors["title"])
}

func TestBind_TypeMismatch(t *testing.T) {
	_, err := bindBody(t, `{"title":5}`)

	var verrs *Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "The title field must be a string.", verrs.Message)
}

func TestBind_Malformed(t *testing.T) {
	_, err := bindBody(t, `{"title":`)
	assert.ErrorIs(t, err, ErrMalformedBody)
}

func TestBind_TrailingData(t *testing.T) {
	for _, body := range []string{`{"title":"ok"} {"title":"again"}`, `{"title":"ok"} garbage`, `{"title":"ok"}[]`} {
		_, err := bindBody(t, body)
		assert.ErrorIs(t, err, ErrMalformedBody, body)
	}

	_, err := bindBody(t, "{\"title\":\"ok\"}\n  ")
	assert.NoError(t, err, "trailing whitespace is fine")
}

type trimmed struct {
	Name string `json:"name" validate:"required,max=3"`
}

func (s *trimmed) Normalize() { s.Name = strings.TrimSpace(s.Name) }

func TestBind_NormalizesBeforeValidating(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"  abc  "}`))

	var dst trimmed
	require.NoError(t, New().Bind(c, &dst))
	assert.Equal(t, "abc", dst.Name)
}

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	errs := &Errors{}
	errs.Add("title", "The title field is required.")
	errs.Add("title", "second")
	Respond(c, errs)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"message":"The title field is required. (and 1 more error)","errors":{"title":["The title field is required.","second"]}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(rec)
	Respond(c, ErrMalformedBody)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
