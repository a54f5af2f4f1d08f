package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/post/model"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/pagination"
	"blog-backend/internal/shared/query"
	"blog-backend/internal/shared/validator"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) ListPublished(ctx context.Context, raw query.Raw) ([]model.Post, pagination.Meta, error) {
	args := m.Called(ctx, raw)
	posts, _ := args.Get(0).([]model.Post)
	return posts, args.Get(1).(pagination.Meta), args.Error(2)
}

func (m *mockService) ListAll(ctx context.Context, raw query.Raw) ([]model.Post, pagination.Meta, error) {
	args := m.Called(ctx, raw)
	posts, _ := args.Get(0).([]model.Post)
	return posts, args.Get(1).(pagination.Meta), args.Error(2)
}

func (m *mockService) GetPublishedBySlug(ctx context.Context, slug string) (*model.Post, error) {
	args := m.Called(ctx, slug)
	post, _ := args.Get(0).(*model.Post)
	return post, args.Error(1)
}

func (m *mockService) GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	args := m.Called(ctx, id)
	post, _ := args.Get(0).(*model.Post)
	return post, args.Error(1)
}

func (m *mockService) Create(ctx context.Context, authorID uuid.UUID, req model.CreatePostRequest) (*model.Post, error) {
	args := m.Called(ctx, authorID, req)
	post, _ := args.Get(0).(*model.Post)
	return post, args.Error(1)
}

func (m *mockService) Update(ctx context.Context, id uuid.UUID, req model.UpdatePostRequest) (*model.Post, error) {
	args := m.Called(ctx, id, req)
	post, _ := args.Get(0).(*model.Post)
	return post, args.Error(1)
}

func (m *mockService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockService) InvalidateDetails(ctx context.Context) {
	m.Called(ctx)
}

func (m *mockService) IsSlugAvailable(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

type envelope struct {
	Success bool             `json:"success"`
	Data    json.RawMessage  `json:"data"`
	Meta    *pagination.Meta `json:"meta"`
	Error   struct {
		Code    string                 `json:"code"`
		Details []validator.FieldError `json:"details"`
	} `json:"error"`
}

// setup mounts the handler; userID, when set, is injected the way AuthMiddleware would.
func setup(svc *mockService, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPostHandler(svc)

	r := gin.New()
	r.GET("/posts", h.ListPublished)
	r.GET("/posts/:slug", h.GetBySlug)

	admin := r.Group("/admin")
	admin.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set(middleware.ContextUserID, userID)
			c.Set(middleware.ContextRole, "ADMIN")
		}
		c.Next()
	})
	admin.GET("/posts", h.ListAll)
	admin.GET("/posts/check-slug", h.CheckSlug)
	admin.GET("/posts/:id", h.GetByID)
	admin.POST("/posts", h.Create)
	admin.PATCH("/posts/:id", h.Update)
	admin.DELETE("/posts/:id", h.Delete)
	return r
}

func do(t *testing.T, r *gin.Engine, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestListPublished_PassesRawQuery(t *testing.T) {
	svc := new(mockService)
	r := setup(svc, "")

	svc.On("ListPublished", mock.Anything, query.Raw{"page": "2", "tag": "go"}).
		Return([]model.Post{{Title: "Hello"}}, pagination.Compute(10, 2, 9), nil)

	w, env := do(t, r, http.MethodGet, "/posts?page=2&tag=go", "")
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.Meta)
	assert.EqualValues(t, 10, env.Meta.Total)
	assert.Equal(t, 2, env.Meta.TotalPages)
	svc.AssertExpectations(t)
}

func TestListPublished_ValidationError(t *testing.T) {
	svc := new(mockService)
	r := setup(svc, "")

	verr := validator.NewError("Invalid query parameters", validator.Node{
		Property: "query",
		Children: []validator.Node{{Property: "page", Constraints: map[string]string{"isInt": "page must be an integer"}, Value: "x"}},
	})
	svc.On("ListPublished", mock.Anything, mock.Anything).Return(nil, pagination.Meta{}, verr)

	w, env := do(t, r, http.MethodGet, "/posts?page=x", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	require.Len(t, env.Error.Details, 1)
	assert.Equal(t, "query.page", env.Error.Details[0].Field)
}

func TestGetBySlug_DraftIsNotFound(t *testing.T) {
	svc := new(mockService)
	r := setup(svc, "")
	svc.On("GetPublishedBySlug", mock.Anything, "draft").Return(nil, model.ErrPostNotFound)

	w, env := do(t, r, http.MethodGet, "/posts/draft", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "POST_NOT_FOUND", env.Error.Code)
}

func TestCreate_UsesSessionAuthor(t *testing.T) {
	svc := new(mockService)
	author := uuid.Must(uuid.NewV7())
	r := setup(svc, author.String())

	catID := uuid.NewString()
	req := model.CreatePostRequest{Title: "Hi", Content: "Body", CategoryID: catID, Published: true}
	svc.On("Create", mock.Anything, author, req).Return(&model.Post{Title: "Hi", Slug: "hi"}, nil)

	w, env := do(t, r, http.MethodPost, "/admin/posts",
		`{"title":"Hi","content":"Body","categoryId":"`+catID+`","published":true}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)

	var got model.Post
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "hi", got.Slug)
	svc.AssertExpectations(t)
}

func TestCreate_WithoutSession(t *testing.T) {
	svc := new(mockService)
	r := setup(svc, "")

	w, env := do(t, r, http.MethodPost, "/admin/posts", `{"title":"Hi"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_NonUUIDSubject(t *testing.T) {
	r := setup(new(mockService), "legacy-user")

	w, env := do(t, r, http.MethodPost, "/admin/posts", `{"title":"Hi"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, model.ErrInvalidAuthor.Code, env.Error.Code)
}

func TestUpdate_DuplicateSlug(t *testing.T) {
	svc := new(mockService)
	r := setup(svc, uuid.NewString())
	id := uuid.Must(uuid.NewV7())
	slug := "taken"
	svc.On("Update", mock.Anything, id, model.UpdatePostRequest{Slug: &slug}).
		Return(nil, model.NewDuplicateSlug("taken"))

	w, env := do(t, r, http.MethodPatch, "/admin/posts/"+id.String(), `{"slug":"taken"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_SLUG", env.Error.Code)
}

func TestGetByID_InvalidID(t *testing.T) {
	r := setup(new(mockService), uuid.NewString())

	w, env := do(t, r, http.MethodGet, "/admin/posts/123", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_POST_ID", env.Error.Code)
}

func TestDelete_OK(t *testing.T) {
	svc := new(mockService)
	r := setup(svc, uuid.NewString())
	id := uuid.Must(uuid.NewV7())
	svc.On("Delete", mock.Anything, id).Return(nil)

	w, _ := do(t, r, http.MethodDelete, "/admin/posts/"+id.String(), "")
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestCheckSlug(t *testing.T) {
	svc := new(mockService)
	r := setup(svc, uuid.NewString())
	exclude := uuid.Must(uuid.NewV7())
	svc.On("IsSlugAvailable", mock.Anything, "hello", &exclude).Return(false, nil)

	w, env := do(t, r, http.MethodGet, "/admin/posts/check-slug?slug=hello&excludeId="+exclude.String(), "")
	assert.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Slug      string `json:"slug"`
		Available bool   `json:"available"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "hello", got.Slug)
	assert.False(t, got.Available)
}

func TestCheckSlug_BadExcludeID(t *testing.T) {
	r := setup(new(mockService), uuid.NewString())

	w, env := do(t, r, http.MethodGet, "/admin/posts/check-slug?slug=a&excludeId=zzz", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_POST_ID", env.Error.Code)
}
