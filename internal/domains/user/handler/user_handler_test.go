package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/user/model"
	"blog-backend/internal/shared/middleware"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockService) Upsert(ctx context.Context, req model.UpsertUserRequest) (*model.User, error) {
	args := m.Called(ctx, req)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockService) IssueToken(ctx context.Context, email string) (string, *model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(1).(*model.User)
	return args.String(0), u, args.Error(2)
}

func serve(svc *mockService, subject string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	h := NewUserHandler(svc)
	r := gin.New()
	r.GET("/admin/me", func(c *gin.Context) {
		if subject != "" {
			c.Set(middleware.ContextUserID, subject)
		}
		c.Next()
	}, h.Me)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/me", nil))
	return w
}

func TestMe(t *testing.T) {
	svc := new(mockService)
	id := uuid.Must(uuid.NewV7())
	svc.On("GetByID", mock.Anything, id).Return(&model.User{ID: id, Email: "a@example.com", Role: model.RoleAdmin}, nil)

	w := serve(svc, id.String())
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data model.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "a@example.com", body.Data.Email)
}

func TestMe_DeletedUser(t *testing.T) {
	svc := new(mockService)
	id := uuid.Must(uuid.NewV7())
	svc.On("GetByID", mock.Anything, id).Return(nil, model.ErrUserNotFound)

	w := serve(svc, id.String())
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMe_NoSession(t *testing.T) {
	w := serve(new(mockService), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
