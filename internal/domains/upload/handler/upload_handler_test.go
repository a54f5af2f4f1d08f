package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/upload/model"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Presign(ctx context.Context, req model.PresignRequest) (*model.PresignResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*model.PresignResponse)
	return res, args.Error(1)
}

func post(t *testing.T, svc *mockService, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/admin/uploads/presign", NewUploadHandler(svc).Presign)

	req := httptest.NewRequest(http.MethodPost, "/admin/uploads/presign", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestPresign_OK(t *testing.T) {
	svc := new(mockService)
	req := model.PresignRequest{Filename: "a.png", MimeType: "image/png", Size: 3, Type: "about"}
	svc.On("Presign", mock.Anything, req).Return(&model.PresignResponse{
		UploadURL: "https://s/put", ObjectKey: "about/x.png", PublicURL: "https://cdn/about/x.png", ExpiresIn: 300,
	}, nil)

	w, env := post(t, svc, `{"filename":"a.png","mimeType":"image/png","size":3,"type":"about"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	data := env["data"].(map[string]any)
	assert.Equal(t, "about/x.png", data["objectKey"])
	assert.EqualValues(t, 300, data["expiresIn"])
}

func TestPresign_StorageDown(t *testing.T) {
	svc := new(mockService)
	svc.On("Presign", mock.Anything, mock.Anything).Return(nil, model.NewPresignFailed(errors.New("down")))

	w, env := post(t, svc, `{"filename":"a.png","mimeType":"image/png","size":3,"type":"about"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "UPLOAD_PRESIGN_FAILED", env["error"].(map[string]any)["code"])
}

func TestPresign_BadJSON(t *testing.T) {
	w, _ := post(t, new(mockService), `{"size":"big"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
