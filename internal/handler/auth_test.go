package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/MatyCastillo/cashdesk-webapp/internal/dto"
	"github.com/MatyCastillo/cashdesk-webapp/internal/middleware"
	"github.com/MatyCastillo/cashdesk-webapp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	resp *dto.LoginResponse
	err  error
}

var _ service.AuthService = (*stubAuthService)(nil)

func (s *stubAuthService) Login(context.Context, dto.LoginRequest) (*dto.LoginResponse, error) {
	return s.resp, s.err
}

func newAuthRouter(svc service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.POST("/auth/login", NewAuthHandler(svc).Login)
	return r
}

func TestLoginOK(t *testing.T) {
	r := newAuthRouter(&stubAuthService{resp: &dto.LoginResponse{
		AccessToken: "tok",
		TokenType:   "Bearer",
		ExpiresIn:   43200,
		User:        dto.UsuarioResponse{ID: 1, Username: "admin", Rol: "admin"},
	}})

	w := doJSON(t, r, http.MethodPost, "/auth/login", `{"username":"admin","password":"Admin1234!"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "tok", resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "admin", resp.User.Username)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestLoginCredencialesInvalidas(t *testing.T) {
	r := newAuthRouter(&stubAuthService{err: service.ErrCredencialesInvalidas})

	w := doJSON(t, r, http.MethodPost, "/auth/login", `{"username":"admin","password":"mala"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginSinCampos(t *testing.T) {
	r := newAuthRouter(&stubAuthService{})

	w := doJSON(t, r, http.MethodPost, "/auth/login", `{"username":"admin"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
