package handler

import (
	"net/http"

	"github.com/MatyCastillo/cashdesk-webapp/internal/apierror"
	"github.com/MatyCastillo/cashdesk-webapp/internal/dto"
	"github.com/MatyCastillo/cashdesk-webapp/internal/service"

	"github.com/gin-gonic/gin"
)

type UsersHandler struct{ svc service.UserService }

func NewUsersHandler(svc service.UserService) *UsersHandler { return &UsersHandler{svc: svc} }

// Crear registers a new employee account. Duplicate usernames answer 409.
func (h *UsersHandler) Crear(c *gin.Context) {
	var req dto.CrearUsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CheckUsername reports whether a username is still available.
func (h *UsersHandler) CheckUsername(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, apierror.New("parametro username requerido"))
		return
	}
	unique, err := h.svc.CheckUsername(c.Request.Context(), username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CheckUsernameResponse{IsUnique: unique})
}

// Listar returns every account, hashes excluded.
func (h *UsersHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
