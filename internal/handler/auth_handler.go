package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-hq/inkwell/internal/dto"
	"github.com/inkwell-hq/inkwell/internal/service"
	"github.com/inkwell-hq/inkwell/pkg/apperror"
	"github.com/inkwell-hq/inkwell/pkg/response"
	"github.com/inkwell-hq/inkwell/pkg/validator"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ValidationFailed(validator.FormatValidationError(err)))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
