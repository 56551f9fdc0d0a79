package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/minegram/minegram/internal/domain/errors"
	"github.com/minegram/minegram/internal/server/http/dto"
	"github.com/minegram/minegram/internal/server/http/middleware"
)

// AuthHandler processes mini-app logins.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	account, token, err := h.facade.Login(c.Request.Context(), req.TgID, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			writeError(c, http.StatusUnauthorized, err.Error())
		case errors.Is(err, domainErrors.ErrAccountBanned):
			writeError(c, http.StatusForbidden, err.Error())
		default:
			writeError(c, http.StatusInternalServerError, "internal error")
		}
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.LoginResponse{
		Status: statusSuccess,
		Token:  token,
		User: dto.UserResponse{
			TgID:     account.TgID,
			Username: account.Username,
			Balance:  account.Balance,
			Email:    account.Email,
		},
	})
}
