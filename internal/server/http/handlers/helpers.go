package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/minegram/minegram/internal/domain/errors"
	"github.com/minegram/minegram/internal/server/http/dto"
	"github.com/minegram/minegram/internal/server/http/middleware"
)

const statusSuccess = "success"

// CurrentTgID extracts the authenticated Telegram identifier from context.
func CurrentTgID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.TgIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domainErrors.ErrAccountBanned):
		writeError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, domainErrors.ErrCoinUnavailable),
		errors.Is(err, domainErrors.ErrInvalidAmount),
		errors.Is(err, domainErrors.ErrInvalidEmail),
		errors.Is(err, domainErrors.ErrAmountOutOfRange),
		errors.Is(err, domainErrors.ErrInsufficientBalance):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeError(c *gin.Context, code int, message string) {
	c.JSON(code, dto.ErrorResponse{Status: "error", Message: message})
}
