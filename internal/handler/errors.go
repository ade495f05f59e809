package handler

import (
	"errors"
	"net/http"

	"github.com/StackUnderflow/post-service/internal/dto"
	"github.com/StackUnderflow/post-service/internal/service"
	"github.com/gin-gonic/gin"
)

var (
	errNotAuthorized      = errors.New("user is not authorized")
	errFeaturedMustBeBool = errors.New("featured must be a boolean")
)

// Stable error codes the client switches on.
const (
	codePostNotFound     = "POST_NOT_FOUND"
	codeUserNotFound     = "USER_NOT_FOUND"
	codeUnauthenticated  = "UNAUTHENTICATED"
	codeUnauthorized     = "UNAUTHORIZED"
	codeValidationFailed = "VALIDATION_FAILED"
	codeInternal         = "INTERNAL"
)

func (h *Handler) errorResponse(c *gin.Context, err error) {
	var status int
	var code string

	switch err {
	case service.ErrPostNotFound:
		status, code = http.StatusNotFound, codePostNotFound
	case service.ErrUserNotFound:
		status, code = http.StatusNotFound, codeUserNotFound
	case service.ErrNotAuthenticated:
		status, code = http.StatusUnauthorized, codeUnauthenticated
	case service.ErrActionNotAllowed:
		status, code = http.StatusForbidden, codeUnauthorized
	case service.ErrTitleMustNotBeEmpty, service.ErrBodyMustNotBeEmpty, service.ErrTagsMustNotBeEmpty:
		status, code = http.StatusBadRequest, codeValidationFailed
	default:
		status, code = http.StatusInternalServerError, codeInternal
	}

	c.JSON(status, dto.NewErrorResponse(code, err.Error()))
}
