package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/txledger/internal/common"
	"github.com/gin-gonic/gin"
)

const (
	detailDuplicateUsername  = "Username already registered"
	detailInvalidCredentials = "Incorrect username or password"
	detailUnauthenticated    = "Authentication required"
	detailInvalidSession     = "Invalid session"
	detailNotFound           = "Transaction not found"
	detailInternal           = "Internal server error"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

// statusFor maps a service error to the HTTP status and the detail message
// shown to the client.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrDuplicateUsername):
		return http.StatusBadRequest, detailDuplicateUsername
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, detailInvalidCredentials
	case errors.Is(err, common.ErrUnauthenticated):
		return http.StatusUnauthorized, detailUnauthenticated
	case errors.Is(err, common.ErrInvalidSession):
		return http.StatusUnauthorized, detailInvalidSession
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, detailNotFound
	case errors.Is(err, common.ErrValidation):
		return http.StatusUnprocessableEntity, validationDetail(err)
	default:
		return http.StatusInternalServerError, detailInternal
	}
}

func validationDetail(err error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, common.ErrValidation.Error()+": "); ok {
		return rest
	}
	return msg
}

func (s *HTTPServer) abortWithError(c *gin.Context, err error) {
	code, detail := statusFor(err)
	if code == http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), err.Error(),
			"request_id", c.GetString(ctxKeyRequestID),
			"path", c.Request.URL.Path,
		)
	}
	c.AbortWithStatusJSON(code, errorResponse{Detail: detail})
}

func (s *HTTPServer) abortWithValidation(c *gin.Context, detail string) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, errorResponse{Detail: detail})
}
