package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/product-service/internal/core/logger"
	"github.com/rafaelleal24/product-service/internal/core/serviceerrors"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

// HandleError is the only place service error kinds become HTTP statuses.
// Only the message reaches the client; causes of 5xx errors are logged.
func HandleError(c *gin.Context, err error) {
	var svcErr *serviceerrors.ServiceError
	if !errors.As(err, &svcErr) {
		logger.Error(c.Request.Context(), "unhandled error", err, map[string]any{"http.path": c.Request.URL.Path})
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal server error"})
		return
	}

	code := StatusFor(svcErr.Kind)
	if code == http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "request failed", err, map[string]any{
			"http.path":  c.Request.URL.Path,
			"error.kind": svcErr.Kind.String(),
		})
	}
	c.JSON(code, ErrorResponse{Message: svcErr.Message})
}

func StatusFor(kind serviceerrors.ErrorKind) int {
	switch kind {
	case serviceerrors.KindNotFound:
		return http.StatusNotFound
	case serviceerrors.KindConflict:
		return http.StatusConflict
	case serviceerrors.KindUnprocessableEntity:
		return http.StatusUnprocessableEntity
	case serviceerrors.KindInvalidRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
