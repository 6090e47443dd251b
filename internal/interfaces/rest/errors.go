package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pharmstore/backend/internal/domain/shared"
)

// statusForCode maps domain error codes to HTTP status codes
func statusForCode(code string) int {
	switch code {
	case shared.CodeNotFound:
		return http.StatusNotFound
	case shared.CodeValidation:
		return http.StatusBadRequest
	case shared.CodeInvalidState, shared.CodeIncompleteBatchAssignment:
		return http.StatusConflict
	case shared.CodeCatalogResolutionFailed:
		return http.StatusUnprocessableEntity
	case shared.CodeTransactionTimeout:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes a domain error as a JSON response. Unknown errors
// become opaque 500s so internals never leak to clients.
func respondError(c *gin.Context, err error) {
	if de, ok := err.(*shared.DomainError); ok {
		c.JSON(statusForCode(de.Code), gin.H{
			"code":    de.Code,
			"message": de.Message,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"code":    "INTERNAL",
		"message": "Internal server error",
	})
}
