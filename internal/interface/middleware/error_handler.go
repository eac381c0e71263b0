package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-course-admin/internal/domain"
	"github.com/oksasatya/go-ddd-course-admin/pkg/helpers"
	"github.com/oksasatya/go-ddd-course-admin/pkg/response"
)

// ErrorHandler renders the last error pushed with c.Error. Domain errors map
// to their status; anything else is logged and returned as a 500.
func ErrorHandler(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		if de, ok := domain.AsError(err); ok {
			response.Error(c, StatusFor(de.Kind), de.Code, de.Message, de.Details)
			return
		}

		if logger != nil {
			helpers.LogError(logger, "unhandled error", err, logrus.Fields{
				"request_id": c.GetString(CtxRequestIDKey),
				"path":       c.Request.URL.Path,
				"method":     c.Request.Method,
			})
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}

// StatusFor maps a domain error kind to its HTTP status.
func StatusFor(k domain.Kind) int {
	switch k {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindDuplicate:
		return http.StatusConflict
	case domain.KindInvalidCredentials, domain.KindUserInactive, domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
