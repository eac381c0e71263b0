package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	StatusCode int            `json:"statusCode"`
	Message    string         `json:"message"`
	Code       string         `json:"code"`
	Details    map[string]any `json:"details,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
	RequestID  string         `json:"requestId,omitempty"`
}

// Success writes data as the raw JSON body.
func Success[T any](ctx *gin.Context, status int, data T) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, data)
}

// Error writes an ErrorBody and aborts the chain.
func Error(ctx *gin.Context, status int, code, message string, details map[string]any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.AbortWithStatusJSON(status, ErrorBody{
		StatusCode: status,
		Message:    message,
		Code:       code,
		Details:    details,
		Timestamp:  time.Now().UTC(),
		RequestID:  ctx.GetString("request_id"),
	})
}
