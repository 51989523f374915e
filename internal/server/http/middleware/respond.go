package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Lonewolf123457499/CarWashApp/internal/server/http/dto"
)

// Error codes of the JSON error body.
const (
	CodeNotFound           = "not_found"
	CodeInvalidInput       = "invalid_input"
	CodeInvalidState       = "invalid_state"
	CodeConflict           = "conflict"
	CodeVerificationFailed = "verification_failed"
	CodeUnavailable        = "unavailable"
	CodeUnauthorized       = "unauthorized"
	CodeForbidden          = "forbidden"
	CodeInternal           = "internal"
)

// Abort stops the chain with a JSON error body.
func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: dto.ErrorBody{Code: code, Message: message}})
}
