package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Lonewolf123457499/CarWashApp/internal/adapter/gateway"
	domainErrors "github.com/Lonewolf123457499/CarWashApp/internal/domain/errors"
	"github.com/Lonewolf123457499/CarWashApp/internal/server/http/middleware"
)

// writeError renders err as the JSON error body. Errors without a domain kind
// are reported as internal and their text stays in the logs.
func writeError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, middleware.CodeInternal
	switch domainErrors.Kind(err) {
	case domainErrors.ErrNotFound:
		status, code = http.StatusNotFound, middleware.CodeNotFound
	case domainErrors.ErrInvalidInput:
		status, code = http.StatusBadRequest, middleware.CodeInvalidInput
	case domainErrors.ErrInvalidState:
		status, code = http.StatusUnprocessableEntity, middleware.CodeInvalidState
	case domainErrors.ErrConflict:
		status, code = http.StatusConflict, middleware.CodeConflict
	case domainErrors.ErrVerificationFailed:
		status, code = http.StatusPaymentRequired, middleware.CodeVerificationFailed
	case domainErrors.ErrUnavailable:
		status, code = http.StatusServiceUnavailable, middleware.CodeUnavailable
	case domainErrors.ErrInvalidCredentials:
		status, code = http.StatusUnauthorized, middleware.CodeUnauthorized
	case domainErrors.ErrForbidden:
		status, code = http.StatusForbidden, middleware.CodeForbidden
	}

	var limited gateway.TooManyRequestsError
	if errors.As(err, &limited) && limited.RetryAfter > 0 {
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(limited.RetryAfter.Seconds()))))
	}

	message := domainErrors.Message(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	middleware.Abort(c, status, code, message)
}
