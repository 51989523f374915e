package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Lonewolf123457499/CarWashApp/internal/domain/model"
	"github.com/Lonewolf123457499/CarWashApp/internal/server/http/middleware"
)

// CurrentIdentity extracts the authenticated caller from context.
func CurrentIdentity(c *gin.Context) model.Identity {
	identity, _ := middleware.CurrentIdentity(c)
	return identity
}

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	return CurrentIdentity(c).UserID
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		middleware.Abort(c, http.StatusBadRequest, middleware.CodeInvalidInput, "malformed request body")
		return false
	}
	return true
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		middleware.Abort(c, http.StatusBadRequest, middleware.CodeInvalidInput, "invalid "+name)
		return 0, false
	}
	return id, true
}

// queryLimit reads an optional non-negative limit; zero means the default.
func queryLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		middleware.Abort(c, http.StatusBadRequest, middleware.CodeInvalidInput, "invalid limit")
		return 0, false
	}
	return n, true
}
