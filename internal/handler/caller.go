package handler

import (
	"pawplan-backend/internal/access"
	"pawplan-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// callerFrom rebuilds the guard's caller identity from the context values the
// auth middleware set.
func callerFrom(c *gin.Context) access.Caller {
	return access.Caller{
		UserID:  c.MustGet(middleware.CtxUserID).(int64),
		IsAdmin: c.MustGet(middleware.CtxIsAdmin).(bool),
	}
}
