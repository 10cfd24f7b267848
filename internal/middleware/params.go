package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/workspace-tasks/internal/constants"
	apierrors "github.com/yukikurage/workspace-tasks/internal/errors"
)

// ParseIDParam parses the named path parameter as a positive integer ID and
// stores it in the context under ctxKey. Anything else is rejected with 400.
func ParseIDParam(param, ctxKey, label string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param(param), 10, 64)
		if err != nil || id == 0 {
			apierrors.BadRequest(c, "Invalid "+label+" ID")
			c.Abort()
			return
		}

		c.Set(ctxKey, id)
		c.Next()
	}
}

// RequireWorkspaceID parses :id on workspace routes.
func RequireWorkspaceID() gin.HandlerFunc {
	return ParseIDParam("id", constants.ContextKeyWorkspaceID, "workspace")
}

// RequireTaskID parses :id on task routes.
func RequireTaskID() gin.HandlerFunc {
	return ParseIDParam("id", constants.ContextKeyTaskID, "task")
}

// GetWorkspaceID returns the ID stored by RequireWorkspaceID.
func GetWorkspaceID(c *gin.Context) (uint64, bool) {
	return getID(c, constants.ContextKeyWorkspaceID)
}

// GetTaskID returns the ID stored by RequireTaskID.
func GetTaskID(c *gin.Context) (uint64, bool) {
	return getID(c, constants.ContextKeyTaskID)
}

func getID(c *gin.Context, key string) (uint64, bool) {
	v, exists := c.Get(key)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}
