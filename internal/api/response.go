package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipe-share/backend/internal/middleware"
	"github.com/pageza/recipe-share/backend/internal/types"
)

const invalidBodyMessage = "Invalid request body"

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, types.APIResponse{Success: true, Data: data})
}

func respondMessage(c *gin.Context, status int, msg string, data interface{}) {
	c.JSON(status, types.APIResponse{Success: true, Message: msg, Data: data})
}

// fail hands err to the error middleware.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// pathID parses a UUID path parameter. Malformed ids cannot name an
// existing resource and are reported as not found.
func pathID(c *gin.Context, param, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		fail(c, types.NotFound(resource))
		return uuid.Nil, false
	}
	return id, true
}

// callerID returns the authenticated user or fails the request with 401.
func callerID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		fail(c, types.Unauthorized("Not authorized, no token"))
		return uuid.Nil, false
	}
	return id, true
}

// viewerID returns the caller if one is authenticated, uuid.Nil otherwise.
func viewerID(c *gin.Context) uuid.UUID {
	id, _ := middleware.UserID(c)
	return id
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, types.NewValidationError(invalidBodyMessage))
		return false
	}
	return true
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return v
}

func respondCreated(c *gin.Context, data interface{}) {
	respond(c, http.StatusCreated, data)
}

func respondOK(c *gin.Context, data interface{}) {
	respond(c, http.StatusOK, data)
}
