package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/lubepos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/lubepos-api/internal/presentation/http/middleware"
)

// GetSessionID returns the POS session of the request
func GetSessionID(c *gin.Context) string {
	return middleware.GetSessionID(c)
}

// bindJSON binds the request body and writes a 400 on failure
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return false
	}
	return true
}

// optionalQuery returns a pointer to the query value when the parameter is present,
// so "?category=" (uncategorized) differs from no filter at all.
func optionalQuery(c *gin.Context, key string) *string {
	v, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	v = strings.TrimSpace(v)
	return &v
}
