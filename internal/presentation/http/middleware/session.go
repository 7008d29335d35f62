package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/lubepos-api/pkg/utils"
)

const (
	// SessionHeader carries the POS session a till is working in
	SessionHeader = "X-POS-Session"
	// SessionContextKey is where the session ID is stored on the gin context
	SessionContextKey = "pos_session"
)

// SessionMiddleware resolves the POS session of the request. A missing or
// malformed X-POS-Session header starts a new session; the ID in use is always
// echoed back so the client can keep sending it.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionHeader)
		if !utils.IsValidID(sessionID) {
			sessionID = utils.NewID()
		}
		c.Set(SessionContextKey, sessionID)
		c.Header(SessionHeader, sessionID)
		c.Next()
	}
}

// GetSessionID returns the POS session resolved by SessionMiddleware
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionContextKey)
}
