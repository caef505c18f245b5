package middlewares

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/VaibhavLohitashv/recipe-share/auth"
)

// ContextUserKey is where the resolved user lives in the gin context.
const ContextUserKey = "currentUser"

// CurrentUser resolves the Authorization header into a user and stores it
// in the context. An absent or invalid token leaves the request anonymous;
// handlers that need a user re-check it themselves.
func CurrentUser(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := auth.ResolveToken(db, c.GetHeader("Authorization"), secret); user != nil {
			c.Set(ContextUserKey, user)
		}
		c.Next()
	}
}
