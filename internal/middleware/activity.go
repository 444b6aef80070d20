package middleware

import (
	"learnquest_backend/internal/repository"
	"learnquest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ActivityMiddleware stamps the user's last_seen after the handler runs.
// Fire and forget; presence tracking never blocks or fails a request.
func ActivityMiddleware(userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		claims := util.GetUserFromContext(c)
		if claims == nil {
			return
		}
		go userRepo.UpdateLastSeen(claims.UserID)
	}
}
