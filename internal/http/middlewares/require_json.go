package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireJSON rejects write requests whose Content-Type is not application/json
// (parameters such as charset are allowed).
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			if c.ContentType() != gin.MIMEJSON {
				c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{
					"error": gin.H{
						"code":      "unsupported_media_type",
						"message":   "Content-Type must be application/json",
						"requestId": c.GetString(CtxRequestID),
					},
				})
				return
			}
		}
		c.Next()
	}
}
