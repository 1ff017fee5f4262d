package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DocsIndex is the login redirect target: a JSON index of the API
// surface, enough for a client to discover the endpoints.
func DocsIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name": "recipebook API",
		"endpoints": []gin.H{
			{"method": "GET", "path": "/recipes", "auth": "none"},
			{"method": "GET", "path": "/recipes/:id", "auth": "none"},
			{"method": "POST", "path": "/recipes", "auth": "session"},
			{"method": "PUT", "path": "/recipes/:id", "auth": "session, owner only"},
			{"method": "DELETE", "path": "/recipes/:id", "auth": "session, owner only"},
			{"method": "GET", "path": "/auth/google", "auth": "none"},
			{"method": "POST", "path": "/auth/logout", "auth": "session"},
			{"method": "GET", "path": "/healthz", "auth": "none"},
			{"method": "GET", "path": "/metrics", "auth": "none"},
		},
	})
}
