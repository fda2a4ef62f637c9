package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Version is the API version reported by the health endpoint.
const Version = "1.0.0"

// HealthCheck reports service liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": Version,
	})
}
