package downloads

import (
	"net/http"

	"resolux-app/config"

	"github.com/gin-gonic/gin"
)

// GET /download
// Behind RequireSubscriber: only paying users get the release descriptor.
func GetDownload(c *gin.Context) {
	if config.DOWNLOAD_URL == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No release is currently available"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":     config.DOWNLOAD_URL,
		"version": config.DOWNLOAD_VERSION,
	})
}
