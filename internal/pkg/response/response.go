package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error writes {"error": message} with the given status.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

// ValidationFailed writes the accumulated field→message map as
// {"errors": {...}} with HTTP 400.
func ValidationFailed(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": fields})
}

// Internal hides the real cause from the caller.
func Internal(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
