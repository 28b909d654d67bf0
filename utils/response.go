package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse sends a structured JSON response
func JSONResponse(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// JSONError sends a structured error response. code is the machine-readable
// error kind; details are merged into the body.
func JSONError(c *gin.Context, status int, code string, err error, message string, details map[string]any) {
	body := gin.H{
		"status":  status,
		"message": message,
		"code":    code,
		"error":   err.Error(),
	}
	for k, v := range details {
		body[k] = v
	}
	c.JSON(status, body)
}
