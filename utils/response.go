package utils

import "github.com/gin-gonic/gin"

// JSONSuccess writes the standard success envelope.
func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

// JSONMessage writes a success envelope carrying a human message plus data.
func JSONMessage(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, gin.H{"success": true, "message": message, "data": data})
}

// JSONError writes the structured error envelope. The code is a stable
// machine-readable identifier; the message is safe for end users.
func JSONError(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
