package response

import "github.com/gin-gonic/gin"

// Every endpoint answers with the same envelope:
// {statusCode, data, message, success} plus a machine-readable code on errors.

func Success(c *gin.Context, statusCode int, data interface{}, message string) {
	c.JSON(statusCode, gin.H{
		"statusCode": statusCode,
		"data":       data,
		"message":    message,
		"success":    true,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"statusCode": statusCode,
		"data":       nil,
		"message":    message,
		"success":    false,
		"error": gin.H{
			"code": code,
		},
	})
}

func AbortError(c *gin.Context, statusCode int, code string, message string) {
	Error(c, statusCode, code, message)
	c.Abort()
}
