package utils

import (
	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint answers with, so clients can always
// look at the same three fields.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"` // omitted when there is nothing to return
}

func APIResponse(c *gin.Context, code int, success bool, message string, data interface{}) {
	c.JSON(code, Response{
		Success: success,
		Message: message,
		Data:    data,
	})
}
