package api

import "github.com/gin-gonic/gin"

// APIResponse is the envelope every endpoint answers with
type APIResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// respond writes the envelope with the given status
func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, APIResponse{Message: message, Data: data})
}
