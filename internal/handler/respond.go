package handler

import "github.com/gin-gonic/gin"

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeData(c *gin.Context, code int, v any) {
	c.JSON(code, envelope{Success: true, Data: v})
}

func writeError(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, envelope{Success: false, Error: msg})
}
