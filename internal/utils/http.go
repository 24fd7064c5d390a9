package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/haojie06/venice-image-cli/internal/model"
)

func GinFailedWithMessage(c *gin.Context, status int, message string) {
	c.JSON(status, model.GenerationHTTPResponse{
		Status:  "failed",
		Message: message,
	})
}
