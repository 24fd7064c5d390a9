package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/haojie06/venice-image-cli/internal/logger"
	"github.com/haojie06/venice-image-cli/internal/server/handler"
	"github.com/haojie06/venice-image-cli/internal/venice"
)

func Start(host, port, apiKey string, client *venice.Client) error {
	router := InitRouter(apiKey, client)
	return router.Run(host + ":" + port)
}

// PermissionCheckMiddleware gates facade requests on an API-KEY header.
// An empty configured key disables the check.
func PermissionCheckMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			c.Next()
			return
		}
		if c.GetHeader("API-KEY") != apiKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Invalid API key",
			})
			return
		}
		c.Next()
	}
}

func InitRouter(apiKey string, client *venice.Client) *gin.Engine {
	router := gin.New()
	router.Use(ginzap.RecoveryWithZap(logger.ZapLogger, true))
	router.Use(ginzap.Ginzap(logger.ZapLogger, time.RFC3339Nano, true))
	router.Use(cors.Default())
	pprof.Register(router)

	apiGroup := router.Group("", PermissionCheckMiddleware(apiKey))
	apiGroup.GET("/models", handler.ListModels(client))
	apiGroup.POST("/image/generate", handler.GenerateImage(client))
	return router
}
