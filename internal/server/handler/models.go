package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/haojie06/venice-image-cli/internal/logger"
	"github.com/haojie06/venice-image-cli/internal/utils"
	"github.com/haojie06/venice-image-cli/internal/venice"
)

// ListModels proxies the upstream model listing.
func ListModels(client *venice.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, _, err := client.ListModels(c.Request.Context())
		if err != nil {
			logger.Errorf("listing models failed: %s", err)
			utils.GinFailedWithMessage(c, http.StatusBadGateway, err.Error())
			return
		}
		c.JSON(http.StatusOK, list)
	}
}
