package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/haojie06/venice-image-cli/internal/aspect"
	"github.com/haojie06/venice-image-cli/internal/logger"
	"github.com/haojie06/venice-image-cli/internal/model"
	"github.com/haojie06/venice-image-cli/internal/utils"
	"github.com/haojie06/venice-image-cli/internal/venice"
)

// GenerateImage proxies a generation request to the Venice API, applying
// the same validation and payload rules as the CLI. Images come back
// base64-encoded in the JSON response; nothing is written to disk here.
func GenerateImage(client *venice.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req model.GenerationHTTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.GinFailedWithMessage(c, http.StatusBadRequest, err.Error())
			return
		}
		if req.Prompt == "" {
			utils.GinFailedWithMessage(c, http.StatusBadRequest, "prompt is required")
			return
		}
		if req.AspectRatio != "" && (req.Width != 0 || req.Height != 0) {
			utils.GinFailedWithMessage(c, http.StatusBadRequest, "cannot specify both aspect_ratio and width/height")
			return
		}
		if req.Format != "" && !model.ValidFormat(req.Format) {
			utils.GinFailedWithMessage(c, http.StatusBadRequest, "invalid format, must be one of jpeg, png, webp")
			return
		}

		width, height := req.Width, req.Height
		if req.AspectRatio != "" {
			var err error
			if width, height, err = aspect.Resolve(req.AspectRatio); err != nil {
				utils.GinFailedWithMessage(c, http.StatusBadRequest, err.Error())
				return
			}
		}
		modelName := req.Model
		if modelName == "" {
			modelName = model.DefaultModel
		}

		generation := venice.BuildGenerationRequest(req.Prompt, modelName, model.GenerationParams{
			NegativePrompt: req.NegativePrompt,
			Width:          width,
			Height:         height,
			Steps:          req.Steps,
			CfgScale:       req.CfgScale,
			Seed:           req.Seed,
			StylePreset:    req.StylePreset,
			Format:         req.Format,
			SafeMode:       req.SafeMode,
		})
		result, err := client.GenerateImage(c.Request.Context(), generation)
		if err != nil {
			logger.Errorf("generation failed: %s", err)
			utils.GinFailedWithMessage(c, http.StatusBadGateway, err.Error())
			return
		}
		c.JSON(http.StatusOK, model.GenerationHTTPResponse{
			Id:     result.Id,
			Status: "completed",
			Images: result.Images,
			Timing: result.Timing,
		})
	}
}
