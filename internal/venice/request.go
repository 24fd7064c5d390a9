package venice

import "github.com/haojie06/venice-image-cli/internal/model"

// BuildGenerationRequest assembles the outgoing payload for a generation.
// The format defaults to jpeg, the watermark is always hidden and binary
// responses are never requested. Zero-valued optional parameters stay out
// of the serialized payload (see model.GenerationRequest).
func BuildGenerationRequest(prompt, modelName string, params model.GenerationParams) *model.GenerationRequest {
	format := params.Format
	if format == "" {
		format = model.FormatJPEG
	}
	return &model.GenerationRequest{
		Model:          modelName,
		Prompt:         prompt,
		NegativePrompt: params.NegativePrompt,
		Width:          params.Width,
		Height:         params.Height,
		Steps:          params.Steps,
		CfgScale:       params.CfgScale,
		Seed:           params.Seed,
		StylePreset:    params.StylePreset,
		Format:         format,
		SafeMode:       params.SafeMode,
		HideWatermark:  true,
		ReturnBinary:   false,
	}
}
