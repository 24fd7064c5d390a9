package model

import "encoding/json"

// DefaultModel is used when no model is specified.
const DefaultModel = "venice-sd35"

// Supported output image formats.
const (
	FormatJPEG = "jpeg"
	FormatPNG  = "png"
	FormatWebP = "webp"
)

// ValidFormat reports whether f is a supported output format.
func ValidFormat(f string) bool {
	return f == FormatJPEG || f == FormatPNG || f == FormatWebP
}

// GenerationRequest is the JSON body sent to POST /image/generate. Optional
// fields carry omitempty so that unset parameters are left out of the
// payload entirely; the API applies its own defaults for missing fields.
type GenerationRequest struct {
	Model string `json:"model"`

	Prompt string `json:"prompt"`

	NegativePrompt string `json:"negative_prompt,omitempty"`

	Width int `json:"width,omitempty"`

	Height int `json:"height,omitempty"`

	Steps int `json:"steps,omitempty"`

	CfgScale float64 `json:"cfg_scale,omitempty"`

	Seed int `json:"seed,omitempty"`

	StylePreset string `json:"style_preset,omitempty"`

	Format string `json:"format"`

	SafeMode bool `json:"safe_mode"`

	HideWatermark bool `json:"hide_watermark"`

	ReturnBinary bool `json:"return_binary"`
}

// GenerationParams carries the caller-supplied optional parameters of a
// generation. Zero values mean "not set".
type GenerationParams struct {
	NegativePrompt string
	Width          int
	Height         int
	Steps          int
	CfgScale       float64
	Seed           int
	StylePreset    string
	Format         string
	SafeMode       bool
}

// Timing is the generation timing block of a successful response.
type Timing struct {
	Total int64 `json:"total"` // milliseconds
}

// GenerationResult is the decoded response of POST /image/generate.
type GenerationResult struct {
	Id string `json:"id"`

	Images []string `json:"images"` // base64-encoded

	Timing *Timing `json:"timing,omitempty"`
}

type ModelSpec struct {
	Traits []string `json:"traits"`
}

type Model struct {
	Id string `json:"id"`

	ModelSpec ModelSpec `json:"model_spec"`
}

// ModelList is the decoded response of GET /models?type=image.
type ModelList struct {
	Data []Model `json:"data"`
}

// APIErrorBody is the structured error payload the API returns on non-2xx
// responses. Field names vary between endpoints, so all are optional.
type APIErrorBody struct {
	Error string `json:"error,omitempty"`

	Message string `json:"message,omitempty"`

	Issues json.RawMessage `json:"issues,omitempty"`
}

// GenerationHTTPRequest is the body accepted by the local HTTP facade's
// generate endpoint. It mirrors the CLI parameter surface.
type GenerationHTTPRequest struct {
	Prompt string `json:"prompt"`

	Model string `json:"model"`

	NegativePrompt string `json:"negative_prompt"`

	Width int `json:"width"`

	Height int `json:"height"`

	AspectRatio string `json:"aspect_ratio"`

	Steps int `json:"steps"`

	CfgScale float64 `json:"cfg_scale"`

	Seed int `json:"seed"`

	StylePreset string `json:"style_preset"`

	Format string `json:"format"`

	SafeMode bool `json:"safe_mode"`
}

// GenerationHTTPResponse is the facade's response for both successful and
// failed generations.
type GenerationHTTPResponse struct {
	Id string `json:"id,omitempty"`

	Status string `json:"status"` // completed, failed

	Message string `json:"message,omitempty"`

	Images []string `json:"images,omitempty"`

	Timing *Timing `json:"timing,omitempty"`
}
