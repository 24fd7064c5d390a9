// Package aspect resolves aspect-ratio tokens into pixel dimensions.
package aspect

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// baseSize is the pixel count of the longer side for custom ratios.
const baseSize = 1024

// ErrInvalidAspectRatio is returned for tokens that are neither a known
// preset nor a parseable "W:H" ratio.
var ErrInvalidAspectRatio = errors.New("invalid aspect ratio")

type dimensions struct {
	width  int
	height int
}

var presets = map[string]dimensions{
	"square":    {1024, 1024},
	"1:1":       {1024, 1024},
	"landscape": {1264, 848},
	"3:2":       {1264, 848},
	"cinema":    {1280, 720},
	"16:9":      {1280, 720},
	"tall":      {720, 1280},
	"9:16":      {720, 1280},
	"portrait":  {848, 1264},
	"2:3":       {848, 1264},
	"instagram": {1011, 1264},
	"4:5":       {1011, 1264},
}

// Resolve maps an aspect-ratio token to pixel dimensions. The token is
// either a named preset (case-insensitive) or a custom "W:H" ratio with
// numeric components. Custom ratios pin the longer side to 1024 pixels and
// round the shorter side up to the next multiple of 8, which most diffusion
// models require.
func Resolve(token string) (width, height int, err error) {
	if d, ok := presets[strings.ToLower(token)]; ok {
		return d.width, d.height, nil
	}
	parts := strings.Split(token, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidAspectRatio, token)
	}
	wRatio, wErr := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	hRatio, hErr := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	// ParseFloat accepts "nan" and "inf"; !(x > 0) also catches NaN
	if wErr != nil || hErr != nil ||
		math.IsInf(wRatio, 0) || math.IsInf(hRatio, 0) ||
		!(wRatio > 0) || !(hRatio > 0) {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidAspectRatio, token)
	}
	if wRatio >= hRatio {
		width = baseSize
		height = int(baseSize * hRatio / wRatio)
	} else {
		height = baseSize
		width = int(baseSize * wRatio / hRatio)
	}
	return roundUpToMultipleOf8(width), roundUpToMultipleOf8(height), nil
}

func roundUpToMultipleOf8(n int) int {
	return ((n + 7) / 8) * 8
}
