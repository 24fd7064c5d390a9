// Package storage persists generated images on the local filesystem.
package storage

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SaveImage decodes base64 image data and writes it to disk, returning the
// path actually written. When outputPath is empty the filename is derived
// from the image id and format extension. Existing files are never
// overwritten: a _1, _2, ... suffix is inserted before the extension until
// a free path is found. The existence check and the write are not atomic
// against concurrent writers; the CLI owns the invocation exclusively.
func SaveImage(base64Data, outputPath, imageId, formatExt string) (string, error) {
	filename := outputPath
	if filename == "" {
		filename = fmt.Sprintf("%s.%s", imageId, formatExt)
	}
	filename = nextFreePath(filename)

	imageData, err := base64.StdEncoding.DecodeString(base64Data)
	if err != nil {
		return "", fmt.Errorf("decoding image data: %w", err)
	}
	if err := os.WriteFile(filename, imageData, 0644); err != nil {
		return "", fmt.Errorf("saving image: %w", err)
	}
	return filename, nil
}

func nextFreePath(candidate string) string {
	ext := filepath.Ext(candidate)
	stem := strings.TrimSuffix(candidate, ext)
	filename := candidate
	for counter := 1; ; counter++ {
		// only an existing file counts as a collision; on any stat error
		// keep the candidate and let the write report the real failure
		if _, err := os.Stat(filename); err != nil {
			return filename
		}
		filename = fmt.Sprintf("%s_%d%s", stem, counter, ext)
	}
}
