package video

import (
	"fmt"
	"strings"
)

// MinFileSize rejects empty or truncated uploads.
const MinFileSize = 1024

// MaxFileSize is sized for raw camera footage, not documents.
const MaxFileSize = 5 * 1024 * 1024 * 1024

// AllowedMimeTypes lists every mime type an upload may carry. Image types
// are accepted for posters and thumbnails; only video types are ever
// copied to the streaming platform.
var AllowedMimeTypes = map[string]bool{
	"video/mp4":        true,
	"video/webm":       true,
	"video/quicktime":  true,
	"video/x-matroska": true,
	"video/mpeg":       true,
	"image/png":        true,
	"image/jpeg":       true,
	"image/webp":       true,
}

func IsMimeTypeAllowed(mimeType string) bool {
	return AllowedMimeTypes[strings.ToLower(mimeType)]
}

// IsVideo reports whether the mime type belongs to the video family.
func IsVideo(mimeType string) bool {
	return strings.HasPrefix(strings.ToLower(mimeType), "video/")
}

// MimeTypeToExtension returns the canonical extension, dot included, for
// an allowed mime type.
func MimeTypeToExtension(mimeType string) (string, error) {
	switch strings.ToLower(mimeType) {
	case "video/mp4":
		return ".mp4", nil
	case "video/webm":
		return ".webm", nil
	case "video/quicktime":
		return ".mov", nil
	case "video/x-matroska":
		return ".mkv", nil
	case "video/mpeg":
		return ".mpg", nil
	case "image/png":
		return ".png", nil
	case "image/jpeg":
		return ".jpg", nil
	case "image/webp":
		return ".webp", nil
	default:
		return "", fmt.Errorf("no known extension for mime-type %q", mimeType)
	}
}
