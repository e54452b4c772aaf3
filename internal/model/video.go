package model

import (
	"strings"
	"time"

	"github.com/fhuszti/streams-ms-go/internal/uuid"
)

type VideoStatus string

const (
	VideoStatusPending   VideoStatus = "pending"
	VideoStatusCompleted VideoStatus = "completed"
	VideoStatusFailed    VideoStatus = "failed"
)

type Video struct {
	ID               uuid.UUID   `json:"id"`
	ObjectKey        string      `json:"object_key"`
	Bucket           string      `json:"bucket"`
	OriginalFilename string      `json:"original_filename"`
	MimeType         *string     `json:"mime_type"`
	SizeBytes        *int64      `json:"size_bytes"`
	URL              string      `json:"url"`
	Status           VideoStatus `json:"status"`
	FailureMessage   *string     `json:"failure_message"`
	Stream           Stream      `json:"stream"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// IsVideo reports whether the record's file carries a video mime type.
func (v *Video) IsVideo() bool {
	return v.MimeType != nil && strings.HasPrefix(*v.MimeType, "video/")
}

// Streamable reports whether the record holds a finalised video file that
// belongs on the streaming platform. Non-video files never qualify.
func (v *Video) Streamable() bool {
	return v.Status == VideoStatusCompleted && v.IsVideo()
}
