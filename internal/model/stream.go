package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Stream is the platform-side sub-record of a video, stored as a JSON
// column alongside the file metadata.
type Stream struct {
	VideoID           string     `json:"video_id"`
	Provider          string     `json:"provider"`
	ReadyToStream     bool       `json:"ready_to_stream"`
	ReadyToStreamAt   *time.Time `json:"ready_to_stream_at,omitempty"`
	RequireSignedURLs bool       `json:"require_signed_urls"`
	DurationInSeconds *float64   `json:"duration_in_seconds,omitempty"`
	Width             *int       `json:"width,omitempty"`
	Height            *int       `json:"height,omitempty"`
	SizeBytes         *int64     `json:"size_bytes,omitempty"`
	ThumbnailURL      string     `json:"thumbnail_url,omitempty"`
	Error             string     `json:"error,omitempty"`
}

// Claimed reports whether a platform copy exists (or is being created)
// for this record.
func (s *Stream) Claimed() bool {
	return s.VideoID != ""
}

// Failed reports whether the last copy attempt ended in an error. A new
// attempt only makes sense once Error has been cleared.
func (s *Stream) Failed() bool {
	return s.Error != ""
}

func (s Stream) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal Stream: %w", err)
	}
	return b, nil
}
func (s *Stream) Scan(src interface{}) error {
	if src == nil {
		*s = Stream{}
		return nil
	}
	data, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("Stream.Scan: expected []byte, got %T", src)
	}
	if err := json.Unmarshal(data, s); err != nil {
		return fmt.Errorf("unmarshal Stream: %w", err)
	}
	return nil
}

// StreamPatch is a partial update of a Stream. Nil fields are left
// untouched when the patch is merged into the stored JSON.
type StreamPatch struct {
	VideoID           *string    `json:"video_id,omitempty"`
	Provider          *string    `json:"provider,omitempty"`
	ReadyToStream     *bool      `json:"ready_to_stream,omitempty"`
	ReadyToStreamAt   *time.Time `json:"ready_to_stream_at,omitempty"`
	RequireSignedURLs *bool      `json:"require_signed_urls,omitempty"`
	DurationInSeconds *float64   `json:"duration_in_seconds,omitempty"`
	Width             *int       `json:"width,omitempty"`
	Height            *int       `json:"height,omitempty"`
	SizeBytes         *int64     `json:"size_bytes,omitempty"`
	ThumbnailURL      *string    `json:"thumbnail_url,omitempty"`
	Error             *string    `json:"error,omitempty"`
}

func (p StreamPatch) Value() (driver.Value, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal StreamPatch: %w", err)
	}
	return b, nil
}

// Apply mirrors the database-side merge onto the in-memory sub-record.
func (s *Stream) Apply(p StreamPatch) {
	if p.VideoID != nil {
		s.VideoID = *p.VideoID
	}
	if p.Provider != nil {
		s.Provider = *p.Provider
	}
	if p.ReadyToStream != nil {
		s.ReadyToStream = *p.ReadyToStream
	}
	if p.ReadyToStreamAt != nil {
		s.ReadyToStreamAt = p.ReadyToStreamAt
	}
	if p.RequireSignedURLs != nil {
		s.RequireSignedURLs = *p.RequireSignedURLs
	}
	if p.DurationInSeconds != nil {
		s.DurationInSeconds = p.DurationInSeconds
	}
	if p.Width != nil {
		s.Width = p.Width
	}
	if p.Height != nil {
		s.Height = p.Height
	}
	if p.SizeBytes != nil {
		s.SizeBytes = p.SizeBytes
	}
	if p.ThumbnailURL != nil {
		s.ThumbnailURL = *p.ThumbnailURL
	}
	if p.Error != nil {
		s.Error = *p.Error
	}
}
