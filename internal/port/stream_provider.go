package port

import (
	"context"
	"time"

	"github.com/fhuszti/streams-ms-go/internal/model"
)

// CopySource describes the downloadable source handed to the platform
// when copying a video.
type CopySource struct {
	URL               string
	Name              string
	RequireSignedURLs bool
}

// StreamResult is the provider-neutral description of a platform video.
type StreamResult struct {
	VideoID           string
	State             string
	ErrorReason       string
	ReadyToStream     bool
	ReadyToStreamAt   *time.Time
	RequireSignedURLs bool
	DurationInSeconds *float64
	Width             *int
	Height            *int
	SizeBytes         *int64
	ThumbnailURL      string
}

// StreamProvider adapts a remote streaming platform such as Cloudflare Stream.
type StreamProvider interface {
	// Name returns the stable identifier of the platform. It is persisted on
	// records and used to derive task type names, so it must never change
	// once deployed.
	Name() string
	CopyVideo(ctx context.Context, src CopySource) (*StreamResult, error)
	GetStatus(ctx context.Context, videoID string) (*StreamResult, error)
	Delete(ctx context.Context, videoID string) error
	SignedToken(ctx context.Context, videoID string) (string, error)
	HTMLVideoPlayer(ctx context.Context, stream *model.Stream) (string, error)
}
