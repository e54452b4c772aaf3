package port

import (
	"context"
	"time"

	"github.com/fhuszti/streams-ms-go/internal/uuid"
)

// Cache provides caching capabilities for video retrieval.
type Cache interface {
	GetVideoDetails(ctx context.Context, id uuid.UUID) ([]byte, error)
	GetEtagVideoDetails(ctx context.Context, id uuid.UUID) (string, error)
	SetVideoDetails(ctx context.Context, id uuid.UUID, data []byte, validUntil time.Time)
	SetEtagVideoDetails(ctx context.Context, id uuid.UUID, etag string, validUntil time.Time)
	DeleteVideoDetails(ctx context.Context, id uuid.UUID) error
	DeleteEtagVideoDetails(ctx context.Context, id uuid.UUID) error
}
