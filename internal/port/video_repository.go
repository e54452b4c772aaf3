package port

import (
	"context"
	"time"

	"github.com/fhuszti/streams-ms-go/internal/model"
	"github.com/fhuszti/streams-ms-go/internal/uuid"
)

// VideoRepository defines persistence operations for videos.
type VideoRepository interface {
	Create(ctx context.Context, video *model.Video) error
	Update(ctx context.Context, video *model.Video) error
	GetByID(ctx context.Context, ID uuid.UUID) (*model.Video, error)
	Delete(ctx context.Context, ID uuid.UUID) error
	// PatchStream merges the non-nil fields of patch into the stored stream
	// sub-record, leaving every other key untouched.
	PatchStream(ctx context.Context, ID uuid.UUID, patch model.StreamPatch) error
	// ClaimStream applies patch only while no platform video is recorded yet,
	// so concurrent copies of the same record cannot both win.
	ClaimStream(ctx context.Context, ID uuid.UUID, patch model.StreamPatch) error
	ListUncopiedCompletedBefore(ctx context.Context, before time.Time) ([]uuid.UUID, error)
	ListPendingStreamsBefore(ctx context.Context, before time.Time) ([]uuid.UUID, error)
}
