package port

import (
	"context"
	"time"

	"github.com/fhuszti/streams-ms-go/internal/model"
	"github.com/fhuszti/streams-ms-go/internal/uuid"
)

type UUIDGen func() uuid.UUID

// VideoGetter retrieves video information from the repository and storage.
type VideoGetter interface {
	GetVideo(ctx context.Context, id uuid.UUID) (*GetVideoOutput, error)
}
type VideoMetadataOutput struct {
	OriginalFilename string `json:"original_filename"`
	MimeType         string `json:"mime_type"`
	SizeBytes        int64  `json:"size_bytes"`
}
type GetVideoOutput struct {
	ValidUntil time.Time           `json:"valid_until"`
	Cacheable  bool                `json:"cacheable"`
	URL        string              `json:"url"`
	Metadata   VideoMetadataOutput `json:"metadata"`
	Stream     model.Stream        `json:"stream"`
}

// VideoDeleter deletes a video, its file and its platform copy.
type VideoDeleter interface {
	DeleteVideo(ctx context.Context, id uuid.UUID) error
}

// UploadLinkGenerator returns a presigned link to upload a file.
type UploadLinkGenerator interface {
	GenerateUploadLink(ctx context.Context, in GenerateUploadLinkInput) (GenerateUploadLinkOutput, error)
}
type GenerateUploadLinkInput struct {
	Name string
}
type GenerateUploadLinkOutput struct {
	ID  uuid.UUID `json:"id"`
	URL string    `json:"url"`
}

// UploadFinaliser validates the given video in the staging bucket and moves it
// to the videos bucket.
type UploadFinaliser interface {
	FinaliseUpload(ctx context.Context, id uuid.UUID) (*model.Video, error)
}

// StreamCopier copies the file of a record to the streaming platform.
type StreamCopier interface {
	CopyVideoToStream(ctx context.Context, ref TaskRef) error
}

// StreamStatusUpdater refreshes the stream sub-record of a video from the
// platform and persists what changed.
type StreamStatusUpdater interface {
	UpdateStreamStatus(ctx context.Context, video *model.Video) error
}

// CheckStreamStatusOutput reports how a status poll ended.
type CheckStreamStatusOutput struct {
	Ready    bool
	Failed   bool
	Requeued bool
}

// StreamStatusChecker drives the deferred polling task for one record.
type StreamStatusChecker interface {
	CheckStreamStatus(ctx context.Context, ref TaskRef) (*CheckStreamStatusOutput, error)
}

// StreamRemover deletes the platform copy of a video. Platform failures are
// logged and swallowed so local deletion can never be blocked.
type StreamRemover interface {
	RemoveRemoteVideo(ctx context.Context, video *model.Video)
}

// StreamReconciler re-enqueues stream work for records the queue lost track of.
type StreamReconciler interface {
	ReconcileStreams(ctx context.Context) error
}
