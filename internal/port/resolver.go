package port

import "context"

// SourceResolver turns the locator stored on a record into an absolute URL
// the streaming platform can download from. When requireSignedURL is set the
// resolved URL is probed for a redirect and the Location target is used
// instead, since private buckets answer with a temporary signed URL.
type SourceResolver interface {
	Resolve(ctx context.Context, rawURL, baseURL string, requireSignedURL bool) (string, error)
}
