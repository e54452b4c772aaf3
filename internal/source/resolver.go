package source

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/fhuszti/streams-ms-go/internal/port"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Resolver turns stored file locators into URLs a streaming platform can
// download from.
type Resolver struct {
	client httpDoer
}

// compile-time check: *Resolver must satisfy port.SourceResolver
var _ port.SourceResolver = (*Resolver)(nil)

func NewResolver() *Resolver {
	return &Resolver{
		client: &http.Client{
			Timeout: 15 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Resolve absolutises rawURL against baseURL. When requireSignedURL is set
// the stored locator redirects to a short-lived presigned link that the
// streaming platform cannot obtain on its own, so Resolve probes the URL and
// returns the redirect target instead. A failed probe yields an empty URL
// and no error; the copy that consumes it will fail and record that failure.
func (r *Resolver) Resolve(ctx context.Context, rawURL, baseURL string, requireSignedURL bool) (string, error) {
	abs, err := absolutise(rawURL, baseURL)
	if err != nil {
		return "", fmt.Errorf("could not resolve source URL %q: %w", rawURL, err)
	}
	if !requireSignedURL {
		return abs, nil
	}

	log.Printf("probing %q for its presigned target...", abs)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, abs, nil)
	if err != nil {
		return "", fmt.Errorf("could not build probe request: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		log.Printf("probe of %q failed: %v", abs, err)
		return "", nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 300 || resp.StatusCode >= 400 {
		log.Printf("probe of %q returned status %d instead of a redirect", abs, resp.StatusCode)
		return "", nil
	}
	loc := resp.Header.Get("Location")
	if loc == "" {
		log.Printf("probe of %q returned a redirect with no Location header", abs)
		return "", nil
	}
	return loc, nil
}

func absolutise(rawURL, baseURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.IsAbs() {
		return rawURL, nil
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	return base.ResolveReference(u).String(), nil
}
