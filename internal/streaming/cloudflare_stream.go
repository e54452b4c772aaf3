package streaming

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/fhuszti/streams-ms-go/internal/model"
	"github.com/fhuszti/streams-ms-go/internal/port"
)

// ProviderName tags records copied by this adapter and is part of the task
// type names, so it must stay stable across deployments.
const ProviderName = "cloudflare-stream"

var playerTmpl = template.Must(template.New("player").Parse(
	`<div style="position: relative; padding-top: 56.25%;"><iframe src="{{.Src}}" style="border: none; position: absolute; top: 0; left: 0; height: 100%; width: 100%;" allow="accelerometer; gyroscope; autoplay; encrypted-media; picture-in-picture;" allowfullscreen="true"></iframe></div>`,
))

type CloudflareStream struct {
	client            httpDoer
	baseURL           string
	token             string
	customerSubdomain string
}

// compile-time check: *CloudflareStream must satisfy port.StreamProvider
var _ port.StreamProvider = (*CloudflareStream)(nil)

func NewCloudflareStream(apiBaseURL, accountID, apiToken, customerSubdomain string) *CloudflareStream {
	return &CloudflareStream{
		client:            &http.Client{Timeout: 30 * time.Second},
		baseURL:           fmt.Sprintf("%s/accounts/%s/stream", strings.TrimSuffix(apiBaseURL, "/"), accountID),
		token:             apiToken,
		customerSubdomain: customerSubdomain,
	}
}

func (c *CloudflareStream) Name() string { return ProviderName }

// --- wire format ---

type apiMessage struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Success  bool            `json:"success"`
	Result   json.RawMessage `json:"result"`
	Errors   []apiMessage    `json:"errors"`
	Messages []apiMessage    `json:"messages"`
}

type videoInput struct {
	Width  *int `json:"width"`
	Height *int `json:"height"`
}

type videoStatus struct {
	State           string `json:"state"`
	ErrorReasonCode string `json:"errorReasonCode"`
	ErrorReasonText string `json:"errorReasonText"`
}

type videoResult struct {
	UID               string       `json:"uid"`
	ReadyToStream     bool         `json:"readyToStream"`
	ReadyToStreamAt   *time.Time   `json:"readyToStreamAt"`
	RequireSignedURLs bool         `json:"requireSignedURLs"`
	Thumbnail         string       `json:"thumbnail"`
	Duration          *float64     `json:"duration"`
	Size              *int64       `json:"size"`
	Input             *videoInput  `json:"input"`
	Status            *videoStatus `json:"status"`
}

type copyRequest struct {
	URL               string   `json:"url"`
	Meta              copyMeta `json:"meta"`
	RequireSignedURLs bool     `json:"requireSignedURLs"`
}

type copyMeta struct {
	Name string `json:"name"`
}

type tokenResult struct {
	Token string `json:"token"`
}

// --- port.StreamProvider ---

func (c *CloudflareStream) CopyVideo(ctx context.Context, src port.CopySource) (*port.StreamResult, error) {
	log.Printf("copying video %q to Cloudflare Stream...", src.Name)

	body, err := json.Marshal(copyRequest{
		URL:               src.URL,
		Meta:              copyMeta{Name: src.Name},
		RequireSignedURLs: src.RequireSignedURLs,
	})
	if err != nil {
		return nil, fmt.Errorf("could not marshal copy request: %w", err)
	}

	var result videoResult
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/copy", bytes.NewReader(body), &result); err != nil {
		return nil, fmt.Errorf("copy video: %w", err)
	}
	if result.UID == "" {
		return nil, fmt.Errorf("copy video: response carries no video id")
	}

	return toStreamResult(result), nil
}

func (c *CloudflareStream) GetStatus(ctx context.Context, videoID string) (*port.StreamResult, error) {
	log.Printf("fetching status of stream %q from Cloudflare Stream...", videoID)

	var result videoResult
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/"+videoID, nil, &result); err != nil {
		return nil, fmt.Errorf("get status of %q: %w", videoID, err)
	}

	return toStreamResult(result), nil
}

func (c *CloudflareStream) Delete(ctx context.Context, videoID string) error {
	log.Printf("deleting stream %q from Cloudflare Stream...", videoID)

	if err := c.do(ctx, http.MethodDelete, c.baseURL+"/"+videoID, nil, nil); err != nil {
		return fmt.Errorf("delete %q: %w", videoID, err)
	}
	return nil
}

func (c *CloudflareStream) SignedToken(ctx context.Context, videoID string) (string, error) {
	log.Printf("minting a signed token for stream %q...", videoID)

	var result tokenResult
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/"+videoID+"/token", nil, &result); err != nil {
		return "", fmt.Errorf("signed token for %q: %w", videoID, err)
	}
	return result.Token, nil
}

// HTMLVideoPlayer renders the iframe embed snippet for a stream. It returns
// an empty string when the stream has no platform video yet or no customer
// subdomain is configured.
func (c *CloudflareStream) HTMLVideoPlayer(ctx context.Context, stream *model.Stream) (string, error) {
	if stream == nil || stream.VideoID == "" || c.customerSubdomain == "" {
		return "", nil
	}

	id := stream.VideoID
	if stream.RequireSignedURLs {
		token, err := c.SignedToken(ctx, id)
		if err != nil {
			return "", err
		}
		id = token
	}

	var b strings.Builder
	src := fmt.Sprintf("https://customer-%s.cloudflarestream.com/%s/iframe", c.customerSubdomain, id)
	if err := playerTmpl.Execute(&b, struct{ Src string }{Src: src}); err != nil {
		return "", fmt.Errorf("render video player: %w", err)
	}
	return b.String(), nil
}

// --- plumbing ---

func (c *CloudflareStream) do(ctx context.Context, method, url string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("could not build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return fmt.Errorf("could not decode response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, joinAPIErrors(env.Errors))
	}

	if out != nil {
		if len(env.Result) == 0 {
			return fmt.Errorf("response carries no result")
		}
		if err := json.Unmarshal(env.Result, out); err != nil {
			return fmt.Errorf("could not decode result: %w", err)
		}
	}
	return nil
}

func joinAPIErrors(errs []apiMessage) string {
	if len(errs) == 0 {
		return "no error detail"
	}
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, fmt.Sprintf("%d: %s", e.Code, e.Message))
	}
	return strings.Join(parts, "; ")
}

func toStreamResult(r videoResult) *port.StreamResult {
	out := &port.StreamResult{
		VideoID:           r.UID,
		ReadyToStream:     r.ReadyToStream,
		ReadyToStreamAt:   r.ReadyToStreamAt,
		RequireSignedURLs: r.RequireSignedURLs,
		ThumbnailURL:      r.Thumbnail,
		DurationInSeconds: r.Duration,
		SizeBytes:         r.Size,
	}
	if r.Input != nil {
		out.Width = r.Input.Width
		out.Height = r.Input.Height
	}
	if r.Status != nil {
		out.State = r.Status.State
		out.ErrorReason = r.Status.ErrorReasonText
	}
	return out
}
