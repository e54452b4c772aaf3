package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"
)

// FakeStreamServer emulates the Cloudflare Stream REST API closely enough
// for the adapter: copy, status, delete and token endpoints, all wrapped in
// the usual {success, result, errors, messages} envelope. Streams become
// ready after PollsUntilReady status fetches.
type FakeStreamServer struct {
	Server *httptest.Server

	// PollsUntilReady is how many status fetches a stream needs before it
	// reports readyToStream. Zero means ready on the first poll.
	PollsUntilReady int
	// FailCopies makes the copy endpoint answer with a vendor error.
	FailCopies bool
	// ErrorReason, when set, makes status fetches report a terminal
	// processing error instead of ever becoming ready.
	ErrorReason string

	mu      sync.Mutex
	nextID  int
	polls   map[string]int
	copied  map[string]string // uid → source URL
	deleted []string
}

func NewFakeStreamServer() *FakeStreamServer {
	f := &FakeStreamServer{
		polls:  make(map[string]int),
		copied: make(map[string]string),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	return f
}

func (f *FakeStreamServer) Close() { f.Server.Close() }

// URL is the API base to hand to streaming.NewCloudflareStream.
func (f *FakeStreamServer) URL() string { return f.Server.URL }

// CopiedURLs returns the source URLs received by the copy endpoint.
func (f *FakeStreamServer) CopiedURLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.copied))
	for _, u := range f.copied {
		out = append(out, u)
	}
	return out
}

// DeletedIDs returns the stream ids the delete endpoint received.
func (f *FakeStreamServer) DeletedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

func (f *FakeStreamServer) handle(w http.ResponseWriter, r *http.Request) {
	// /accounts/{account}/stream[/...]
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 3 || parts[0] != "accounts" || parts[2] != "stream" {
		writeEnvelope(w, http.StatusNotFound, false, nil, "no such route")
		return
	}
	rest := parts[3:]

	switch {
	case r.Method == http.MethodPost && len(rest) == 1 && rest[0] == "copy":
		f.handleCopy(w, r)
	case r.Method == http.MethodGet && len(rest) == 1:
		f.handleStatus(w, rest[0])
	case r.Method == http.MethodDelete && len(rest) == 1:
		f.handleDelete(w, rest[0])
	case r.Method == http.MethodPost && len(rest) == 2 && rest[1] == "token":
		writeEnvelope(w, http.StatusOK, true, map[string]any{"token": "signed-" + rest[0]}, "")
	default:
		writeEnvelope(w, http.StatusNotFound, false, nil, "no such route")
	}
}

func (f *FakeStreamServer) handleCopy(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL  string `json:"url"`
		Meta struct {
			Name string `json:"name"`
		} `json:"meta"`
		RequireSignedURLs bool `json:"requireSignedURLs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEnvelope(w, http.StatusBadRequest, false, nil, "malformed request")
		return
	}

	f.mu.Lock()
	if f.FailCopies {
		f.mu.Unlock()
		writeEnvelope(w, http.StatusBadRequest, false, nil, "could not fetch the source URL")
		return
	}
	f.nextID++
	uid := fmt.Sprintf("fake-stream-%d", f.nextID)
	f.copied[uid] = req.URL
	f.mu.Unlock()

	writeEnvelope(w, http.StatusOK, true, map[string]any{
		"uid":               uid,
		"readyToStream":     false,
		"requireSignedURLs": req.RequireSignedURLs,
		"thumbnail":         "https://videodelivery.example/" + uid + "/thumbnail.jpg",
		"status":            map[string]any{"state": "downloading"},
	}, "")
}

func (f *FakeStreamServer) handleStatus(w http.ResponseWriter, uid string) {
	f.mu.Lock()
	if _, ok := f.copied[uid]; !ok {
		f.mu.Unlock()
		writeEnvelope(w, http.StatusNotFound, false, nil, "video not found")
		return
	}
	f.polls[uid]++
	pollCount := f.polls[uid]
	errorReason := f.ErrorReason
	ready := errorReason == "" && pollCount > f.PollsUntilReady
	f.mu.Unlock()

	result := map[string]any{
		"uid":               uid,
		"readyToStream":     ready,
		"requireSignedURLs": false,
		"thumbnail":         "https://videodelivery.example/" + uid + "/thumbnail.jpg",
		"status":            map[string]any{"state": "inprogress"},
	}
	if errorReason != "" {
		result["status"] = map[string]any{"state": "error", "errorReasonText": errorReason}
	}
	if ready {
		result["readyToStreamAt"] = time.Now().UTC().Format(time.RFC3339)
		result["duration"] = 12.5
		result["size"] = 123456
		result["input"] = map[string]any{"width": 1920, "height": 1080}
		result["status"] = map[string]any{"state": "ready"}
	}
	writeEnvelope(w, http.StatusOK, true, result, "")
}

func (f *FakeStreamServer) handleDelete(w http.ResponseWriter, uid string) {
	f.mu.Lock()
	_, ok := f.copied[uid]
	if ok {
		delete(f.copied, uid)
		f.deleted = append(f.deleted, uid)
	}
	f.mu.Unlock()

	if !ok {
		writeEnvelope(w, http.StatusNotFound, false, nil, "video not found")
		return
	}
	writeEnvelope(w, http.StatusOK, true, nil, "")
}

func writeEnvelope(w http.ResponseWriter, status int, success bool, result any, errMsg string) {
	env := map[string]any{
		"success":  success,
		"errors":   []any{},
		"messages": []any{},
	}
	if result != nil {
		env["result"] = result
	}
	if errMsg != "" {
		env["errors"] = []map[string]any{{"code": 10000, "message": errMsg}}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
