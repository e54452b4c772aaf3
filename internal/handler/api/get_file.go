package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/fhuszti/streams-ms-go/internal/api_context"
	"github.com/fhuszti/streams-ms-go/internal/port"
	"github.com/fhuszti/streams-ms-go/internal/usecase/video"
)

// GetFileHandler redirects to a short-lived download link for the raw file.
// The streaming platform lands here when it pulls a copy out of a private
// bucket, so the Location header must carry a URL it can download without
// credentials.
func GetFileHandler(svc port.VideoGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		out, err := svc.GetVideo(r.Context(), id)
		if err != nil {
			if errors.Is(err, video.ErrObjectNotFound) {
				WriteError(w, http.StatusNotFound, "Video not found", nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "Could not get video file", err)
			return
		}

		w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
		http.Redirect(w, r, out.URL, http.StatusTemporaryRedirect)
		log.Printf("✅  Redirecting to the file of video #%s", id)
	}
}
