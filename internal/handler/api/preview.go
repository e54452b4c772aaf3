package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/fhuszti/streams-ms-go/internal/api_context"
	"github.com/fhuszti/streams-ms-go/internal/logger"
	"github.com/fhuszti/streams-ms-go/internal/port"
	"github.com/fhuszti/streams-ms-go/internal/usecase/video"
)

// PreviewVideoHandler responds with an HTML snippet embedding the platform
// player for the video, signed playback token included when the stream
// requires one.
func PreviewVideoHandler(svc port.VideoGetter, provider port.StreamProvider) http.HandlerFunc {
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
			WriteError(w, http.StatusInternalServerError, "Could not get video details", err)
			return
		}

		html, err := provider.HTMLVideoPlayer(r.Context(), &out.Stream)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Could not render video player", err)
			return
		}
		if html == "" {
			WriteError(w, http.StatusNotFound, "No stream available for this video", nil)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(html)); err != nil {
			logger.Errorf(r.Context(), "❌  Failed to write HTML payload: %v", err)
		}
		log.Printf("✅  Successfully rendered the player for video #%s", id)
	}
}
