package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/fhuszti/streams-ms-go/internal/api_context"
	"github.com/fhuszti/streams-ms-go/internal/port"
	"github.com/fhuszti/streams-ms-go/internal/usecase/video"
)

// FinaliseUploadHandler validates the staged upload and responds with the
// completed record, stream sub-record included.
func FinaliseUploadHandler(svc port.UploadFinaliser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		out, err := svc.FinaliseUpload(r.Context(), id)
		if err != nil {
			if errors.Is(err, video.ErrObjectNotFound) {
				WriteError(w, http.StatusNotFound, "Video not found", nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Could not finalise upload of video #%s", id), err)
			return
		}

		RespondJSON(w, http.StatusOK, out)
		log.Printf("✅  Successfully finalised upload of video #%s", id)
	}
}
