package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fhuszti/streams-ms-go/internal/api_context"
	"github.com/fhuszti/streams-ms-go/internal/mock"
	msuuid "github.com/fhuszti/streams-ms-go/internal/uuid"
	"github.com/fhuszti/streams-ms-go/internal/usecase/video"
	"github.com/google/uuid"
)

func TestDeleteVideoHandler(t *testing.T) {
	validID := msuuid.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))

	tests := []struct {
		name             string
		ctxID            *msuuid.UUID
		svcErr           error
		wantStatus       int
		wantBodyContains string
	}{
		{
			name:       "happy path",
			ctxID:      &validID,
			wantStatus: http.StatusNoContent,
		},
		{
			name:             "missing ID",
			ctxID:            nil,
			wantStatus:       http.StatusBadRequest,
			wantBodyContains: "ID is required",
		},
		{
			name:             "video not found",
			ctxID:            &validID,
			svcErr:           video.ErrObjectNotFound,
			wantStatus:       http.StatusNotFound,
			wantBodyContains: "Video not found",
		},
		{
			name:             "service error",
			ctxID:            &validID,
			svcErr:           errors.New("boom"),
			wantStatus:       http.StatusInternalServerError,
			wantBodyContains: "Failed to delete video",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockSvc := &mock.VideoDeleter{Err: tc.svcErr}
			handlerFn := DeleteVideoHandler(mockSvc)

			req := httptest.NewRequest(http.MethodDelete, "/videos/"+validID.String(), nil)
			if tc.ctxID != nil {
				req = req.WithContext(context.WithValue(req.Context(), api_context.IDKey, *tc.ctxID))
			}
			rec := httptest.NewRecorder()

			handlerFn(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d", rec.Code, tc.wantStatus)
			}
			if tc.wantStatus == http.StatusNoContent {
				if mockSvc.GotID != validID {
					t.Errorf("service got ID = %s; want %s", mockSvc.GotID, validID)
				}
				if rec.Body.Len() != 0 {
					t.Errorf("expected empty body, got %q", rec.Body.String())
				}
				return
			}
			if !strings.Contains(rec.Body.String(), tc.wantBodyContains) {
				t.Errorf("body = %q; want to contain %q", rec.Body.String(), tc.wantBodyContains)
			}
		})
	}
}
