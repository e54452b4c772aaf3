package stream

import (
	"context"
	"errors"
	"testing"

	"github.com/fhuszti/streams-ms-go/internal/model"
)

func TestRemoveRemoteVideo_UnclaimedIsANoop(t *testing.T) {
	provider := &mockProvider{}
	svc := NewStreamRemover(provider)

	svc.RemoveRemoteVideo(context.Background(), testVideo(model.Stream{}))

	if len(provider.deleted) != 0 {
		t.Errorf("expected no platform call, got %v", provider.deleted)
	}
}

func TestRemoveRemoteVideo_DeletesThePlatformCopy(t *testing.T) {
	provider := &mockProvider{}
	svc := NewStreamRemover(provider)

	svc.RemoveRemoteVideo(context.Background(), testVideo(model.Stream{VideoID: "cf123"}))

	if len(provider.deleted) != 1 || provider.deleted[0] != "cf123" {
		t.Errorf("expected cf123 to be deleted, got %v", provider.deleted)
	}
}

func TestRemoveRemoteVideo_SwallowsPlatformError(t *testing.T) {
	provider := &mockProvider{deleteErr: errors.New("vendor said no")}
	svc := NewStreamRemover(provider)

	svc.RemoveRemoteVideo(context.Background(), testVideo(model.Stream{VideoID: "cf123"}))

	if len(provider.deleted) != 1 {
		t.Error("expected the delete to be attempted")
	}
}
