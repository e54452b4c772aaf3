package video

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/fhuszti/streams-ms-go/internal/collection"
	"github.com/fhuszti/streams-ms-go/internal/model"
	"github.com/fhuszti/streams-ms-go/internal/port"
)

func pendingVideo() *model.Video {
	id := fixedUUID()
	return &model.Video{
		ID:               id,
		ObjectKey:        id.String(),
		Bucket:           "staging",
		OriginalFilename: "holiday.mp4",
		Status:           model.VideoStatusPending,
	}
}

func makeFinaliser(repo *mockRepo, strg *mockStorage, coll *collection.Collection) port.UploadFinaliser {
	if coll == nil {
		coll = collection.New("videos")
	}
	return NewUploadFinaliser(repo, strg, coll, "staging", "videos")
}

func TestFinaliseUpload_NotFound(t *testing.T) {
	repo := &mockRepo{getErr: sql.ErrNoRows}
	svc := makeFinaliser(repo, &mockStorage{}, nil)

	_, err := svc.FinaliseUpload(context.Background(), fixedUUID())
	if !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
}

func TestFinaliseUpload_ErrGetByID(t *testing.T) {
	repo := &mockRepo{getErr: errors.New("db fail")}
	svc := makeFinaliser(repo, &mockStorage{}, nil)

	_, err := svc.FinaliseUpload(context.Background(), fixedUUID())
	if err == nil || err.Error() != "db fail" {
		t.Fatalf("expected db fail, got %v", err)
	}
}

func TestFinaliseUpload_AlreadyCompleted(t *testing.T) {
	v := pendingVideo()
	v.Status = model.VideoStatusCompleted
	repo := &mockRepo{videoRecord: v}
	strg := &mockStorage{}
	coll := collection.New("videos")
	changed := false
	coll.OnAfterChange(func(ctx context.Context, video *model.Video) { changed = true })
	svc := makeFinaliser(repo, strg, coll)

	out, err := svc.FinaliseUpload(context.Background(), v.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != v {
		t.Errorf("expected the record back unchanged, got %v", out)
	}
	if changed {
		t.Error("expected no change hook to fire for an already completed record")
	}
	if strg.copyCalled {
		t.Error("expected no file move for an already completed record")
	}
}

func TestFinaliseUpload_WrongStatus(t *testing.T) {
	v := pendingVideo()
	v.Status = model.VideoStatusFailed
	repo := &mockRepo{videoRecord: v}
	svc := makeFinaliser(repo, &mockStorage{}, nil)

	_, err := svc.FinaliseUpload(context.Background(), v.ID)
	if err == nil || !strings.Contains(err.Error(), "video status should be 'pending'") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestFinaliseUpload_StatNotFound(t *testing.T) {
	v := pendingVideo()
	repo := &mockRepo{videoRecord: v}
	strg := &mockStorage{statErr: ErrObjectNotFound}
	svc := makeFinaliser(repo, strg, nil)

	_, err := svc.FinaliseUpload(context.Background(), v.ID)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected staging not found error, got %v", err)
	}
	if v.Status != model.VideoStatusFailed {
		t.Errorf("expected record marked failed, got %q", v.Status)
	}
	if v.FailureMessage == nil || !strings.Contains(*v.FailureMessage, "not found") {
		t.Errorf("expected failure message on record, got %v", v.FailureMessage)
	}
	if repo.updated != v {
		t.Error("expected the failed record to be persisted")
	}
}

func TestFinaliseUpload_TooSmall(t *testing.T) {
	v := pendingVideo()
	repo := &mockRepo{videoRecord: v}
	strg := &mockStorage{statInfo: port.FileInfo{SizeBytes: 12, ContentType: "video/mp4"}}
	svc := makeFinaliser(repo, strg, nil)

	_, err := svc.FinaliseUpload(context.Background(), v.ID)
	if err == nil || !strings.Contains(err.Error(), "too small") {
		t.Fatalf("expected too small error, got %v", err)
	}
	if len(strg.removed) != 1 || strg.removed[0] != "staging/"+v.ID.String() {
		t.Errorf("expected staging file cleaned up, got %v", strg.removed)
	}
	if v.Status != model.VideoStatusFailed {
		t.Errorf("expected record marked failed, got %q", v.Status)
	}
}

func TestFinaliseUpload_TooLarge(t *testing.T) {
	v := pendingVideo()
	repo := &mockRepo{videoRecord: v}
	strg := &mockStorage{statInfo: port.FileInfo{SizeBytes: MaxFileSize + 1, ContentType: "video/mp4"}}
	svc := makeFinaliser(repo, strg, nil)

	_, err := svc.FinaliseUpload(context.Background(), v.ID)
	if err == nil || !strings.Contains(err.Error(), "too large") {
		t.Fatalf("expected too large error, got %v", err)
	}
	if v.Status != model.VideoStatusFailed {
		t.Errorf("expected record marked failed, got %q", v.Status)
	}
}

func TestFinaliseUpload_UnsupportedMimeType(t *testing.T) {
	v := pendingVideo()
	repo := &mockRepo{videoRecord: v}
	strg := &mockStorage{statInfo: port.FileInfo{SizeBytes: 2048, ContentType: "application/zip"}}
	svc := makeFinaliser(repo, strg, nil)

	_, err := svc.FinaliseUpload(context.Background(), v.ID)
	if err == nil || !strings.Contains(err.Error(), "unsupported mime-type") {
		t.Fatalf("expected mime-type error, got %v", err)
	}
	if strg.copyCalled {
		t.Error("expected no file move for an unsupported mime type")
	}
}

func TestFinaliseUpload_MoveError(t *testing.T) {
	v := pendingVideo()
	repo := &mockRepo{videoRecord: v}
	strg := &mockStorage{
		statInfo: port.FileInfo{SizeBytes: 2048, ContentType: "video/mp4"},
		copyErr:  errors.New("minio down"),
	}
	svc := makeFinaliser(repo, strg, nil)

	_, err := svc.FinaliseUpload(context.Background(), v.ID)
	if err == nil || !strings.Contains(err.Error(), "move file") {
		t.Fatalf("expected move error, got %v", err)
	}
	if v.Status != model.VideoStatusFailed {
		t.Errorf("expected record marked failed, got %q", v.Status)
	}
}

func TestFinaliseUpload_Success(t *testing.T) {
	v := pendingVideo()
	stagingKey := v.ObjectKey
	repo := &mockRepo{videoRecord: v}
	strg := &mockStorage{statInfo: port.FileInfo{SizeBytes: 2048, ContentType: "video/mp4"}}
	coll := collection.New("videos")
	var hooked *model.Video
	coll.OnAfterChange(func(ctx context.Context, video *model.Video) { hooked = video })
	svc := makeFinaliser(repo, strg, coll)

	out, err := svc.FinaliseUpload(context.Background(), v.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strg.copyCalled {
		t.Fatal("expected the file to be copied out of staging")
	}
	if strg.copySrcBucket != "staging" || strg.copySrcKey != stagingKey {
		t.Errorf("copied from %s/%s, want staging/%s", strg.copySrcBucket, strg.copySrcKey, stagingKey)
	}
	if strg.copyDestBucket != "videos" || strg.copyDestKey != stagingKey+".mp4" {
		t.Errorf("copied to %s/%s, want videos/%s.mp4", strg.copyDestBucket, strg.copyDestKey, stagingKey)
	}
	if len(strg.removed) != 1 || strg.removed[0] != "staging/"+stagingKey {
		t.Errorf("expected staging file removed, got %v", strg.removed)
	}

	if out.Status != model.VideoStatusCompleted {
		t.Errorf("expected status completed, got %q", out.Status)
	}
	if out.ObjectKey != stagingKey+".mp4" {
		t.Errorf("expected object key %q, got %q", stagingKey+".mp4", out.ObjectKey)
	}
	if out.Bucket != "videos" {
		t.Errorf("expected bucket videos, got %q", out.Bucket)
	}
	if out.MimeType == nil || *out.MimeType != "video/mp4" {
		t.Errorf("expected mime type video/mp4, got %v", out.MimeType)
	}
	if out.SizeBytes == nil || *out.SizeBytes != 2048 {
		t.Errorf("expected size 2048, got %v", out.SizeBytes)
	}
	wantURL := "/videos/" + v.ID.String() + "/file"
	if out.URL != wantURL {
		t.Errorf("expected URL %q, got %q", wantURL, out.URL)
	}
	if repo.updated != v {
		t.Error("expected the completed record to be persisted")
	}
	if hooked != v {
		t.Error("expected the change hook to receive the completed record")
	}
}

func TestFinaliseUpload_UpdateError(t *testing.T) {
	v := pendingVideo()
	repo := &mockRepo{videoRecord: v, updateErr: errors.New("db fail")}
	strg := &mockStorage{statInfo: port.FileInfo{SizeBytes: 2048, ContentType: "video/mp4"}}
	coll := collection.New("videos")
	changed := false
	coll.OnAfterChange(func(ctx context.Context, video *model.Video) { changed = true })
	svc := makeFinaliser(repo, strg, coll)

	_, err := svc.FinaliseUpload(context.Background(), v.ID)
	if err == nil || !strings.Contains(err.Error(), "failed updating video") {
		t.Fatalf("expected update error, got %v", err)
	}
	if changed {
		t.Error("expected no change hook to fire when the record could not be persisted")
	}
}
