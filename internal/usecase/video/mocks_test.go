package video

import (
	"context"
	"io"
	"time"

	"github.com/fhuszti/streams-ms-go/internal/model"
	"github.com/fhuszti/streams-ms-go/internal/port"
	"github.com/fhuszti/streams-ms-go/internal/uuid"
)

type mockRepo struct {
	videoRecord *model.Video
	getErr      error

	created   *model.Video
	createErr error

	updated   *model.Video
	updateErr error

	deletedID uuid.UUID
	deleteErr error
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.videoRecord, nil
}
func (m *mockRepo) Create(ctx context.Context, video *model.Video) error {
	m.created = video
	return m.createErr
}
func (m *mockRepo) Update(ctx context.Context, video *model.Video) error {
	m.updated = video
	return m.updateErr
}
func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.deletedID = id
	return m.deleteErr
}
func (m *mockRepo) PatchStream(ctx context.Context, id uuid.UUID, patch model.StreamPatch) error {
	return nil
}
func (m *mockRepo) ClaimStream(ctx context.Context, id uuid.UUID, patch model.StreamPatch) error {
	return nil
}
func (m *mockRepo) ListUncopiedCompletedBefore(ctx context.Context, before time.Time) ([]uuid.UUID, error) {
	return nil, nil
}
func (m *mockRepo) ListPendingStreamsBefore(ctx context.Context, before time.Time) ([]uuid.UUID, error) {
	return nil, nil
}

type mockStorage struct {
	uploadURL    string
	uploadErr    error
	uploadBucket string
	uploadKey    string

	downloadURL    string
	downloadErr    error
	downloadBucket string
	downloadKey    string

	statInfo port.FileInfo
	statErr  error

	copyErr        error
	copyCalled     bool
	copySrcBucket  string
	copySrcKey     string
	copyDestBucket string
	copyDestKey    string

	removeErr error
	removed   []string
}

func (m *mockStorage) InitBucket(bucket string) error { return nil }
func (m *mockStorage) GeneratePresignedDownloadURL(ctx context.Context, bucket, fileKey string, expiry time.Duration) (string, error) {
	m.downloadBucket = bucket
	m.downloadKey = fileKey
	return m.downloadURL, m.downloadErr
}
func (m *mockStorage) GeneratePresignedUploadURL(ctx context.Context, bucket, fileKey string, expiry time.Duration) (string, error) {
	m.uploadBucket = bucket
	m.uploadKey = fileKey
	return m.uploadURL, m.uploadErr
}
func (m *mockStorage) FileExists(ctx context.Context, bucket, fileKey string) (bool, error) {
	return false, nil
}
func (m *mockStorage) StatFile(ctx context.Context, bucket, fileKey string) (port.FileInfo, error) {
	return m.statInfo, m.statErr
}
func (m *mockStorage) RemoveFile(ctx context.Context, bucket, fileKey string) error {
	if m.removeErr != nil {
		return m.removeErr
	}
	m.removed = append(m.removed, bucket+"/"+fileKey)
	return nil
}
func (m *mockStorage) SaveFile(ctx context.Context, bucket, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error {
	return nil
}
func (m *mockStorage) CopyFile(ctx context.Context, srcBucket, srcKey, destBucket, destKey string) error {
	if m.copyErr != nil {
		return m.copyErr
	}
	m.copyCalled = true
	m.copySrcBucket = srcBucket
	m.copySrcKey = srcKey
	m.copyDestBucket = destBucket
	m.copyDestKey = destKey
	return nil
}

type mockCache struct {
	deletedDetails bool
	deletedEtag    bool
	deleteErr      error
}

func (m *mockCache) GetVideoDetails(ctx context.Context, id uuid.UUID) ([]byte, error) {
	return nil, nil
}
func (m *mockCache) GetEtagVideoDetails(ctx context.Context, id uuid.UUID) (string, error) {
	return "", nil
}
func (m *mockCache) SetVideoDetails(ctx context.Context, id uuid.UUID, data []byte, validUntil time.Time) {
}
func (m *mockCache) SetEtagVideoDetails(ctx context.Context, id uuid.UUID, etag string, validUntil time.Time) {
}
func (m *mockCache) DeleteVideoDetails(ctx context.Context, id uuid.UUID) error {
	m.deletedDetails = true
	return m.deleteErr
}
func (m *mockCache) DeleteEtagVideoDetails(ctx context.Context, id uuid.UUID) error {
	m.deletedEtag = true
	return m.deleteErr
}
