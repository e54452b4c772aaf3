package port

import (
	"context"
	"io"
	"time"
)

// FileInfo is the subset of object metadata the upload flow validates.
type FileInfo struct {
	SizeBytes   int64
	ContentType string
}

// Storage abstracts the object store holding staged uploads and published
// video files.
type Storage interface {
	InitBucket(bucket string) error
	GeneratePresignedDownloadURL(ctx context.Context, bucket, fileKey string, expiry time.Duration) (string, error)
	GeneratePresignedUploadURL(ctx context.Context, bucket, fileKey string, expiry time.Duration) (string, error)
	FileExists(ctx context.Context, bucket, fileKey string) (bool, error)
	StatFile(ctx context.Context, bucket, fileKey string) (FileInfo, error)
	RemoveFile(ctx context.Context, bucket, fileKey string) error
	SaveFile(ctx context.Context, bucket, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error
	CopyFile(ctx context.Context, srcBucket, srcKey, destBucket, destKey string) error
}
