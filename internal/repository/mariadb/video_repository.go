package mariadb

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/fhuszti/streams-ms-go/internal/model"
	"github.com/fhuszti/streams-ms-go/internal/port"
	streamService "github.com/fhuszti/streams-ms-go/internal/usecase/stream"
	"github.com/fhuszti/streams-ms-go/internal/uuid"
)

type VideoRepository struct {
	db *sql.DB
}

// compile-time check: *VideoRepository must satisfy port.VideoRepository
var _ port.VideoRepository = (*VideoRepository)(nil)

func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	log.Printf("creating database record for video #%s, at status %q...", video.ID, video.Status)

	const query = `
      INSERT INTO videos
        (id, object_key, bucket, original_filename, mime_type, size_bytes, url, status, failure_message, stream)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		video.ID, video.ObjectKey, video.Bucket,
		video.OriginalFilename, video.MimeType,
		video.SizeBytes, video.URL, video.Status,
		video.FailureMessage, video.Stream,
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *VideoRepository) Update(ctx context.Context, video *model.Video) error {
	log.Printf("updating database record for video #%s, with status %q...", video.ID, video.Status)

	const query = `
      UPDATE videos
      SET
        object_key      = ?,
        bucket     		= ?,
        mime_type       = ?,
        size_bytes      = ?,
        url             = ?,
        status          = ?,
        failure_message = ?,
        stream          = ?
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query,
		video.ObjectKey,
		video.Bucket,
		video.MimeType,
		video.SizeBytes,
		video.URL,
		video.Status,
		video.FailureMessage,
		video.Stream,
		video.ID, // WHERE clause
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *VideoRepository) GetByID(ctx context.Context, ID uuid.UUID) (*model.Video, error) {
	log.Printf("fetching video #%s from the database...", ID)

	const query = `
      SELECT id, object_key, bucket, original_filename, mime_type, size_bytes, url, status, failure_message, stream, created_at, updated_at
      FROM videos
      WHERE id = ?
    `
	row := r.db.QueryRowContext(ctx, query, ID)
	var video model.Video
	if err := row.Scan(
		&video.ID, &video.ObjectKey, &video.Bucket,
		&video.OriginalFilename, &video.MimeType,
		&video.SizeBytes, &video.URL, &video.Status,
		&video.FailureMessage, &video.Stream,
		&video.CreatedAt, &video.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &video, nil
}

func (r *VideoRepository) Delete(ctx context.Context, ID uuid.UUID) error {
	log.Printf("deleting database record for video #%s...", ID)

	const query = `DELETE FROM videos WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, ID)
	if err != nil {
		return err
	}

	return nil
}

func (r *VideoRepository) PatchStream(ctx context.Context, ID uuid.UUID, patch model.StreamPatch) error {
	log.Printf("patching stream sub-record for video #%s...", ID)

	const query = `
      UPDATE videos
      SET stream = JSON_MERGE_PATCH(stream, ?)
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query, patch, ID)
	if err != nil {
		return err
	}

	return nil
}

func (r *VideoRepository) ClaimStream(ctx context.Context, ID uuid.UUID, patch model.StreamPatch) error {
	log.Printf("claiming stream sub-record for video #%s...", ID)

	const query = `
      UPDATE videos
      SET stream = JSON_MERGE_PATCH(stream, ?)
      WHERE id = ?
        AND (JSON_UNQUOTE(JSON_EXTRACT(stream, '$.video_id')) = ''
          OR JSON_EXTRACT(stream, '$.video_id') IS NULL)
    `
	res, err := r.db.ExecContext(ctx, query, patch, ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return streamService.ErrStreamAlreadyClaimed
	}

	return nil
}

func (r *VideoRepository) ListUncopiedCompletedBefore(ctx context.Context, before time.Time) ([]uuid.UUID, error) {
	const query = `
      SELECT id
      FROM videos
      WHERE status = 'completed'
        AND mime_type LIKE 'video/%'
        AND (JSON_UNQUOTE(JSON_EXTRACT(stream, '$.video_id')) = ''
          OR JSON_EXTRACT(stream, '$.video_id') IS NULL)
        AND (JSON_UNQUOTE(JSON_EXTRACT(stream, '$.error')) = ''
          OR JSON_EXTRACT(stream, '$.error') IS NULL)
        AND updated_at < ?
    `
	return r.listIDs(ctx, query, before)
}

func (r *VideoRepository) ListPendingStreamsBefore(ctx context.Context, before time.Time) ([]uuid.UUID, error) {
	const query = `
      SELECT id
      FROM videos
      WHERE JSON_UNQUOTE(JSON_EXTRACT(stream, '$.video_id')) <> ''
        AND JSON_EXTRACT(stream, '$.ready_to_stream') = 'false'
        AND (JSON_UNQUOTE(JSON_EXTRACT(stream, '$.error')) = ''
          OR JSON_EXTRACT(stream, '$.error') IS NULL)
        AND updated_at < ?
    `
	return r.listIDs(ctx, query, before)
}

func (r *VideoRepository) listIDs(ctx context.Context, query string, before time.Time) ([]uuid.UUID, error) {
	rows, err := r.db.QueryContext(ctx, query, before)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
