package stream

import "errors"

var (
	ErrVideoNotFound        = errors.New("stream: video not found")
	ErrNotStreamable        = errors.New("stream: record is not a streamable video")
	ErrStreamAlreadyClaimed = errors.New("stream: a platform copy already exists")
	ErrStreamNotClaimed     = errors.New("stream: no platform copy recorded")
	ErrCopyFailed           = errors.New("stream: copying to the platform failed")
)
