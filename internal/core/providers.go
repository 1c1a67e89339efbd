package core

import "context"

// GenerativeClient turns a prompt into a reply. Failures are *BackendError.
type GenerativeClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ImageSummarizer describes a local image file as text.
type ImageSummarizer interface {
	Summarize(ctx context.Context, path string) (string, error)
}

// LocalHandle is a transient local copy of a chat attachment.
type LocalHandle struct {
	Path string
}

type AttachmentFetcher interface {
	Fetch(ctx context.Context, ref AttachmentRef) (LocalHandle, error)
	Release(h LocalHandle) error
}
