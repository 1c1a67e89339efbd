package telegram

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sandevgo/heroguide/internal/core"
	"github.com/sandevgo/heroguide/pkg/log"
	tele "gopkg.in/telebot.v3"
)

// maxPhotoSize guards the media directory against oversized uploads.
const maxPhotoSize = 20 << 20

type fileSource interface {
	File(file *tele.File) (io.ReadCloser, error)
}

// Fetcher downloads chat photos into transient files under dir.
type Fetcher struct {
	files fileSource
	dir   string
}

func NewFetcher(bot *tele.Bot, dir string) (*Fetcher, error) {
	return newFetcher(bot, dir)
}

func newFetcher(files fileSource, dir string) (*Fetcher, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &Fetcher{files: files, dir: dir}, nil
}

func (f *Fetcher) Fetch(ctx context.Context, ref core.AttachmentRef) (core.LocalHandle, error) {
	if ref.Size > maxPhotoSize {
		return core.LocalHandle{}, core.NewBackendError("fetch", core.ReasonTransportFailure,
			fmt.Errorf("photo of %d bytes exceeds limit", ref.Size))
	}

	rc, err := f.open(ctx, ref)
	if err != nil {
		return core.LocalHandle{}, err
	}
	defer rc.Close()

	// Closing the body unblocks a stalled read once ctx is done.
	stop := context.AfterFunc(ctx, func() { _ = rc.Close() })
	defer stop()

	tmp, err := os.CreateTemp(f.dir, "photo-*.jpg")
	if err != nil {
		return core.LocalHandle{}, fmt.Errorf("failed to create temp file: %w", err)
	}
	handle := core.LocalHandle{Path: tmp.Name()}

	_, copyErr := io.Copy(tmp, io.LimitReader(rc, maxPhotoSize))
	closeErr := tmp.Close()
	if err := firstErr(ctx.Err(), copyErr, closeErr); err != nil {
		_ = f.Release(handle)
		return core.LocalHandle{}, core.ClassifyBackendError("fetch", err)
	}

	log.FromCtx(ctx).Debug().Str("file_id", ref.FileID).Str("path", handle.Path).Msg("photo downloaded")
	return handle, nil
}

// open starts the download. telebot's File takes no context, so the call runs
// in its own goroutine; a body that arrives after ctx is done gets closed.
func (f *Fetcher) open(ctx context.Context, ref core.AttachmentRef) (io.ReadCloser, error) {
	type opened struct {
		rc  io.ReadCloser
		err error
	}
	done := make(chan opened, 1)

	go func() {
		rc, err := f.files.File(&tele.File{FileID: ref.FileID})
		done <- opened{rc: rc, err: err}
	}()

	select {
	case <-ctx.Done():
		go func() {
			if late := <-done; late.rc != nil {
				_ = late.rc.Close()
			}
		}()
		return nil, core.ClassifyBackendError("fetch", fmt.Errorf("download %s: %w", ref.FileID, ctx.Err()))
	case res := <-done:
		if res.err != nil {
			return nil, core.ClassifyBackendError("fetch", fmt.Errorf("download %s: %w", ref.FileID, res.err))
		}
		return res.rc, nil
	}
}

// Release removes the transient file. Releasing twice is not an error.
func (f *Fetcher) Release(h core.LocalHandle) error {
	if h.Path == "" {
		return nil
	}
	if err := os.Remove(h.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", h.Path, err)
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
