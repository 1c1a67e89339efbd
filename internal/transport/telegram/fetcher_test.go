package telegram

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sandevgo/heroguide/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

type fakeFiles struct {
	content string
	err     error
	asked   string
}

func (f *fakeFiles) File(file *tele.File) (io.ReadCloser, error) {
	f.asked = file.FileID
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader(f.content)), nil
}

func TestFetcher_FetchAndRelease(t *testing.T) {
	dir := t.TempDir()
	files := &fakeFiles{content: "jpeg bytes"}
	f, err := newFetcher(files, dir)
	require.NoError(t, err)

	h, err := f.Fetch(context.Background(), core.AttachmentRef{FileID: "AgAD"})
	require.NoError(t, err)
	assert.Equal(t, "AgAD", files.asked)

	data, err := os.ReadFile(h.Path)
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(data))

	require.NoError(t, f.Release(h))
	_, err = os.Stat(h.Path)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, f.Release(h), "second release is a no-op")
}

func TestFetcher_DownloadError(t *testing.T) {
	dir := t.TempDir()
	f, err := newFetcher(&fakeFiles{err: errors.New("telegram: file is too big")}, dir)
	require.NoError(t, err)

	_, err = f.Fetch(context.Background(), core.AttachmentRef{FileID: "AgAD"})
	be, ok := core.AsBackendError(err)
	require.True(t, ok)
	assert.Equal(t, core.ReasonTransportFailure, be.Reason)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFetcher_TooLarge(t *testing.T) {
	f, err := newFetcher(&fakeFiles{}, t.TempDir())
	require.NoError(t, err)

	_, err = f.Fetch(context.Background(), core.AttachmentRef{FileID: "big", Size: maxPhotoSize + 1})
	assert.Error(t, err)
}

func TestFetcher_CancelledContextLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	f, err := newFetcher(&fakeFiles{content: "data"}, dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = f.Fetch(ctx, core.AttachmentRef{FileID: "AgAD"})
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// stalledBody blocks every Read until it is closed.
type stalledBody struct {
	closed chan struct{}
	once   atomic.Bool
}

func newStalledBody() *stalledBody {
	return &stalledBody{closed: make(chan struct{})}
}

func (b *stalledBody) Read(p []byte) (int, error) {
	<-b.closed
	return 0, io.ErrClosedPipe
}

func (b *stalledBody) Close() error {
	if b.once.CompareAndSwap(false, true) {
		close(b.closed)
	}
	return nil
}

func (b *stalledBody) isClosed() bool {
	return b.once.Load()
}

// slowFiles answers File only after release is closed.
type slowFiles struct {
	release chan struct{}
	body    *stalledBody
}

func (f *slowFiles) File(file *tele.File) (io.ReadCloser, error) {
	<-f.release
	return f.body, nil
}

type stalledFiles struct {
	body *stalledBody
}

func (f *stalledFiles) File(file *tele.File) (io.ReadCloser, error) {
	return f.body, nil
}

func TestFetcher_TimeoutDuringSlowDownload(t *testing.T) {
	dir := t.TempDir()
	files := &slowFiles{release: make(chan struct{}), body: newStalledBody()}
	f, err := newFetcher(files, dir)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = f.Fetch(ctx, core.AttachmentRef{FileID: "AgAD"})
	elapsed := time.Since(start)

	be, ok := core.AsBackendError(err)
	require.True(t, ok)
	assert.Equal(t, core.ReasonTimeout, be.Reason)
	assert.Less(t, elapsed, 400*time.Millisecond, "fetch must return at the deadline")

	close(files.release)
	assert.Eventually(t, files.body.isClosed, time.Second, 5*time.Millisecond, "late body is closed")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFetcher_TimeoutDuringStalledBody(t *testing.T) {
	dir := t.TempDir()
	body := newStalledBody()
	f, err := newFetcher(&stalledFiles{body: body}, dir)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = f.Fetch(ctx, core.AttachmentRef{FileID: "AgAD"})

	be, ok := core.AsBackendError(err)
	require.True(t, ok)
	assert.Equal(t, core.ReasonTimeout, be.Reason)
	assert.Less(t, time.Since(start), 400*time.Millisecond)
	assert.True(t, body.isClosed())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
