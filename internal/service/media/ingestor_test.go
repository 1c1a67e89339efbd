package media

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sandevgo/heroguide/internal/core"
	"github.com/stretchr/testify/assert"
)

type fakeFetcher struct {
	err      error
	released atomic.Int32
}

func (f *fakeFetcher) Fetch(ctx context.Context, ref core.AttachmentRef) (core.LocalHandle, error) {
	if f.err != nil {
		return core.LocalHandle{}, f.err
	}
	return core.LocalHandle{Path: "/tmp/" + ref.FileID + ".jpg"}, nil
}

func (f *fakeFetcher) Release(h core.LocalHandle) error {
	f.released.Add(1)
	return nil
}

type fakeSummarizer struct {
	fn func(ctx context.Context, path string) (string, error)
}

func (s *fakeSummarizer) Summarize(ctx context.Context, path string) (string, error) {
	return s.fn(ctx, path)
}

func summarizer(text string, err error) *fakeSummarizer {
	return &fakeSummarizer{fn: func(context.Context, string) (string, error) { return text, err }}
}

func TestIngestor_Ingest(t *testing.T) {
	ref := core.AttachmentRef{FileID: "photo-1"}

	tests := []struct {
		name         string
		fetchErr     error
		summarizer   *fakeSummarizer
		want         string
		wantReleased int32
	}{
		{
			name:         "success",
			summarizer:   summarizer("  Layla  ", nil),
			want:         "Layla",
			wantReleased: 1,
		},
		{
			name:         "summarize failure releases once",
			summarizer:   summarizer("", core.NewBackendError("summarize", core.ReasonTransportFailure, errors.New("503"))),
			want:         FallbackSummary,
			wantReleased: 1,
		},
		{
			name:         "empty summary",
			summarizer:   summarizer("   ", nil),
			want:         FallbackSummary,
			wantReleased: 1,
		},
		{
			name: "summarizer panic releases once",
			summarizer: &fakeSummarizer{fn: func(context.Context, string) (string, error) {
				panic("vision model exploded")
			}},
			want:         FallbackSummary,
			wantReleased: 1,
		},
		{
			name:         "fetch failure releases nothing",
			fetchErr:     errors.New("file expired"),
			summarizer:   summarizer("Layla", nil),
			want:         FallbackSummary,
			wantReleased: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &fakeFetcher{err: tt.fetchErr}
			ing := NewIngestor(fetcher, tt.summarizer, time.Second)

			got := ing.Ingest(context.Background(), ref)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantReleased, fetcher.released.Load())
		})
	}
}

func TestIngestor_TimeoutReleases(t *testing.T) {
	fetcher := &fakeFetcher{}
	slow := &fakeSummarizer{fn: func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}}
	ing := NewIngestor(fetcher, slow, 10*time.Millisecond)

	got := ing.Ingest(context.Background(), core.AttachmentRef{FileID: "slow"})

	assert.Equal(t, FallbackSummary, got)
	assert.Equal(t, int32(1), fetcher.released.Load())
}

func TestIngestor_CancelledContextReleases(t *testing.T) {
	fetcher := &fakeFetcher{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ing := NewIngestor(fetcher, &fakeSummarizer{fn: func(ctx context.Context, _ string) (string, error) {
		return "", ctx.Err()
	}}, time.Second)

	assert.Equal(t, FallbackSummary, ing.Ingest(ctx, core.AttachmentRef{FileID: "x"}))
	assert.Equal(t, int32(1), fetcher.released.Load())
}

func TestIngestor_NotConfigured(t *testing.T) {
	ing := NewIngestor(nil, nil, 0)
	assert.Equal(t, FallbackSummary, ing.Ingest(context.Background(), core.AttachmentRef{}))
}
