package media

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/heroguide/internal/core"
	"github.com/sandevgo/heroguide/internal/service/metrics"
	"github.com/sandevgo/heroguide/pkg/log"
)

// FallbackSummary replaces the summary of any image that could not be analyzed.
const FallbackSummary = "[image] could not analyze the picture; please name the hero instead"

const DefaultTimeout = 30 * time.Second

// Ingestor turns a chat image into text that the router can remember and classify.
type Ingestor struct {
	fetcher    core.AttachmentFetcher
	summarizer core.ImageSummarizer
	timeout    time.Duration
}

func NewIngestor(fetcher core.AttachmentFetcher, summarizer core.ImageSummarizer, timeout time.Duration) *Ingestor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Ingestor{
		fetcher:    fetcher,
		summarizer: summarizer,
		timeout:    timeout,
	}
}

// Ingest never fails: every error path degrades to FallbackSummary.
// A fetched file is released exactly once, whatever happens after the fetch.
func (i *Ingestor) Ingest(ctx context.Context, ref core.AttachmentRef) (summary string) {
	logger := log.FromCtx(ctx)

	if i == nil || i.fetcher == nil || i.summarizer == nil {
		logger.Warn().Msg("media ingestion is not configured, using fallback summary")
		return FallbackSummary
	}

	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	handle, err := i.fetcher.Fetch(ctx, ref)
	if err != nil {
		i.observe("fetch", err)
		logger.Warn().Err(err).Str("file_id", ref.FileID).Msg("failed to fetch attachment")
		return FallbackSummary
	}

	defer func() {
		if relErr := i.fetcher.Release(handle); relErr != nil {
			logger.Error().Err(relErr).Str("path", handle.Path).Msg("failed to release attachment")
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Str("file_id", ref.FileID).Msg("image summarizer panicked")
			summary = FallbackSummary
		}
	}()

	start := time.Now()
	text, err := i.summarizer.Summarize(ctx, handle.Path)
	metrics.ObserveBackendDuration("summarize", time.Since(start))
	if err != nil {
		i.observe("summarize", err)
		logger.Warn().Err(err).Str("file_id", ref.FileID).Msg("failed to summarize image")
		return FallbackSummary
	}

	text = strings.TrimSpace(text)
	if text == "" {
		i.observe("summarize", core.NewBackendError("summarize", core.ReasonMalformedResponse, fmt.Errorf("empty summary")))
		return FallbackSummary
	}

	logger.Debug().Str("file_id", ref.FileID).Str("summary", text).Msg("image summarized")
	return text
}

func (i *Ingestor) observe(op string, err error) {
	be := core.ClassifyBackendError(op, err)
	metrics.ObserveBackendError(be.Op, string(be.Reason))
}
