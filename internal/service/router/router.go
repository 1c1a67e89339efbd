package router

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/heroguide/internal/core"
	"github.com/sandevgo/heroguide/internal/service/knowledge"
	"github.com/sandevgo/heroguide/internal/service/metrics"
	"github.com/sandevgo/heroguide/pkg/log"
)

const DefaultBackendTimeout = 20 * time.Second

// FailureNotice prefixes the reply sent when the generative backend fails.
const FailureNotice = "Sorry, something went wrong while thinking: "

const promptTemplate = "You are a helpful assistant for the game Mobile Legends. The player wrote: %s\n" +
	"Previous context:\n%s\n" +
	"Answer briefly and precisely:"

type Source string

const (
	SourceKnowledge  Source = "knowledge"
	SourceGenerative Source = "generative"
	SourceFailure    Source = "failure"
)

// Reply is the single answer produced for an accepted event.
type Reply struct {
	Text   string
	Source Source
}

type Gate interface {
	Allow(ev core.Event) bool
}

type MediaIngestor interface {
	Ingest(ctx context.Context, ref core.AttachmentRef) string
}

type Router struct {
	gate    Gate
	memory  core.SessionMemory
	kb      core.KnowledgeBase
	media   MediaIngestor
	llm     core.GenerativeClient
	timeout time.Duration
}

func New(
	gate Gate,
	memory core.SessionMemory,
	kb core.KnowledgeBase,
	media MediaIngestor,
	llm core.GenerativeClient,
	timeout time.Duration,
) *Router {
	if timeout <= 0 {
		timeout = DefaultBackendTimeout
	}
	return &Router{
		gate:    gate,
		memory:  memory,
		kb:      kb,
		media:   media,
		llm:     llm,
		timeout: timeout,
	}
}

// Handle processes one inbound event. It returns false only when the event is
// gated, in which case nothing was remembered. Otherwise exactly one reply is
// returned and memory holds the event's text.
func (r *Router) Handle(ctx context.Context, ev core.Event) (Reply, bool) {
	logger := log.FromCtx(ctx).With().
		Str("sender", ev.Sender).
		Str("chat", string(ev.Chat)).
		Str("kind", string(ev.Kind)).
		Logger()

	if !r.gate.Allow(ev) {
		metrics.ObserveRoute(metrics.OutcomeGated)
		logger.Debug().Msg("event gated")
		return Reply{}, false
	}

	text := ev.Text
	if ev.Kind == core.EventPhoto {
		text = r.media.Ingest(ctx, ev.Attachment)
	}

	r.memory.Append(ctx, ev.Sender, text)

	if hero, ok := r.kb.Lookup(text); ok {
		metrics.ObserveRoute(metrics.OutcomeKnowledge)
		logger.Debug().Str("hero", hero.Name).Msg("answered from knowledge base")
		return Reply{Text: knowledge.Format(hero), Source: SourceKnowledge}, true
	}

	prompt := BuildPrompt(text, r.memory.ContextFor(ctx, ev.Sender))

	answer, err := r.complete(ctx, prompt)
	if err != nil {
		be := core.ClassifyBackendError("complete", err)
		metrics.ObserveRoute(metrics.OutcomeFailure)
		metrics.ObserveBackendError(be.Op, string(be.Reason))
		logger.Warn().Err(be).Str("reason", string(be.Reason)).Msg("generative backend failed")
		return Reply{Text: FailureNotice + be.Error(), Source: SourceFailure}, true
	}

	metrics.ObserveRoute(metrics.OutcomeGenerative)
	logger.Debug().Int("prompt_len", len(prompt)).Msg("answered by generative backend")
	return Reply{Text: answer, Source: SourceGenerative}, true
}

func (r *Router) complete(ctx context.Context, prompt string) (answer string, err error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	defer func() {
		if rec := recover(); rec != nil {
			err = core.NewBackendError("complete", core.ReasonTransportFailure, fmt.Errorf("backend panicked: %v", rec))
		}
	}()

	start := time.Now()
	answer, err = r.llm.Complete(ctx, prompt)
	metrics.ObserveBackendDuration("complete", time.Since(start))
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			if _, ok := core.AsBackendError(err); !ok {
				err = core.NewBackendError("complete", core.ReasonTimeout, err)
			}
		}
		return "", err
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", core.NewBackendError("complete", core.ReasonMalformedResponse, errors.New("empty completion"))
	}
	return answer, nil
}

// BuildPrompt renders the generative prompt from the raw text and the
// remembered session texts, oldest first.
func BuildPrompt(text string, history []string) string {
	return fmt.Sprintf(promptTemplate, text, strings.Join(history, "\n"))
}
