package telegram

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/sandevgo/heroguide/pkg/conv"
	"github.com/sandevgo/heroguide/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const maxTelegramMsgLen = 4000 // Safety margin below 4096

// maxEntityLen covers the longest entity the HTML renderer emits ("&#x1F3AE;").
const maxEntityLen = 10

type sender struct {
	bot *tele.Bot
}

func newSender(bot *tele.Bot) *sender {
	return &sender{bot: bot}
}

// sendMarkdown converts Markdown to Telegram HTML and sends it in chunks if needed.
func (s *sender) sendMarkdown(ctx context.Context, to tele.Recipient, replyTo *tele.Message, md string) error {
	return s.sendHTML(ctx, to, replyTo, strings.TrimSpace(conv.MarkdownToTelegramHTML([]byte(md))))
}

// sendPlain sends text verbatim.
func (s *sender) sendPlain(ctx context.Context, to tele.Recipient, replyTo *tele.Message, text string) error {
	return s.sendHTML(ctx, to, replyTo, conv.PlainToTelegramHTML(strings.TrimSpace(text)))
}

func (s *sender) sendHTML(ctx context.Context, to tele.Recipient, replyTo *tele.Message, html string) error {
	logger := log.FromCtx(ctx)
	if html == "" {
		return nil
	}

	for i, chunk := range splitHTML(html, maxTelegramMsgLen) {
		opts := &tele.SendOptions{ParseMode: tele.ModeHTML}
		// Only the first chunk quotes the question, in groups.
		if i == 0 && replyTo != nil && !replyTo.Private() {
			opts.ReplyTo = replyTo
		}

		if _, err := s.bot.Send(to, chunk, opts); err != nil {
			logger.Error().Err(err).Int("chunk", i).Int("len", len(chunk)).Msg("failed to send telegram chunk")
			return err
		}
	}
	return nil
}

// splitHTML splits text into chunks respecting Telegram's limit.
// It prefers newlines and never cuts inside a rune, a tag or an entity.
func splitHTML(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}

	var chunks []string
	for len(text) > 0 {
		if len(text) <= maxLen {
			chunks = append(chunks, text)
			break
		}

		cut := safeCut(text, maxLen)
		if idx := strings.LastIndex(text[:maxLen], "\n"); idx > maxLen/3 {
			cut = idx
		}

		chunks = append(chunks, text[:cut])
		text = strings.TrimSpace(text[cut:])
	}
	return chunks
}

// safeCut returns the largest offset <= maxLen that starts a rune and lies
// outside any tag or entity. len(text) must exceed maxLen.
func safeCut(text string, maxLen int) int {
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	runeCut := cut

	head := text[:cut]
	if lt := strings.LastIndexByte(head, '<'); lt > strings.LastIndexByte(head, '>') {
		cut = lt
	}
	head = text[:cut]
	if amp := strings.LastIndexByte(head, '&'); amp > strings.LastIndexByte(head, ';') && cut-amp <= maxEntityLen {
		cut = amp
	}

	if cut == 0 {
		// A single tag longer than the limit; fall back to the rune boundary.
		cut = runeCut
	}
	if cut == 0 {
		_, size := utf8.DecodeRuneInString(text)
		cut = size
	}
	return cut
}
