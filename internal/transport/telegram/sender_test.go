package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitHTML(t *testing.T) {
	t.Run("short text is one chunk", func(t *testing.T) {
		assert.Equal(t, []string{"Layla"}, splitHTML("Layla", 10))
	})

	t.Run("prefers newline breaks", func(t *testing.T) {
		text := "Role: Mage\nCounters: Eudora"
		chunks := splitHTML(text, 15)
		assert.Equal(t, []string{"Role: Mage", "Counters: Eudor", "a"}, chunks)
	})

	t.Run("hard cut without newline", func(t *testing.T) {
		text := strings.Repeat("x", 25)
		chunks := splitHTML(text, 10)
		assert.Equal(t, []string{strings.Repeat("x", 10), strings.Repeat("x", 10), strings.Repeat("x", 5)}, chunks)
	})

	t.Run("multi-byte text stays valid utf-8", func(t *testing.T) {
		text := "x" + strings.Repeat("ب", 3000)
		chunks := splitHTML(text, maxTelegramMsgLen)
		require.Len(t, chunks, 2)
		for _, chunk := range chunks {
			assert.True(t, utf8.ValidString(chunk))
			assert.LessOrEqual(t, len(chunk), maxTelegramMsgLen)
		}
		assert.Equal(t, text, strings.Join(chunks, ""))
	})

	t.Run("does not cut inside a tag", func(t *testing.T) {
		chunks := splitHTML("aaaaaaaaa<b>bold</b>", 11)
		assert.Equal(t, []string{"aaaaaaaaa", "<b>bold</b>"}, chunks)
	})

	t.Run("does not cut inside an entity", func(t *testing.T) {
		chunks := splitHTML("aaaaaaaa&amp;b", 10)
		assert.Equal(t, []string{"aaaaaaaa", "&amp;b"}, chunks)
	})

	t.Run("chunks respect limit", func(t *testing.T) {
		text := strings.Repeat("tips line\n", 1000)
		for _, chunk := range splitHTML(text, maxTelegramMsgLen) {
			assert.LessOrEqual(t, len(chunk), maxTelegramMsgLen)
		}
	})
}
