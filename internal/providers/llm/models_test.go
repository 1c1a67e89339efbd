package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sandevgo/heroguide/internal/config"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListModels_HuggingFace(t *testing.T) {
	models, err := ListModels(context.Background(), config.ProviderHuggingFace, "")
	require.NoError(t, err)
	assert.Contains(t, models, "gpt2")
}

func TestListModels_Unknown(t *testing.T) {
	_, err := ListModels(context.Background(), "anthropic", "")
	assert.ErrorContains(t, err, "unknown llm provider")
}

func TestListModels_Sorted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"gpt-4o"},{"id":"gpt-4o-mini"},{"id":"dall-e-3"}]}`))
	}))
	defer server.Close()

	cfg := openai.DefaultConfig("sk-test")
	cfg.BaseURL = server.URL + "/v1"

	models, err := listModels(context.Background(), openai.NewClientWithConfig(cfg))
	require.NoError(t, err)
	assert.Equal(t, []string{"dall-e-3", "gpt-4o", "gpt-4o-mini"}, models)
}
