package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/sandevgo/heroguide/internal/core"
	"github.com/sandevgo/heroguide/pkg/retry"
	"github.com/sashabaranov/go-openai"
)

const (
	defaultOpenRouterURL = "https://openrouter.ai/api/v1"

	visionPrompt = "This picture was sent to a Mobile Legends assistant. " +
		"If it shows a Mobile Legends hero, answer with only the hero's name. " +
		"Otherwise describe the picture in one short sentence."
)

// OpenAI serves both the OpenAI API and OpenAI-compatible gateways such as OpenRouter.
type OpenAI struct {
	client      *openai.Client
	retrier     *retry.Retrier
	model       string
	visionModel string
}

type headerTransport struct {
	rt      http.RoundTripper
	headers http.Header
}

func (t headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cl := req.Clone(req.Context())
	for k, vs := range t.headers {
		for _, v := range vs {
			cl.Header.Add(k, v)
		}
	}
	return t.rt.RoundTrip(cl)
}

func NewOpenAI(apiKey, baseURL, model, visionModel string) *OpenAI {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return newOpenAIWithConfig(config, model, visionModel)
}

// NewOpenRouter attributes requests to this bot the way OpenRouter expects.
func NewOpenRouter(apiKey, baseURL, model, visionModel string) *OpenAI {
	if baseURL == "" {
		baseURL = defaultOpenRouterURL
	}
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL

	h := http.Header{}
	h.Set("HTTP-Referer", core.HeroRepositoryURL)
	h.Set("X-Title", core.HeroName)
	config.HTTPClient = &http.Client{Transport: headerTransport{rt: http.DefaultTransport, headers: h}}

	return newOpenAIWithConfig(config, model, visionModel)
}

func newOpenAIWithConfig(config openai.ClientConfig, model, visionModel string) *OpenAI {
	return &OpenAI{
		client:      openai.NewClientWithConfig(config),
		retrier:     newBackendRetrier(),
		model:       model,
		visionModel: visionModel,
	}
}

func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	return o.chat(ctx, "complete", req)
}

// Summarize sends a local image to the vision model and returns its description.
func (o *OpenAI) Summarize(ctx context.Context, path string) (string, error) {
	if o.visionModel == "" {
		return "", core.NewBackendError("summarize", core.ReasonTransportFailure, errors.New("no vision model configured"))
	}

	dataURL, err := imageDataURL(path)
	if err != nil {
		return "", core.NewBackendError("summarize", core.ReasonTransportFailure, err)
	}

	req := openai.ChatCompletionRequest{
		Model: o.visionModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: visionPrompt},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL,
							Detail: openai.ImageURLDetailLow,
						},
					},
				},
			},
		},
	}
	return o.chat(ctx, "summarize", req)
}

func (o *OpenAI) chat(ctx context.Context, op string, req openai.ChatCompletionRequest) (string, error) {
	var resp openai.ChatCompletionResponse
	err := o.retrier.Do(ctx, func() error {
		r, err := o.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return classifyOpenAIError(op, err)
		}
		resp = r
		return nil
	})
	if err != nil {
		return "", core.ClassifyBackendError(op, err)
	}

	if len(resp.Choices) == 0 {
		return "", core.NewBackendError(op, core.ReasonMalformedResponse, errors.New("empty choices"))
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", core.NewBackendError(op, core.ReasonMalformedResponse, errors.New("empty content"))
	}
	return content, nil
}

func classifyOpenAIError(op string, err error) *core.BackendError {
	if errors.Is(err, context.DeadlineExceeded) {
		return core.NewBackendError(op, core.ReasonTimeout, err)
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return core.NewBackendError(op, core.ReasonTransportFailure,
			fmt.Errorf("http %d: %s", apiErr.HTTPStatusCode, apiErr.Message))
	}
	return core.NewBackendError(op, core.ReasonTransportFailure, err)
}

func imageDataURL(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		mime = "image/jpeg"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
