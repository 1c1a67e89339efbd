package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sandevgo/heroguide/internal/core"
	"github.com/tidwall/gjson"
)

const defaultHuggingFaceURL = "https://api-inference.huggingface.co"

// HuggingFace talks to the hosted inference API for text generation models.
type HuggingFace struct {
	baseProvider
}

func NewHuggingFace(baseURL, apiKey, model string) *HuggingFace {
	if baseURL == "" {
		baseURL = defaultHuggingFaceURL
	}
	return &HuggingFace{
		baseProvider: newBaseProvider(strings.TrimRight(baseURL, "/"), apiKey, model),
	}
}

func (h *HuggingFace) Complete(ctx context.Context, prompt string) (string, error) {
	var out string
	err := h.retrier.Do(ctx, func() error {
		text, err := h.complete(ctx, prompt)
		if err != nil {
			return err
		}
		out = text
		return nil
	})
	if err != nil {
		return "", core.ClassifyBackendError("complete", err)
	}
	return out, nil
}

func (h *HuggingFace) complete(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{"inputs": prompt}

	headers := map[string]string{}
	if h.apiKey != "" {
		headers["Authorization"] = "Bearer " + h.apiKey
	}

	resp, err := h.doRequest(ctx, http.MethodPost, "/models/"+h.model, payload, headers)
	if err != nil {
		return "", core.ClassifyBackendError("complete", err)
	}

	data, err := readResponse("complete", resp)
	if err != nil {
		return "", err
	}

	return parseGeneratedText(data)
}

// parseGeneratedText expects the text-generation shape [{"generated_text": "..."}].
func parseGeneratedText(data []byte) (string, error) {
	if !gjson.ValidBytes(data) {
		return "", core.NewBackendError("complete", core.ReasonMalformedResponse,
			fmt.Errorf("invalid json: %s", truncate(string(data), 128)))
	}

	res := gjson.GetBytes(data, "0.generated_text")
	if !res.Exists() || res.Type != gjson.String {
		if msg := gjson.GetBytes(data, "error"); msg.Exists() {
			return "", core.NewBackendError("complete", core.ReasonMalformedResponse, errors.New(msg.String()))
		}
		return "", core.NewBackendError("complete", core.ReasonMalformedResponse,
			fmt.Errorf("missing generated_text: %s", truncate(string(data), 128)))
	}
	return res.String(), nil
}
