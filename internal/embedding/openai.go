package embedding

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAI struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAI creates an embedder backed by any OpenAI-compatible API.
// Leave baseURL empty for api.openai.com.
func NewOpenAI(baseURL, apiKey, model string, timeout time.Duration) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAI{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: timeout,
	}
}

func (o *OpenAI) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	ctx, cancel := withTimeout(ctx, o.timeout)
	defer cancel()

	resp, err := o.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(o.model),
	})
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}

	if err := checkCount(o.model, len(texts), len(resp.Data)); err != nil {
		return nil, err
	}

	// Data is not guaranteed to come back in input order.
	out := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(out) {
			return nil, fmt.Errorf("embedding: index %d out of range", d.Index)
		}
		out[d.Index] = d.Embedding
	}

	return out, nil
}
