package embedding

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

type Ollama struct {
	client  *api.Client
	model   string
	timeout time.Duration
}

// NewOllama accepts either a bare host:port or a full URL for baseURL.
func NewOllama(baseURL, model string, timeout time.Duration) (*Ollama, error) {
	base := &url.URL{Scheme: "http", Host: baseURL, Path: "/"}
	if strings.Contains(baseURL, "://") {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("parse ollama url: %w", err)
		}
		base = u
	}

	return &Ollama{
		client:  api.NewClient(base, &http.Client{}),
		model:   model,
		timeout: timeout,
	}, nil
}

func (o *Ollama) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	ctx, cancel := withTimeout(ctx, o.timeout)
	defer cancel()

	resp, err := o.client.Embed(ctx, &api.EmbedRequest{
		Model: o.model,
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("ollama embed: %w", err)
	}

	if err := checkCount(o.model, len(texts), len(resp.Embeddings)); err != nil {
		return nil, err
	}

	return resp.Embeddings, nil
}
