// Package embedding turns text into dense vectors through a remote model server.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrEmptyResponse = errors.New("embedding: empty response")

// Embedder returns one vector per input text, in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

func New(backend, baseURL, apiKey, model string, timeout time.Duration) (Embedder, error) {
	switch backend {
	case "ollama", "":
		if baseURL == "" {
			return nil, errors.New("embed_base_url is required when embed_backend is \"ollama\"")
		}
		return NewOllama(baseURL, model, timeout)
	case "openai":
		if apiKey == "" {
			return nil, errors.New("embed_key is required when embed_backend is \"openai\"")
		}
		return NewOpenAI(baseURL, apiKey, model, timeout), nil
	default:
		return nil, fmt.Errorf("unknown embed_backend %q", backend)
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func checkCount(model string, want, got int) error {
	if got == 0 {
		return fmt.Errorf("%w from model %q", ErrEmptyResponse, model)
	}
	if got != want {
		return fmt.Errorf("embedding: model %q returned %d vectors for %d inputs", model, got, want)
	}
	return nil
}
