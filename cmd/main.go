// Copyright (c) 2024, 0x0BSoD. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/0x0BSoD/newsBoard/internal/api"
	"github.com/0x0BSoD/newsBoard/internal/bookmarks"
	"github.com/0x0BSoD/newsBoard/internal/config"
	"github.com/0x0BSoD/newsBoard/internal/embedding"
	"github.com/0x0BSoD/newsBoard/internal/fetcher"
	"github.com/0x0BSoD/newsBoard/internal/keyphrase"
	"github.com/0x0BSoD/newsBoard/internal/logging"
	"github.com/0x0BSoD/newsBoard/internal/reporter"
	"github.com/0x0BSoD/newsBoard/internal/source"
	"github.com/0x0BSoD/newsBoard/internal/storage"
	"github.com/0x0BSoD/newsBoard/internal/tagger"
)

func main() {
	cfg := config.Get()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := storage.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		logging.Error().Err(err).Msg("failed to open storage")
		return
	}
	defer store.Close()

	loader := keyphrase.NewLoader(func() (embedding.Embedder, error) {
		return embedding.New(cfg.EmbedBackend, cfg.EmbedBaseURL, cfg.EmbedKey, cfg.EmbedModel, cfg.EmbedTimeout)
	}, cfg.KeyphraseTopN)

	// The keyphrase model is required; refuse to start without it.
	model, err := loader.Load(ctx)
	if err != nil {
		logging.Error().Err(err).Str("backend", cfg.EmbedBackend).Str("model", cfg.EmbedModel).Msg("failed to load keyphrase model")
		return
	}
	logging.Info().Str("backend", cfg.EmbedBackend).Str("model", cfg.EmbedModel).Msg("keyphrase model loaded")

	vocabulary := tagger.NewVocabularyStrategy(tagger.DefaultVocabulary)
	logging.Info().Int("phrases", vocabulary.Size()).Msg("topic vocabulary loaded")

	extractor := tagger.New(
		tagger.NewKeyphraseStrategy(model, cfg.KeyphraseMinScore),
		vocabulary,
		tagger.NewTopWordsStrategy(tagger.DefaultTopWords),
	)
	svc := bookmarks.New(store, extractor)

	var errReporter *reporter.Reporter
	if cfg.TelegramBotToken != "" {
		errReporter, err = reporter.NewTelegram(cfg.TelegramBotToken, cfg.TelegramAdminChatID)
		if err != nil {
			logging.Warn().Err(err).Msg("telegram reporter disabled")
		}
	}

	if cfg.FetchEnabled {
		f := fetcher.New(svc, store, errReporter, cfg.FetchInterval)

		go func(ctx context.Context) {
			if err := f.Start(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logging.Error().Err(err).Msg("failed to run fetcher")
					errReporter.Notify("fetcher stopped: " + err.Error())
					return
				}

				logging.Info().Msg("fetcher stopped")
			}
		}(ctx)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(api.NewHandler(svc, store, source.Probe), svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Error().Err(err).Msg("failed to shut down http server")
		}
	}()

	logging.Info().Str("addr", cfg.HTTPAddr).Msg("http server started")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Error().Err(err).Msg("failed to run http server")
		return
	}
	logging.Info().Msg("http server stopped")
}
