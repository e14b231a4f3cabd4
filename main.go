// main.go
//
// Process bootstrap for the Wordle chat bot.
// Order matters: word lists load first (fatal on failure), then the
// persistence worker starts, then the message channel serves. On shutdown
// the HTTP server drains, the worker is cancelled, and the process waits for
// the worker's final flush before exiting.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordlebot/internal/dialogue"
	"github.com/robalobadob/wordlebot/internal/httpserver"
	"github.com/robalobadob/wordlebot/internal/persist"
	"github.com/robalobadob/wordlebot/internal/store"
	"github.com/robalobadob/wordlebot/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	wordsDir := getEnv("WORDS_DIR", "assets")
	wordStore, err := words.Load(wordsDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", wordsDir).Msg("failed to load word lists")
	}
	p, d := wordStore.Stats()
	log.Info().Int("playable", p).Int("dictionary", d).Msg("word lists loaded")

	interval := persist.DefaultInterval
	if v := getEnv("FLUSH_INTERVAL", ""); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			interval = parsed
		} else {
			log.Warn().Str("value", v).Msg("bad FLUSH_INTERVAL, using default")
		}
	}
	worker := persist.NewWorker(wordStore, wordsDir, interval, log.With().Str("component", "persist").Logger())

	workerCtx, stopWorker := context.WithCancel(context.Background())
	go worker.Run(workerCtx)

	engine := dialogue.NewEngine(wordStore, log.With().Str("component", "dialogue").Logger())
	sessions := store.NewMemoryStore()
	srv := httpserver.New(sessions, engine, wordStore)

	port := getEnv("PORT", "5175")
	httpSrv := &http.Server{Addr: ":" + port, Handler: srv.Router()}

	go func() {
		log.Info().Str("port", port).Msg("starting wordlebot")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server exited")
		}
	}()

	// Block until SIGINT/SIGTERM, then drain in order: channel, worker.
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http shutdown")
	}

	stopWorker()
	<-worker.Done()
	log.Info().Msg("bye")
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
