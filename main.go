package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/krelmy/wordle-solver/internal/history"
	"github.com/krelmy/wordle-solver/internal/httpserver"
	"github.com/krelmy/wordle-solver/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	// History is optional: leave HISTORY_DB unset to run stateless.
	var hist *history.Store
	if dsn := os.Getenv("HISTORY_DB"); dsn != "" {
		var err error
		hist, err = history.Open(dsn)
		if err != nil {
			log.Fatal().Err(err).Str("dsn", dsn).Msg("failed to open history db")
		}
		defer hist.Close()
	}

	mem := store.NewMemoryStore()
	srv := httpserver.New(mem, hist)
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Bool("history", hist != nil).Msg("starting solver server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
