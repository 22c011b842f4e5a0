package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"venicelocal/internal/config"
	"venicelocal/internal/db"
	"venicelocal/internal/store"
)

func main() {
	_ = godotenv.Load()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg := config.Load()

	gormDB, err := db.NewSQLite(cfg.SQLitePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}

	st, err := store.New(gormDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("store init")
	}

	ctx := context.Background()
	seeded, err := st.SeedIfNeeded(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("seed")
	}
	if !seeded {
		logger.Info().Msg("catalog already seeded, nothing to do")
		return
	}

	businesses, err := st.LoadBusinesses(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("load businesses")
	}
	logger.Info().Int("businesses", len(businesses)).Msg("seed completed")
}
