package main

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/avikko/grocer-admin/internal/cli"
	"github.com/avikko/grocer-admin/internal/config"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if os.Getenv("GROCER_DEBUG") == "" {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	// Try to load existing .env file
	config.LoadEnvFile()

	if missing := config.CheckRequired(); len(missing) > 0 {
		log.Fatal().Msgf("missing required config: %s", strings.Join(missing, ", "))
	}

	if err := cli.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
