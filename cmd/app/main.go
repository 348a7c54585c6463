package main

import (
	"context"
	"os"
	"time"

	"pmsconsole/config"
	"pmsconsole/di"
	"pmsconsole/shared/logger"
	"pmsconsole/shared/timezone"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.UseOutput(cfg, os.Stdout)
	logger.SetLogLevel(cfg)

	if err := timezone.Setup(cfg.App.Timezone); err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.App.Timezone).Msg("Failed to load timezone")
	}

	http := di.InitializeService()
	http.Serve()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := http.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to flush traces")
	}
}
