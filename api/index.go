package handler

import (
	"net/http"
	"os"
	"sync"

	"pmsconsole/config"
	"pmsconsole/di"
	"pmsconsole/shared/logger"
	"pmsconsole/shared/timezone"
	transport "pmsconsole/transport/http"

	"github.com/rs/zerolog/log"
)

var (
	once   sync.Once
	server *transport.HTTP
)

// Handler serves the console as a single serverless function. The dependency
// graph is built on the first request and reused while the instance is warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()
		logger.UseOutput(cfg, os.Stdout)
		logger.SetLogLevel(cfg)

		if err := timezone.Setup(cfg.App.Timezone); err != nil {
			log.Error().Err(err).Msg("Failed to load timezone, using UTC")
		}

		server = di.InitializeService()
	})

	server.ServeHTTP(w, r)
}
