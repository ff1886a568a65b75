package app

import (
	"time"

	"live-caption/internal/config"
	"live-caption/internal/observability/logging"

	"github.com/rs/zerolog"
)

// Application holds process-wide state for the caption client.
type Application struct {
	StartupTime time.Time
	Logger      zerolog.Logger
	Cfg         *config.Config
}

// New constructs a new Application from the provided configuration.
func New(cfg *config.Config) *Application {
	a := &Application{
		Cfg: cfg,
	}
	a.setupLogger()

	a.Logger.Debug().
		Str("sttProvider", cfg.STT.Provider).
		Str("renderMode", cfg.Render.Mode).
		Msg("Live caption application created")
	return a
}

// setupLogger configures zerolog. Output goes to stderr so the transcript
// viewport on stdout stays clean.
func (a *Application) setupLogger() {
	format := a.Cfg.Observability.LogFormat
	if a.Cfg.Service.Env == "dev" {
		format = "console"
	}
	logging.Init(logging.Config{
		Level:      a.Cfg.Observability.LogLevel,
		Format:     format,
		TimeFormat: time.RFC3339,
	})
	a.Logger = logging.Logger().With().
		Str("service", "live-caption").
		Logger()

	a.Logger.Debug().
		Str("logLevel", a.Cfg.Observability.LogLevel).
		Str("environment", a.Cfg.Service.Env).
		Msg("Logger setup completed")
}

// Start performs any startup work required before capturing audio.
func (a *Application) Start() error {
	a.StartupTime = time.Now().UTC()
	a.Logger.Info().
		Time("startupTime", a.StartupTime).
		Msg("Live caption client starting")

	return nil
}

// Shutdown performs a best-effort cleanup before process exit.
func (a *Application) Shutdown() {
	a.Logger.Info().Msg("Live caption client shutting down")
}
