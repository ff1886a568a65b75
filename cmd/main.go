package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"live-caption/internal/app"
	"live-caption/internal/audio"
	"live-caption/internal/config"
	"live-caption/internal/events"
	"live-caption/internal/observability"
	"live-caption/internal/observability/logging"
	"live-caption/internal/render"
	"live-caption/internal/router"
	"live-caption/internal/session"
	"live-caption/internal/stt"
	"live-caption/internal/stt/google"
	"live-caption/internal/stt/mock"
	"live-caption/internal/textnorm"
	"live-caption/internal/transcript"
)

func main() {
	cfg := config.Load()

	application := app.New(cfg)
	if err := application.Start(); err != nil {
		application.Logger.Fatal().Err(err).Msg("Failed to start application")
	}
	defer application.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	publisher := events.New(&events.Config{
		Enabled:      cfg.Kafka.Enabled,
		Brokers:      cfg.Kafka.Brokers,
		TopicPartial: cfg.Kafka.TopicPartial,
		TopicFinal:   cfg.Kafka.TopicFinal,
		Principal:    cfg.Kafka.Principal,
	})
	defer publisher.Close()

	if addr := cfg.Observability.MetricsAddr; addr != "" {
		obs := observability.NewServer(addr)
		obs.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			obs.Shutdown(shutdownCtx)
		}()
	}

	norm := textnorm.New(cfg.Text.RemoveFillers)
	store := transcript.NewStore(norm)

	// Live rendering only makes sense on a terminal; piped output gets the
	// final transcript alone.
	var viewport io.Writer = io.Discard
	widthFn := func() int { return render.DefaultWidth }
	if render.IsTerminal(os.Stdout) {
		viewport = os.Stdout
		widthFn = func() int { return render.TerminalWidth(os.Stdout) }
	}
	renderer := render.New(viewport, render.ParseMode(cfg.Render.Mode), norm)

	sessionID := fmt.Sprintf("sess-%d", time.Now().UnixNano())

	var adapter stt.Adapter
	switch cfg.STT.Provider {
	case "google":
		a, err := google.New(ctx, google.Config{
			LanguageCode:         cfg.STT.LanguageCode,
			SampleRateHz:         cfg.STT.SampleRateHz,
			InterimResults:       cfg.STT.InterimResults,
			AutomaticPunctuation: true,
		}, logging.WithStream(sessionID, cfg.STT.Provider))
		if err != nil {
			application.Logger.Fatal().Err(err).Msg("Failed to create Google STT client")
		}
		adapter = a
	case "mock":
		adapter = mock.New(nil)
	default:
		application.Logger.Fatal().Str("provider", cfg.STT.Provider).Msg("Unknown STT provider")
	}

	capture := audio.NewCapture(audio.Config{
		SampleRateHz:    cfg.STT.SampleRateHz,
		ChunksPerSecond: cfg.Audio.ChunksPerSecond,
		QueueSize:       cfg.Audio.QueueSize,
	}, application.Logger)

	rtr := router.New(logging.WithSession(sessionID), norm, store, renderer, widthFn, publisher, sessionID)
	sess := session.New(application.Logger, capture, adapter, rtr, store, renderer)

	application.Logger.Info().
		Str("sessionId", sessionID).
		Str("sttProvider", cfg.STT.Provider).
		Msg("Listening, press Ctrl+C to stop")

	final, err := sess.Run(ctx)
	if err != nil {
		application.Logger.Warn().Err(err).Msg("Recognition stream ended with error")
	}

	fmt.Println()
	fmt.Println("Final transcript:")
	if final == "" {
		fmt.Println("(No final transcript captured.)")
	} else {
		fmt.Println(final)
	}
}
