// Package session runs one live caption session: audio in, recognition
// results out, transcript assembled along the way.
package session

import (
	"context"

	"github.com/rs/zerolog"

	"live-caption/internal/render"
	"live-caption/internal/stt"
	"live-caption/internal/transcript"
)

// ChunkSource supplies captured audio. Chunks must be closed by Stop once the
// capture loop has exited; the closed channel is the end-of-audio signal.
type ChunkSource interface {
	Start() error
	Chunks() <-chan []byte
	Stop()
}

// Session owns the lifetime of one caption run.
type Session struct {
	log      zerolog.Logger
	source   ChunkSource
	adapter  stt.Adapter
	callback stt.Callback
	store    *transcript.Store
	renderer *render.Renderer
}

// New creates a session. callback receives the recognition results; it is
// normally the result router.
func New(log zerolog.Logger, source ChunkSource, adapter stt.Adapter, callback stt.Callback, store *transcript.Store, renderer *render.Renderer) *Session {
	return &Session{
		log:      log.With().Str("component", "session").Logger(),
		source:   source,
		adapter:  adapter,
		callback: callback,
		store:    store,
		renderer: renderer,
	}
}

// Run captures and streams audio until ctx is canceled or the audio source
// ends, then drains the recognizer and returns the final cleaned transcript.
// The returned transcript is valid even when err is non-nil.
func (s *Session) Run(ctx context.Context) (string, error) {
	if err := s.adapter.Start(ctx, s.callback); err != nil {
		return "", err
	}
	if err := s.source.Start(); err != nil {
		s.adapter.Close()
		return "", err
	}

	// Forward audio until the source closes its channel, then half-close the
	// recognizer so it flushes pending results.
	sendDone := make(chan struct{})
	go func() {
		defer close(sendDone)
		defer func() {
			if err := s.adapter.Close(); err != nil {
				s.log.Warn().Err(err).Msg("Failed to close recognition stream")
			}
		}()
		for chunk := range s.source.Chunks() {
			if err := s.adapter.SendAudio(ctx, chunk); err != nil {
				s.log.Warn().Err(err).Msg("Failed to send audio chunk")
				return
			}
		}
	}()

	listenDone := make(chan error, 1)
	go func() {
		listenDone <- s.adapter.Listen()
	}()

	var listenErr error
	select {
	case <-ctx.Done():
		s.log.Info().Msg("Shutdown requested")
		s.source.Stop()
		<-sendDone
		listenErr = <-listenDone
	case listenErr = <-listenDone:
		// Recognizer ended first, stop feeding it.
		s.source.Stop()
		<-sendDone
	}

	s.renderer.Flush()
	return s.store.Snapshot(), listenErr
}
