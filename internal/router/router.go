// Package router reconciles recognition results into the transcript store
// and the terminal viewport.
package router

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"live-caption/internal/events"
	"live-caption/internal/models"
	"live-caption/internal/observability/metrics"
	"live-caption/internal/render"
	"live-caption/internal/textnorm"
	"live-caption/internal/transcript"
)

// Router routes recognition results: finals are committed to the store and
// clear the interim text, partials replace the interim text wholesale. Every
// result triggers a viewport render and, when configured, a mirrored Kafka
// event. It implements stt.Callback.
type Router struct {
	log       zerolog.Logger
	norm      textnorm.Normalizer
	store     *transcript.Store
	renderer  *render.Renderer
	widthFn   func() int
	publisher *events.Publisher
	metrics   *metrics.Metrics
	sessionID string

	interim string
}

// New creates a router. widthFn is sampled on every render so terminal
// resizes take effect on the next update. publisher may be nil.
func New(log zerolog.Logger, norm textnorm.Normalizer, store *transcript.Store, renderer *render.Renderer, widthFn func() int, publisher *events.Publisher, sessionID string) *Router {
	return &Router{
		log:       log.With().Str("component", "router").Logger(),
		norm:      norm,
		store:     store,
		renderer:  renderer,
		widthFn:   widthFn,
		publisher: publisher,
		metrics:   metrics.DefaultMetrics,
		sessionID: sessionID,
	}
}

// OnPartial replaces the interim text with the latest hypothesis and
// re-renders. Partials are never accumulated: each one supersedes the last.
func (r *Router) OnPartial(text string) {
	r.metrics.RecordPartialResult()

	cleaned := r.norm.Clean(text)
	r.interim = cleaned
	r.render()

	if r.publisher != nil && cleaned != "" {
		event := models.CaptionPartial{
			EventType: "caption.partial",
			SessionID: r.sessionID,
			Timestamp: time.Now().UnixMilli(),
			Text:      cleaned,
		}
		if err := r.publisher.PublishPartial(context.Background(), r.sessionID, event); err != nil {
			r.log.Warn().Err(err).Msg("Failed to publish partial caption")
		}
	}
}

// OnFinal commits the segment to the store, clears the interim text and
// re-renders. Empty and retransmitted segments are absorbed by the store,
// which also hands back the cleaned text so it is normalized only once.
func (r *Router) OnFinal(text string, confidence float64) {
	r.metrics.RecordFinalResult()

	cleaned, committed := r.store.CommitFinal(text)
	r.interim = ""
	r.render()

	if !committed {
		if cleaned == "" {
			r.metrics.RecordEmptyResult()
		} else {
			r.log.Debug().Str("text", cleaned).Msg("Suppressed duplicate final segment")
			r.metrics.RecordDuplicateSuppressed()
		}
		return
	}

	if r.publisher != nil {
		event := models.CaptionFinal{
			EventType:    "caption.final",
			SessionID:    r.sessionID,
			Timestamp:    time.Now().UnixMilli(),
			Text:         cleaned,
			Confidence:   confidence,
			SegmentIndex: r.store.Len() - 1,
		}
		if err := r.publisher.PublishFinal(context.Background(), r.sessionID, event); err != nil {
			r.log.Warn().Err(err).Msg("Failed to publish final caption")
		}
	}
}

// OnError logs the recognition error. The session loop decides whether to
// tear down.
func (r *Router) OnError(err error) {
	r.log.Error().Err(err).Msg("Recognition stream error")
}

func (r *Router) render() {
	wrote := r.renderer.Render(r.store.Snapshot(), r.interim, r.widthFn())
	r.metrics.RecordRender(!wrote)
}
