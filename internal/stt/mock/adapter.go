// Package mock provides a scripted STT adapter so the client can run and be
// tested without cloud credentials. It plays back progressive partial
// transcripts followed by exactly one final per utterance.
package mock

import (
	"context"
	"sync"

	"live-caption/internal/stt"
)

// Utterance is one scripted recognition sequence.
type Utterance struct {
	Partials   []string
	Final      string
	Confidence float64
}

// DefaultUtterances is the playback script used when none is supplied.
var DefaultUtterances = []Utterance{
	{
		Partials:   []string{"testing", "testing one"},
		Final:      "testing one",
		Confidence: 0.95,
	},
	{
		Partials:   []string{"two", "two three"},
		Final:      "testing one two three",
		Confidence: 0.93,
	},
}

// Adapter implements stt.Adapter with scripted responses. Each audio chunk
// advances the script by one event: the next partial, or the utterance's
// final once partials are exhausted.
type Adapter struct {
	mu        sync.Mutex
	cb        stt.Callback
	script    []Utterance
	utterance int
	partial   int
	results   chan stt.Result
	closed    bool
}

// New creates a mock adapter playing back script (DefaultUtterances when
// empty).
func New(script []Utterance) *Adapter {
	if len(script) == 0 {
		script = DefaultUtterances
	}
	return &Adapter{
		script:  script,
		results: make(chan stt.Result, 64),
	}
}

// Start registers the callback.
func (a *Adapter) Start(ctx context.Context, cb stt.Callback) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cb = cb
	return nil
}

// SendAudio advances the script and queues the next result for Listen.
func (a *Adapter) SendAudio(ctx context.Context, audio []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed || a.utterance >= len(a.script) {
		return nil
	}

	utt := a.script[a.utterance]
	var res stt.Result
	if a.partial < len(utt.Partials) {
		res = stt.Result{Text: utt.Partials[a.partial]}
		a.partial++
	} else {
		res = stt.Result{Text: utt.Final, IsFinal: true, Confidence: utt.Confidence}
		a.utterance++
		a.partial = 0
	}

	select {
	case a.results <- res:
	default: // queue full, drop like a lossy provider would
	}
	return nil
}

// Listen delivers queued results through the callback until Close. Always
// returns nil: the mock session ends cleanly.
func (a *Adapter) Listen() error {
	for res := range a.results {
		a.mu.Lock()
		cb := a.cb
		a.mu.Unlock()
		if cb == nil {
			continue
		}
		if res.IsFinal {
			cb.OnFinal(res.Text, res.Confidence)
		} else {
			cb.OnPartial(res.Text)
		}
	}
	return nil
}

// Close ends the session; results already queued are still delivered before
// Listen returns.
func (a *Adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil
	}
	a.closed = true
	close(a.results)
	return nil
}
