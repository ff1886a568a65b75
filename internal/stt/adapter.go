// Package stt defines the interface for streaming speech-to-text providers.
package stt

import "context"

// Result is one incremental recognition update.
type Result struct {
	Text       string
	IsFinal    bool
	Confidence float64
}

// Callback receives transcript results from the STT provider. Callbacks are
// invoked one at a time, in delivery order.
type Callback interface {
	// OnPartial is called when an interim/partial transcript is received.
	OnPartial(text string)

	// OnFinal is called when a final transcript is received.
	OnFinal(text string, confidence float64)

	// OnError is called when an error occurs during transcription.
	OnError(err error)
}

// Adapter defines the interface for STT providers.
type Adapter interface {
	// Start begins a streaming transcription session.
	Start(ctx context.Context, cb Callback) error

	// SendAudio sends raw audio bytes to the STT provider.
	SendAudio(ctx context.Context, audio []byte) error

	// Listen consumes recognition results until the session ends, invoking
	// the callback registered by Start. It returns nil on a clean stream
	// end or cancellation. Call it from its own goroutine.
	Listen() error

	// Close half-closes the outbound audio stream. The provider then
	// flushes any pending results before Listen returns.
	Close() error
}
