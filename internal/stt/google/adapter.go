// Package google provides a Google Cloud Speech-to-Text adapter.
package google

import (
	"context"
	"errors"
	"io"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"live-caption/internal/stt"
)

// Config holds the streaming recognition parameters.
type Config struct {
	LanguageCode         string
	SampleRateHz         int
	InterimResults       bool
	AutomaticPunctuation bool
}

// DefaultConfig returns the caption-session defaults: continuous 16 kHz
// LINEAR16 English with punctuation and interim results.
func DefaultConfig() Config {
	return Config{
		LanguageCode:         "en-US",
		SampleRateHz:         16000,
		InterimResults:       true,
		AutomaticPunctuation: true,
	}
}

// Adapter implements stt.Adapter using Google Cloud Speech-to-Text.
// Requires GOOGLE_APPLICATION_CREDENTIALS to be set.
type Adapter struct {
	client *speech.Client
	stream speechpb.Speech_StreamingRecognizeClient
	cb     stt.Callback
	cfg    Config
	log    zerolog.Logger
}

// New creates a new Google STT adapter.
func New(ctx context.Context, cfg Config, log zerolog.Logger) (*Adapter, error) {
	c, err := speech.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &Adapter{
		client: c,
		cfg:    cfg,
		log:    log,
	}, nil
}

// Start opens the streaming session and sends the initial configuration.
// SingleUtterance stays false so the session runs until we half-close it.
func (a *Adapter) Start(ctx context.Context, cb stt.Callback) error {
	stream, err := a.client.StreamingRecognize(ctx)
	if err != nil {
		return err
	}
	a.stream = stream
	a.cb = cb

	return stream.Send(&speechpb.StreamingRecognizeRequest{
		StreamingRequest: &speechpb.StreamingRecognizeRequest_StreamingConfig{
			StreamingConfig: &speechpb.StreamingRecognitionConfig{
				Config: &speechpb.RecognitionConfig{
					Encoding:                   speechpb.RecognitionConfig_LINEAR16,
					SampleRateHertz:            int32(a.cfg.SampleRateHz),
					LanguageCode:               a.cfg.LanguageCode,
					EnableAutomaticPunctuation: a.cfg.AutomaticPunctuation,
				},
				InterimResults:  a.cfg.InterimResults,
				SingleUtterance: false,
			},
		},
	})
}

// SendAudio forwards one audio chunk to the recognizer.
func (a *Adapter) SendAudio(ctx context.Context, audio []byte) error {
	return a.stream.Send(&speechpb.StreamingRecognizeRequest{
		StreamingRequest: &speechpb.StreamingRecognizeRequest_AudioContent{
			AudioContent: audio,
		},
	})
}

// Close half-closes the outbound audio stream; Google then flushes pending
// results and ends the response stream.
func (a *Adapter) Close() error {
	if a.stream != nil {
		return a.stream.CloseSend()
	}
	return nil
}

// Listen receives responses until the stream ends. Each response carries one
// or more results; only the top alternative is consumed, and results with no
// alternatives are skipped.
func (a *Adapter) Listen() error {
	for {
		resp, err := a.stream.Recv()
		if err != nil {
			if isCleanStreamEnd(err) {
				a.log.Debug().Msg("Recognition stream ended")
				return nil
			}
			a.cb.OnError(err)
			return err
		}

		for _, r := range resp.Results {
			if len(r.Alternatives) == 0 {
				continue
			}
			alt := r.Alternatives[0]
			if r.IsFinal {
				a.cb.OnFinal(alt.Transcript, float64(alt.Confidence))
			} else {
				a.cb.OnPartial(alt.Transcript)
			}
		}
	}
}

// isCleanStreamEnd reports whether err is the normal end of a streaming
// session rather than a failure.
func isCleanStreamEnd(err error) bool {
	if errors.Is(err, io.EOF) {
		return true
	}
	switch status.Code(err) {
	case codes.Canceled, codes.DeadlineExceeded:
		return true
	}
	return false
}
