// Package audio captures microphone input through PortAudio and hands it off
// as LINEAR16 little-endian chunks.
package audio

import (
	"encoding/binary"
	"errors"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/rs/zerolog"

	"live-caption/internal/observability/metrics"
)

// Config holds microphone capture parameters.
type Config struct {
	SampleRateHz    int
	ChunksPerSecond int
	QueueSize       int
}

// DefaultConfig returns capture defaults: 16 kHz mono, 100 ms chunks.
func DefaultConfig() Config {
	return Config{
		SampleRateHz:    16000,
		ChunksPerSecond: 10,
		QueueSize:       32,
	}
}

// Capture reads mono int16 samples from the default input device and delivers
// encoded chunks on Chunks. The channel is closed when capture stops, which
// is the consumer's end-of-stream signal.
type Capture struct {
	cfg     Config
	log     zerolog.Logger
	metrics *metrics.Metrics

	stream *portaudio.Stream
	buf    []int16
	chunks chan []byte
	done   chan struct{}
	wg     sync.WaitGroup

	mu      sync.Mutex
	started bool
	stopped bool
}

// NewCapture creates a microphone capture with the given configuration.
func NewCapture(cfg Config, log zerolog.Logger) *Capture {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultConfig().QueueSize
	}
	return &Capture{
		cfg:     cfg,
		log:     log.With().Str("component", "audio").Logger(),
		metrics: metrics.DefaultMetrics,
		chunks:  make(chan []byte, cfg.QueueSize),
		done:    make(chan struct{}),
	}
}

// FramesPerChunk returns the number of samples per captured chunk.
func (c *Capture) FramesPerChunk() int {
	return c.cfg.SampleRateHz / c.cfg.ChunksPerSecond
}

// Start initializes PortAudio, opens the default input device and begins the
// capture loop.
func (c *Capture) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return errors.New("audio: capture already started")
	}

	if err := portaudio.Initialize(); err != nil {
		return err
	}

	frames := c.FramesPerChunk()
	c.buf = make([]int16, frames)
	stream, err := portaudio.OpenDefaultStream(1, 0, float64(c.cfg.SampleRateHz), frames, c.buf)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return err
	}
	c.stream = stream
	c.started = true

	c.log.Info().
		Int("sampleRateHz", c.cfg.SampleRateHz).
		Int("framesPerChunk", frames).
		Msg("Microphone capture started")

	c.wg.Add(1)
	go c.loop()
	return nil
}

// Chunks returns the channel of captured audio chunks. It is closed by Stop
// after the capture loop exits.
func (c *Capture) Chunks() <-chan []byte {
	return c.chunks
}

func (c *Capture) loop() {
	defer c.wg.Done()
	for {
		select {
		case <-c.done:
			return
		default:
		}

		if err := c.stream.Read(); err != nil {
			if err == portaudio.InputOverflowed {
				// The device skipped samples; the buffer is still usable.
				c.log.Warn().Msg("Audio input overflowed")
				c.metrics.RecordAudioOverflow()
			} else {
				c.log.Error().Err(err).Msg("Audio read failed")
				return
			}
		}

		chunk := encodeLE(c.buf)
		c.metrics.RecordAudioCaptured(len(chunk))

		select {
		case c.chunks <- chunk:
		default:
			// Consumer is behind; dropping keeps captions live.
			c.log.Warn().Msg("Audio queue full, dropping chunk")
			c.metrics.RecordAudioQueueDrop()
		}
	}
}

// Stop ends the capture loop, releases the device and closes the chunk
// channel. Safe to call more than once.
func (c *Capture) Stop() {
	c.mu.Lock()
	if !c.started || c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	c.mu.Unlock()

	close(c.done)
	c.wg.Wait()

	if err := c.stream.Stop(); err != nil {
		c.log.Warn().Err(err).Msg("Error stopping audio stream")
	}
	if err := c.stream.Close(); err != nil {
		c.log.Warn().Err(err).Msg("Error closing audio stream")
	}
	if err := portaudio.Terminate(); err != nil {
		c.log.Warn().Err(err).Msg("Error terminating PortAudio")
	}
	close(c.chunks)
	c.log.Info().Msg("Microphone capture stopped")
}

// encodeLE converts int16 samples to little-endian LINEAR16 bytes.
func encodeLE(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}
	return out
}
