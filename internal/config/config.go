// Package config loads client configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the caption client.
type Config struct {
	Service       ServiceConfig
	STT           STTConfig
	Audio         AudioConfig
	Text          TextConfig
	Render        RenderConfig
	Kafka         KafkaConfig
	Observability ObservabilityConfig
}

// ServiceConfig identifies the client instance.
type ServiceConfig struct {
	Principal string
	Env       string
}

// STTConfig holds speech-to-text provider settings.
type STTConfig struct {
	Provider       string // google, mock
	LanguageCode   string
	SampleRateHz   int
	InterimResults bool
}

// AudioConfig holds microphone capture settings.
type AudioConfig struct {
	ChunksPerSecond int
	QueueSize       int
}

// TextConfig holds transcript cleaning settings.
type TextConfig struct {
	RemoveFillers bool
}

// RenderConfig holds viewport settings.
type RenderConfig struct {
	Mode string // wrap, tail
}

// KafkaConfig holds caption event mirroring settings.
type KafkaConfig struct {
	Enabled      bool
	Brokers      []string
	TopicPartial string
	TopicFinal   string
	Principal    string
}

// ObservabilityConfig holds logging and metrics settings.
type ObservabilityConfig struct {
	LogLevel    string
	LogFormat   string
	MetricsAddr string // empty disables the metrics server
}

// Load reads configuration from the environment, falling back to defaults
// for unset or unparsable values.
func Load() *Config {
	principal := envOrDefault("SERVICE_PRINCIPAL", "live-caption")

	return &Config{
		Service: ServiceConfig{
			Principal: principal,
			Env:       envOrDefault("ENV", "prod"),
		},
		STT: STTConfig{
			Provider:       envOrDefault("STT_PROVIDER", "google"),
			LanguageCode:   envOrDefault("STT_LANGUAGE_CODE", "en-US"),
			SampleRateHz:   envOrDefaultInt("STT_SAMPLE_RATE_HZ", 16000),
			InterimResults: envOrDefaultBool("STT_INTERIM_RESULTS", true),
		},
		Audio: AudioConfig{
			ChunksPerSecond: envOrDefaultInt("AUDIO_CHUNKS_PER_SECOND", 10),
			QueueSize:       envOrDefaultInt("AUDIO_QUEUE_SIZE", 32),
		},
		Text: TextConfig{
			RemoveFillers: envOrDefaultBool("TEXT_REMOVE_FILLERS", true),
		},
		Render: RenderConfig{
			Mode: envOrDefault("RENDER_MODE", "wrap"),
		},
		Kafka: KafkaConfig{
			Enabled:      envOrDefaultBool("KAFKA_ENABLED", false),
			Brokers:      envOrDefaultSlice("KAFKA_BROKERS", nil),
			TopicPartial: envOrDefault("KAFKA_TOPIC_PARTIAL", "caption.partial"),
			TopicFinal:   envOrDefault("KAFKA_TOPIC_FINAL", "caption.final"),
			Principal:    envOrDefault("KAFKA_PRINCIPAL", principal),
		},
		Observability: ObservabilityConfig{
			LogLevel:    envOrDefault("LOG_LEVEL", "info"),
			LogFormat:   envOrDefault("LOG_FORMAT", "json"),
			MetricsAddr: envOrDefault("METRICS_ADDR", ""),
		},
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envOrDefaultBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envOrDefaultSlice(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
