package config

import (
	"os"
	"reflect"
	"testing"
)

var allEnvVars = []string{
	"SERVICE_PRINCIPAL", "ENV", "LOG_LEVEL", "LOG_FORMAT", "METRICS_ADDR",
	"STT_PROVIDER", "STT_LANGUAGE_CODE", "STT_SAMPLE_RATE_HZ", "STT_INTERIM_RESULTS",
	"AUDIO_CHUNKS_PER_SECOND", "AUDIO_QUEUE_SIZE",
	"TEXT_REMOVE_FILLERS", "RENDER_MODE",
	"KAFKA_ENABLED", "KAFKA_BROKERS", "KAFKA_TOPIC_PARTIAL", "KAFKA_TOPIC_FINAL", "KAFKA_PRINCIPAL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range allEnvVars {
		os.Unsetenv(v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if cfg.Service.Principal != "live-caption" {
		t.Errorf("expected default principal 'live-caption', got %s", cfg.Service.Principal)
	}
	if cfg.STT.Provider != "google" {
		t.Errorf("expected default STT provider 'google', got %s", cfg.STT.Provider)
	}
	if cfg.STT.LanguageCode != "en-US" {
		t.Errorf("expected default language 'en-US', got %s", cfg.STT.LanguageCode)
	}
	if cfg.STT.SampleRateHz != 16000 {
		t.Errorf("expected default sample rate 16000, got %d", cfg.STT.SampleRateHz)
	}
	if cfg.STT.InterimResults != true {
		t.Errorf("expected default interim results true, got %v", cfg.STT.InterimResults)
	}
	if cfg.Audio.ChunksPerSecond != 10 {
		t.Errorf("expected default 10 chunks per second, got %d", cfg.Audio.ChunksPerSecond)
	}
	if cfg.Audio.QueueSize != 32 {
		t.Errorf("expected default queue size 32, got %d", cfg.Audio.QueueSize)
	}
	if cfg.Text.RemoveFillers != true {
		t.Errorf("expected filler removal enabled by default, got %v", cfg.Text.RemoveFillers)
	}
	if cfg.Render.Mode != "wrap" {
		t.Errorf("expected default render mode 'wrap', got %s", cfg.Render.Mode)
	}
	if cfg.Kafka.Enabled {
		t.Error("expected Kafka disabled by default")
	}
	if cfg.Kafka.TopicPartial != "caption.partial" {
		t.Errorf("expected default partial topic 'caption.partial', got %s", cfg.Kafka.TopicPartial)
	}
	if cfg.Kafka.TopicFinal != "caption.final" {
		t.Errorf("expected default final topic 'caption.final', got %s", cfg.Kafka.TopicFinal)
	}
	if cfg.Observability.LogLevel != "info" {
		t.Errorf("expected default log level 'info', got %s", cfg.Observability.LogLevel)
	}
	if cfg.Observability.MetricsAddr != "" {
		t.Errorf("expected metrics server disabled by default, got %s", cfg.Observability.MetricsAddr)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	os.Setenv("SERVICE_PRINCIPAL", "custom-principal")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("STT_PROVIDER", "mock")
	os.Setenv("STT_LANGUAGE_CODE", "es-ES")
	os.Setenv("STT_SAMPLE_RATE_HZ", "8000")
	os.Setenv("STT_INTERIM_RESULTS", "false")
	os.Setenv("AUDIO_CHUNKS_PER_SECOND", "20")
	os.Setenv("TEXT_REMOVE_FILLERS", "false")
	os.Setenv("RENDER_MODE", "tail")
	os.Setenv("KAFKA_ENABLED", "true")
	os.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	os.Setenv("METRICS_ADDR", ":9090")
	defer clearEnv(t)

	cfg := Load()

	if cfg.Service.Principal != "custom-principal" {
		t.Errorf("expected principal 'custom-principal', got %s", cfg.Service.Principal)
	}
	if cfg.STT.Provider != "mock" {
		t.Errorf("expected STT provider 'mock', got %s", cfg.STT.Provider)
	}
	if cfg.STT.LanguageCode != "es-ES" {
		t.Errorf("expected language 'es-ES', got %s", cfg.STT.LanguageCode)
	}
	if cfg.STT.SampleRateHz != 8000 {
		t.Errorf("expected sample rate 8000, got %d", cfg.STT.SampleRateHz)
	}
	if cfg.STT.InterimResults != false {
		t.Errorf("expected interim results false, got %v", cfg.STT.InterimResults)
	}
	if cfg.Audio.ChunksPerSecond != 20 {
		t.Errorf("expected 20 chunks per second, got %d", cfg.Audio.ChunksPerSecond)
	}
	if cfg.Text.RemoveFillers != false {
		t.Errorf("expected filler removal disabled, got %v", cfg.Text.RemoveFillers)
	}
	if cfg.Render.Mode != "tail" {
		t.Errorf("expected render mode 'tail', got %s", cfg.Render.Mode)
	}
	if !cfg.Kafka.Enabled {
		t.Error("expected Kafka enabled")
	}
	want := []string{"broker1:9092", "broker2:9092"}
	if !reflect.DeepEqual(cfg.Kafka.Brokers, want) {
		t.Errorf("expected brokers %v, got %v", want, cfg.Kafka.Brokers)
	}
	if cfg.Observability.MetricsAddr != ":9090" {
		t.Errorf("expected metrics addr ':9090', got %s", cfg.Observability.MetricsAddr)
	}
	if cfg.Observability.LogLevel != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Observability.LogLevel)
	}
}

func TestLoad_InvalidValues_FallbackToDefaults(t *testing.T) {
	clearEnv(t)
	os.Setenv("STT_SAMPLE_RATE_HZ", "not-a-number")
	os.Setenv("STT_INTERIM_RESULTS", "invalid")
	os.Setenv("AUDIO_CHUNKS_PER_SECOND", "ten")
	os.Setenv("KAFKA_ENABLED", "yes please")
	defer clearEnv(t)

	cfg := Load()

	if cfg.STT.SampleRateHz != 16000 {
		t.Errorf("expected default sample rate on invalid input, got %d", cfg.STT.SampleRateHz)
	}
	if cfg.STT.InterimResults != true {
		t.Errorf("expected default interim results on invalid input, got %v", cfg.STT.InterimResults)
	}
	if cfg.Audio.ChunksPerSecond != 10 {
		t.Errorf("expected default chunks per second on invalid input, got %d", cfg.Audio.ChunksPerSecond)
	}
	if cfg.Kafka.Enabled {
		t.Error("expected Kafka disabled on invalid input")
	}
}

func TestLoad_KafkaPrincipal_FallsBackToServicePrincipal(t *testing.T) {
	clearEnv(t)
	os.Setenv("SERVICE_PRINCIPAL", "my-client")
	defer clearEnv(t)

	cfg := Load()

	if cfg.Kafka.Principal != "my-client" {
		t.Errorf("expected Kafka principal to fall back to service principal, got %s", cfg.Kafka.Principal)
	}
}

func TestEnvOrDefaultBool(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		def      bool
		expected bool
	}{
		{"true string", "true", false, true},
		{"false string", "false", true, false},
		{"1", "1", false, true},
		{"0", "0", true, false},
		{"TRUE uppercase", "TRUE", false, true},
		{"invalid", "invalid", true, true},
		{"empty", "", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_BOOL_VAR"
			if tt.envValue != "" {
				os.Setenv(key, tt.envValue)
			} else {
				os.Unsetenv(key)
			}
			defer os.Unsetenv(key)

			got := envOrDefaultBool(key, tt.def)
			if got != tt.expected {
				t.Errorf("envOrDefaultBool(%s, %v) = %v, want %v", tt.envValue, tt.def, got, tt.expected)
			}
		})
	}
}

func TestEnvOrDefaultSlice(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected []string
	}{
		{"single", "a:9092", []string{"a:9092"}},
		{"multiple", "a:9092,b:9092", []string{"a:9092", "b:9092"}},
		{"spaces", " a:9092 , b:9092 ", []string{"a:9092", "b:9092"}},
		{"empty entries", ",,", nil},
		{"unset", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_SLICE_VAR"
			if tt.envValue != "" {
				os.Setenv(key, tt.envValue)
			} else {
				os.Unsetenv(key)
			}
			defer os.Unsetenv(key)

			got := envOrDefaultSlice(key, nil)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("envOrDefaultSlice(%q) = %v, want %v", tt.envValue, got, tt.expected)
			}
		})
	}
}
