package logger

import (
	"testing"

	"github.com/news-aggregator-api/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"DEBUG":   zerolog.DebugLevel,
		"warn":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"info":    zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}

	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestNew_AppliesLevel(t *testing.T) {
	log := New(config.LogConfig{Level: "error", Format: "json"})
	assert.Equal(t, zerolog.ErrorLevel, log.GetLevel())

	log = New(config.LogConfig{Level: "debug", Format: "pretty"})
	assert.Equal(t, zerolog.DebugLevel, log.GetLevel())
}
