package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"", zerolog.WarnLevel},
		{"verbose", zerolog.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := ParseLevel(tt.level); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("filters below level", func(t *testing.T) {
		var buf bytes.Buffer
		log := New("warn", &buf)

		log.Info().Msg("hidden")
		log.Warn().Str("path", "A.java").Msg("shown")

		out := buf.String()
		if strings.Contains(out, "hidden") {
			t.Errorf("info message written at warn level: %q", out)
		}
		if !strings.Contains(out, "shown") || !strings.Contains(out, "A.java") {
			t.Errorf("warn message missing: %q", out)
		}
	})

	t.Run("nil writer discards", func(t *testing.T) {
		log := New("debug", nil)
		log.Error().Msg("nowhere")
	})
}
