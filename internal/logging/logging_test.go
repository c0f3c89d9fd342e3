package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" info ":  zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"bogus":   zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestNewWriter_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, Config{Level: "warn", App: "pharmacare"})

	logger.Info().Msg("quiet")
	logger.Warn().Str("lane", "trending").Msg("loud")

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "loud")
	assert.Contains(t, out, "lane=trending")
	assert.Contains(t, out, "app=pharmacare")
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "svc.log")

	logger, cleanup, err := New(Config{Level: "debug", File: path})
	require.NoError(t, err)
	logger.Debug().Msg("catalog seeded")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Logging set up")
	assert.Contains(t, string(data), "catalog seeded")
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	p, err := DefaultPath("pharmacare-tui")
	require.NoError(t, err)
	assert.Equal(t, "/home/tester/.local/state/pharmacare/pharmacare-tui.log", p)
}
