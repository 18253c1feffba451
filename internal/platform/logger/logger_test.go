package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   Debug,
		" INFO ":  Info,
		"":        Info,
		"warning": Warn,
		"error":   Error,
		"bogus":   Info,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat("pretty"))
}

func TestJSONLogger_IncludesAppAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(Options{Level: Info, Format: FormatJSON, App: "adoption"}, &buf)

	l.With(map[string]any{"request_id": "r-1"}).Info("listed", map[string]any{"total": 3})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "listed", entry["msg"])
	assert.Equal(t, "adoption", entry["app"])
	assert.Equal(t, "r-1", entry["request_id"])
	assert.EqualValues(t, 3, entry["total"])
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(Options{Level: Warn, Format: FormatText}, &buf)

	l.Info("hidden", nil)
	l.Warn("shown", nil)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestLogger_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(Options{Level: Debug, Format: FormatJSON}, &buf)

	l.Info("config", map[string]any{
		"api_secret":    "shh-very-secret",
		"authorization": "Bearer abc.def.ghi",
		"name":          "Lola",
	})

	out := buf.String()
	assert.False(t, strings.Contains(out, "shh-very-secret"), "secret leaked: %s", out)
	assert.False(t, strings.Contains(out, "abc.def.ghi"), "token leaked: %s", out)
	assert.Contains(t, out, "Lola")
}
