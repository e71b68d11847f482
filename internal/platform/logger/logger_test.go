package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
}

func TestText_SortedKeysAndLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatText, App: "petverse", Writer: &buf, Now: fixedNow})

	l.Debug("hidden", nil)
	l.With(map[string]any{"pet": "Tom"}).Info("fed", map[string]any{"coins": 45})

	out := strings.TrimSpace(buf.String())
	assert.NotContains(t, out, "hidden")
	assert.Equal(t, "app=petverse coins=45 level=info msg=fed pet=Tom ts=2026-01-02T03:04:05Z", out)
}

func TestText_QuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Writer: &buf, Now: fixedNow})

	l.Warn("load failed", map[string]any{"error": errors.New("bad file")})

	assert.Contains(t, buf.String(), `error="bad file"`)
	assert.Contains(t, buf.String(), `msg="load failed"`)
}

func TestJSON_Entry(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Debug, Format: FormatJSON, Writer: &buf, Now: fixedNow})

	l.Error("save failed", map[string]any{"error": errors.New("disk full"), "": "ignored"})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "save failed", entry["msg"])
	assert.Equal(t, "disk full", entry["error"])
	assert.NotContains(t, entry, "")
}

func TestWith_DoesNotLeakIntoParent(t *testing.T) {
	var buf bytes.Buffer
	parent := New(Options{Writer: &buf, Now: fixedNow})
	_ = parent.With(map[string]any{"component": "store"})

	parent.Info("hello", nil)
	assert.NotContains(t, buf.String(), "component")
}

func TestParse(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel("DEBUG"))
	assert.Equal(t, Warn, ParseLevel("warning"))
	assert.Equal(t, Info, ParseLevel("nonsense"))
	assert.Equal(t, FormatJSON, ParseFormat(" json "))
	assert.Equal(t, FormatText, ParseFormat(""))
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error("nothing", nil)
	assert.NotNil(t, l.With(map[string]any{"a": 1}))
}
