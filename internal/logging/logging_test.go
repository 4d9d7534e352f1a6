package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crowdfund/internal/config/configs"
)

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, configs.Logger{Level: "info", Format: "json"}).Info("deployed", "campaign", "0xabc")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "deployed", line["msg"])
	assert.Equal(t, "0xabc", line["campaign"])
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, configs.Logger{Level: "warn", Format: "text"})
	l.Info("hidden")
	assert.Empty(t, buf.String())
	l.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestTintFormat(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, configs.Logger{Level: "debug", Format: "tint"}).Debug("hello", "k", "v")
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "k=")
}
