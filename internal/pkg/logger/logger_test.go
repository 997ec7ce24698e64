package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/hostelcare/internal/pkg/logger"
)

func TestConfigureWritesJSONWithService(t *testing.T) {
	var buf bytes.Buffer
	lgr := logger.Configure(logger.Config{Level: logger.DebugLevel, Output: &buf, Service: "hostelcare"})
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	lgr.Info().Str("roomId", "12").Msg("room allocated")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hostelcare", line["service"])
	assert.Equal(t, "room allocated", line["message"])
	assert.Equal(t, "12", line["roomId"])
}

func TestLevelFiltersLowerEvents(t *testing.T) {
	var buf bytes.Buffer
	lgr := logger.Configure(logger.Config{Level: logger.WarnLevel, Output: &buf})
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	lgr.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	lgr.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestConfigFromStrings(t *testing.T) {
	cfg := logger.ConfigFromStrings(" DEBUG ", "Text")
	assert.Equal(t, logger.DebugLevel, cfg.Level)
	assert.True(t, cfg.Pretty)

	cfg = logger.ConfigFromStrings("info", "json")
	assert.False(t, cfg.Pretty)
}
