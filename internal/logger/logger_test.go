package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_WritesJSONToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "api.log")
	Setup(Options{Level: "debug", File: file, Service: "huddle-test"})
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	log.Debug().Str("team_id", "t-1").Msg("hello")

	raw, err := os.ReadFile(file)
	require.NoError(t, err)
	line := string(raw)
	assert.True(t, strings.Contains(line, `"service":"huddle-test"`), line)
	assert.True(t, strings.Contains(line, `"team_id":"t-1"`), line)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestSetup_BadLevelFallsBackToInfo(t *testing.T) {
	Setup(Options{Level: "loud"})
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
