package cli

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/editfix/editfix/internal/termlog"
)

func TestNewLogger_EnvToggleSurvivesUnsetFlagAndConfig(t *testing.T) {
	t.Setenv(termlog.EnvVerbose, "1")
	verbose = false

	require.True(t, newLogger(false).Verbose())
}

func TestNewLogger_FlagAndConfigEnableVerbosity(t *testing.T) {
	t.Setenv(termlog.EnvVerbose, "")

	verbose = false
	require.False(t, newLogger(false).Verbose())
	require.True(t, newLogger(true).Verbose())

	verbose = true
	defer func() { verbose = false }()
	require.True(t, newLogger(false).Verbose())
}
