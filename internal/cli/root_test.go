package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCommand_Help(t *testing.T) {
	rootCmd.SetArgs([]string{"--help"})
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)

	require.NoError(t, rootCmd.Execute())
	// Reset the parsed help flag so it doesn't leak into later Execute calls
	// on the shared rootCmd.
	t.Cleanup(func() {
		require.NoError(t, rootCmd.Flags().Set("help", "false"))
	})

	output := buf.String()
	require.Contains(t, output, "editfix")
	require.Contains(t, output, "Patch Lifecycle:")
	require.Contains(t, output, "Discovery:")
	require.Contains(t, output, "Startup Persistence:")
}

func TestRootCommand_Version(t *testing.T) {
	SetVersion("1.2.3")
	rootCmd.SetArgs([]string{"--version"})
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)

	require.NoError(t, rootCmd.Execute())
	require.Contains(t, buf.String(), "1.2.3")
}

func TestRootCommand_InvalidCommand(t *testing.T) {
	rootCmd.SetArgs([]string{"no-such-command"})
	var buf bytes.Buffer
	rootCmd.SetErr(&buf)

	require.Error(t, rootCmd.Execute())
}

func TestRootCommand_AllCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{
		"apply", "remove", "status", "verify",
		"discover", "refresh",
		"install", "uninstall",
		"version",
	} {
		require.True(t, names[want], "missing command %q", want)
	}
}

func TestSetVersion_EmptyKeepsExisting(t *testing.T) {
	SetVersion("9.9.9")
	SetVersion("")
	require.Equal(t, "9.9.9", rootCmd.Version)
}
