package termlog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogger_TerseByDefault(t *testing.T) {
	var out, errOut bytes.Buffer
	log := New(WithOutput(&out, &errOut))

	log.Section("title")
	log.Infof("progress")
	log.Successf("done")
	log.Warnf("careful")
	require.Empty(t, out.String())

	log.Errorf("broken: %s", "reason")
	require.Contains(t, errOut.String(), "broken: reason")
}

func TestLogger_VerboseOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	log := New(WithOutput(&out, &errOut), WithVerbose(true))

	log.Section("applying")
	log.Infof("step %d", 1)
	log.Successf("ok")
	log.Warnf("meh")
	log.List([]string{"/a", "/b"})

	text := out.String()
	require.Contains(t, text, "applying")
	require.Contains(t, text, "step 1")
	require.Contains(t, text, "ok")
	require.Contains(t, text, "meh")
	require.Contains(t, text, "/a")
	require.Empty(t, errOut.String())
}

func TestLogger_EnvToggle(t *testing.T) {
	t.Setenv(EnvVerbose, "1")

	var out, errOut bytes.Buffer
	log := New(WithOutput(&out, &errOut))
	require.True(t, log.Verbose())

	log.Infof("visible")
	require.Contains(t, out.String(), "visible")
}

func TestLogger_DebugGatedOnEnv(t *testing.T) {
	t.Setenv(EnvDebug, "")

	var out, errOut bytes.Buffer
	New(WithOutput(&out, &errOut)).Debugf("hidden")
	require.Empty(t, errOut.String())

	t.Setenv(EnvDebug, "true")
	New(WithOutput(&out, &errOut)).Debugf("shown")
	require.Contains(t, errOut.String(), "shown")
}

func TestLogger_IndentDoesNotMutateParent(t *testing.T) {
	var out, errOut bytes.Buffer
	log := New(WithOutput(&out, &errOut), WithVerbose(true))

	child := log.Indent()
	child.Infof("inner")
	log.Infof("outer")

	require.Contains(t, out.String(), "  inner")
	require.Contains(t, out.String(), "\nouter")
}
