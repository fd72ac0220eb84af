//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCommandReferencePager(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp(), "Failed to start app")
	require.True(t, tf.Ready(), "Should show the idle status line")

	// F1 opens the command reference in the pager
	require.NoError(t, tf.SendKeys(KeyF1))
	require.True(t, tf.OutputContainsPlain("Command Reference", 3*time.Second), "Should show the reference in the pager")
	require.True(t, tf.SeePlain("Ctrl+Z"), "Reference should list accelerators")

	// Quit pager and ensure TUI again
	tf.Snapshot()
	require.NoError(t, tf.SendKeys("q"))
	require.True(t, tf.SeePlain("ready"), "Should return to main TUI after closing pager")

	require.NoError(t, tf.Quit())
	require.NoError(t, tf.WaitExit(2*time.Second), "app did not exit after quit")
}
