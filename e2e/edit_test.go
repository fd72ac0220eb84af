//go:build e2e && unix

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestToolbarClickArmsCommand(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp(), "Failed to start app")
	require.True(t, tf.Ready(), "Should show the idle status line")

	// The line button sits at column 2, row 1
	require.NoError(t, tf.Click(2, 1))
	require.NoError(t, tf.WaitForE(func(s string) bool {
		return strings.Contains(ansiRe.ReplaceAllString(s, ""), "click first point of line segment")
	}, 3*time.Second, "toolbar click should arm the line command"))
}

func TestEditCommentByDoubleClick(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")
	require.NoError(t, tf.WriteConfig("version = 1\n\n[editor]\nsnap_to_grid = false\n"))

	require.NoError(t, tf.StartApp(), "Failed to start app")
	require.True(t, tf.Ready(), "Should show the idle status line")

	require.NoError(t, tf.SendKeys(KeyComment))
	require.True(t, tf.SeePlain("click center of comment text"), "Should arm the comment command")
	require.NoError(t, tf.Click(60, 10))
	require.True(t, tf.SeePlain("NEW COMMENT -- DOUBLE-CLICK TO EDIT"), "Should place the comment")

	require.NoError(t, tf.Click(60, 10))
	require.NoError(t, tf.Click(60, 10))
	require.True(t, tf.SeePlain("edit:"), "Double-click should open the edit control")

	require.NoError(t, tf.SendKeys("!"))
	require.NoError(t, tf.SendKeys(KeyEnter))
	require.True(t, tf.SeePlain("DOUBLE-CLICK TO EDIT!"), "Should apply the edited text")
}
