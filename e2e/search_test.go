//go:build e2e && unix

package e2e

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func startSearch(t *testing.T, args ...string) *TUITestFramework {
	t.Helper()
	tf := NewTUITest(t)
	t.Cleanup(tf.Cleanup)

	args = append([]string{"--endpoint", endpoint}, args...)
	require.NoError(t, tf.StartApp(args...))
	if !tf.Ready() {
		tf.DumpTailOnFail(t, "ready", 4000)
		t.Fatal("app never drew its first frame")
	}
	return tf
}

func TestTypingShowsFirstPage(t *testing.T) {
	tf := startSearch(t)

	require.NoError(t, tf.Type("lon"))
	if !tf.OutputContainsPlain("3 store(s) of 7 shown", 5*time.Second) {
		tf.DumpTailOnFail(t, "first-page", 4000)
		t.Fatal("first page never arrived")
	}
	require.True(t, tf.OutputContainsPlain("More", time.Second))
}

func TestMoreAppendsPages(t *testing.T) {
	tf := startSearch(t)

	require.NoError(t, tf.Type("lon"))
	require.True(t, tf.OutputContainsPlain("3 store(s) of 7 shown", 5*time.Second))

	require.NoError(t, tf.SendEnter())
	require.True(t, tf.OutputContainsPlain("6 store(s) of 7 shown", 5*time.Second))

	require.NoError(t, tf.SendEnter())
	require.True(t, tf.OutputContainsPlain("7 store(s) of 7 shown", 5*time.Second))
}

func TestInitialQueryArgument(t *testing.T) {
	tf := NewTUITest(t)
	t.Cleanup(tf.Cleanup)

	require.NoError(t, tf.StartApp("--endpoint", endpoint, "br"))
	require.True(t, tf.OutputContainsPlain("3 store(s) of 5 shown", 5*time.Second))
}

func TestUnreachableDirectoryShowsRetryHint(t *testing.T) {
	tf := NewTUITest(t)
	t.Cleanup(tf.Cleanup)

	// Nothing listens on port 9 of localhost
	require.NoError(t, tf.StartApp("--endpoint", "http://127.0.0.1:9/task2", "--timeout", "1s"))
	require.True(t, tf.Ready())

	require.NoError(t, tf.Type("lon"))
	require.True(t, tf.OutputContainsPlain("ctrl+r to retry", 5*time.Second))
}

func TestHelpPopup(t *testing.T) {
	tf := startSearch(t)

	require.NoError(t, tf.SendKeys(KeyF1))
	require.True(t, tf.OutputContainsPlain("Store Finder Help", 3*time.Second))
}

func TestCtrlCExits(t *testing.T) {
	tf := startSearch(t)

	require.NoError(t, tf.SendCtrlC())
	require.True(t, tf.Exited(3*time.Second), "app did not exit on ctrl+c")
}

func TestQuitFromBrowseMode(t *testing.T) {
	tf := startSearch(t)

	require.NoError(t, tf.Type("lon"))
	require.True(t, tf.OutputContainsPlain("3 store(s) of 7 shown", 5*time.Second))

	require.NoError(t, tf.Quit())
	require.True(t, tf.Exited(3*time.Second), "app did not exit on q")
}
