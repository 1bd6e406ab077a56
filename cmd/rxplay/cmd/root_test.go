package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestList(t *testing.T) {
	out := execute(t, "list")
	assert.Contains(t, out, "creation\n")
	assert.Contains(t, out, "take-until")
	assert.Contains(t, out, "ticker")
}

func TestRun(t *testing.T) {
	t.Run("single example", func(t *testing.T) {
		out := execute(t, "run", "--color=false", "take-until")
		assert.Equal(t, "\n--- Example of: takeUntil ---\nnext(1)\nnext(2)\ncompleted\n", out)
	})

	t.Run("unknown example", func(t *testing.T) {
		rootCmd.SetOut(&bytes.Buffer{})
		rootCmd.SetErr(&bytes.Buffer{})
		rootCmd.SetArgs([]string{"run", "--color=false", "nope"})
		assert.Error(t, rootCmd.Execute())
	})
}

func TestSearch(t *testing.T) {
	out := execute(t, "search",
		"--keystroke=20ms", "--latency=5ms", "--throttle=0s", "--log-level=error",
		"dog")
	assert.Contains(t, out, "dog-1")
	assert.Contains(t, out, "dog-2")
	assert.NotContains(t, out, "cat-1")
}
