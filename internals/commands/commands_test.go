package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

type runnerFunc func(cmd *cobra.Command, args []string) error

func (r runnerFunc) RunE(cmd *cobra.Command, args []string) error { return r(cmd, args) }

func TestPrintError(t *testing.T) {
	EmojiEnabled = false
	defer func() { EmojiEnabled = true }()

	tests := []struct {
		name     string
		err      error
		code     int
		contains string
	}{
		{"plain", errors.New("boom"), 1, "Error: boom"},
		{"cli error", &CliError{Text: "no version", Suggestions: []string{"run with --refresh"}}, 1, "run with --refresh"},
		{"cancelled", fmt.Errorf("download: %w", context.Canceled), ExitInterrupted, "Shutdown requested"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			require.Equal(t, tt.code, PrintError(out, tt.err))
			require.Contains(t, out.String(), tt.contains)
		})
	}
}

func TestCliError_Unwrap(t *testing.T) {
	base := errors.New("base")
	err := fmt.Errorf("wrapped: %w", &CliError{Text: "x", Err: base})
	require.True(t, errors.Is(err, base))
}

func TestNew_ExitCode(t *testing.T) {
	var code int
	orig := exit
	exit = func(c int) { code = c }
	defer func() { exit = orig }()

	cmd := New(&cobra.Command{Use: "fail"}, runnerFunc(func(cmd *cobra.Command, args []string) error {
		return context.Canceled
	}))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	require.Equal(t, ExitInterrupted, code)
}

func TestDetectEmojiSupport(t *testing.T) {
	tests := []struct {
		goos string
		env  map[string]string
		want bool
	}{
		{"linux", nil, true},
		{"linux", map[string]string{"NO_COLOR": "1"}, false},
		{"windows", nil, true},
		{"windows", map[string]string{"SESSIONNAME": "Console"}, false},
		{"windows", map[string]string{"SESSIONNAME": "Console", "WT_SESSION": "abc"}, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %v", tt.goos, tt.env), func(t *testing.T) {
			got := detectEmojiSupport(tt.goos, func(k string) string { return tt.env[k] })
			require.Equal(t, tt.want, got)
		})
	}
}
