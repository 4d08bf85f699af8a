package browser

import (
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		goos string
		bin  string
		args []string
	}{
		{"darwin", "open", []string{"https://example.com"}},
		{"linux", "xdg-open", []string{"https://example.com"}},
		{"windows", "rundll32", []string{"url.dll,FileProtocolHandler", "https://example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			cmd, err := command(tt.goos, "https://example.com")
			require.NoError(t, err)
			assert.Equal(t, tt.bin, filepath.Base(cmd.Args[0]))
			assert.Equal(t, tt.args, cmd.Args[1:])
		})
	}
}

func TestCommand_Unsupported(t *testing.T) {
	_, err := command("plan9", "https://example.com")

	assert.ErrorContains(t, err, "unsupported platform")
}

func TestOpener_Open(t *testing.T) {
	var started *exec.Cmd
	o := &Opener{goos: "linux", start: func(c *exec.Cmd) error {
		started = c
		return nil
	}}

	require.NoError(t, o.Open("https://cloud.google.com"))
	require.NotNil(t, started)
	assert.Equal(t, "https://cloud.google.com", started.Args[1])

	failing := &Opener{goos: "linux", start: func(*exec.Cmd) error { return errors.New("no display") }}
	assert.ErrorContains(t, failing.Open("https://cloud.google.com"), "no display")
}
