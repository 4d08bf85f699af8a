// Package browser opens links with the operating system's default handler.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/custodia-labs/cloudtiles/internal/core/ports/driven"
)

// Ensure Opener implements the interface.
var _ driven.LinkOpener = (*Opener)(nil)

// Opener launches the platform URL handler.
type Opener struct {
	goos  string
	start func(*exec.Cmd) error
}

// NewOpener creates an opener for the running platform.
func NewOpener() *Opener {
	return &Opener{
		goos:  runtime.GOOS,
		start: (*exec.Cmd).Start,
	}
}

// Open launches url without waiting for the handler to exit.
func (o *Opener) Open(url string) error {
	cmd, err := command(o.goos, url)
	if err != nil {
		return err
	}
	return o.start(cmd)
}

func command(goos, url string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", url), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", url), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}
