package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/cloudtiles/internal/adapters/driving/tui"
	"github.com/custodia-labs/cloudtiles/internal/logger"
)

// ErrNotTerminal is returned when the TUI is started without a terminal.
var ErrNotTerminal = errors.New("the interactive browser needs a terminal; use the categories or services commands instead")

// isTerminal reports whether stdin and stdout are terminals.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive catalog browser",
	Long: `Launch the interactive terminal browser for the service catalog.

Controls:
  ←↑↓→/hjkl - Move between tiles
  Enter     - Open category / flip service tile
  Space     - Flip service tile
  o         - Open the service link in a browser
  y         - Copy the service link
  Esc       - Back to categories
  r         - Reload
  ?         - Toggle help
  q         - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	if !isTerminal() {
		return ErrNotTerminal
	}

	s, err := loadServices()
	if err != nil {
		return err
	}

	restore, err := redirectLogs(opts.LogFile)
	if err != nil {
		return err
	}
	defer restore()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	ports := tui.NewPorts(s.Browser, s.Links)
	if s.Watch != nil {
		changes, werr := s.Watch(ctx)
		if werr != nil {
			logger.Warn("dataset watch disabled: %v", werr)
		} else {
			ports.Changes = changes
		}
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(ctx).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// redirectLogs sends log output to path while the TUI owns the terminal,
// or discards it when path is empty. The returned func restores the
// previous output.
func redirectLogs(path string) (func(), error) {
	previous := logger.Output()

	if path == "" {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(previous) }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	logger.SetOutput(f)
	return func() {
		logger.SetOutput(previous)
		f.Close() //nolint:errcheck
	}, nil
}
