// Package clipboard copies text to the system clipboard through whichever
// utility the host provides.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/muesli/termenv"
)

const defaultTimeout = 3 * time.Second

// ErrNoUtility is returned when no clipboard command is installed
var ErrNoUtility = errors.New("no clipboard utility found (tried pbcopy, wl-copy, xclip, xsel, clip)")

// DefaultCommands are tried in order
var DefaultCommands = [][]string{
	{"pbcopy"},
	{"wl-copy"},
	{"xclip", "-selection", "clipboard"},
	{"xsel", "--clipboard", "--input"},
	{"clip"},
}

// Copier runs the first available clipboard command
type Copier struct {
	Commands [][]string
	Timeout  time.Duration
	// OSC52 falls back to the terminal escape sequence over SSH
	OSC52 bool

	lookPath func(string) (string, error)
}

// New returns a Copier using DefaultCommands
func New() *Copier {
	return &Copier{
		Commands: DefaultCommands,
		Timeout:  defaultTimeout,
		OSC52:    os.Getenv("SSH_TTY") != "",
		lookPath: exec.LookPath,
	}
}

// Copy writes text to the clipboard
func (c *Copier) Copy(ctx context.Context, text string) error {
	lookPath := c.lookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	var lastErr error
	for _, args := range c.Commands {
		if len(args) == 0 {
			continue
		}
		if _, err := lookPath(args[0]); err != nil {
			continue
		}
		runCtx, cancel := context.WithTimeout(ctx, timeout)
		cmd := exec.CommandContext(runCtx, args[0], args[1:]...)
		cmd.Stdin = strings.NewReader(text)
		err := cmd.Run()
		cancel()
		if err == nil {
			return nil
		}
		lastErr = fmt.Errorf("%s: %w", args[0], err)
	}

	if c.OSC52 {
		termenv.Copy(text)
		return nil
	}
	if lastErr != nil {
		return lastErr
	}
	return ErrNoUtility
}

// CopyToClipboard copies text with a default Copier
func CopyToClipboard(text string) error {
	return New().Copy(context.Background(), text)
}
