package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
	"go.uber.org/zap"
)

// ErrClipboardUnavailable means no clipboard mechanism accepted the text
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Clipboard places text on the system clipboard
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// ClipboardFunc adapts a function to Clipboard
type ClipboardFunc func(ctx context.Context, text string) error

func (f ClipboardFunc) WriteText(ctx context.Context, text string) error { return f(ctx, text) }

// System writes through the native clipboard tools and falls back to an
// OSC 52 escape on the controlling terminal, which also works over SSH.
type System struct {
	// OpenTerminal returns the writer the OSC 52 sequence goes to.
	// Defaults to /dev/tty.
	OpenTerminal func() (io.WriteCloser, error)
	Log          *zap.Logger
}

func (s System) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	log := s.Log
	if log == nil {
		log = zap.NewNop()
	}

	if !clipboard.Unsupported {
		err := clipboard.WriteAll(text)
		if err == nil {
			return nil
		}
		log.Debug("native clipboard failed, trying OSC 52", zap.Error(err))
	}

	open := s.OpenTerminal
	if open == nil {
		open = openTTY
	}
	w, err := open()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrClipboardUnavailable, err)
	}
	defer w.Close()

	if err := writeOSC52(w, text); err != nil {
		return fmt.Errorf("%w: %v", ErrClipboardUnavailable, err)
	}
	return nil
}

func writeOSC52(w io.Writer, text string) error {
	seq := osc52.New(text)
	term := os.Getenv("TERM")
	switch {
	case os.Getenv("TMUX") != "" || strings.HasPrefix(term, "tmux"):
		seq = seq.Tmux()
	case strings.HasPrefix(term, "screen"):
		seq = seq.Screen()
	}
	_, err := seq.WriteTo(w)
	return err
}

func openTTY() (io.WriteCloser, error) {
	return os.OpenFile("/dev/tty", os.O_WRONLY, 0)
}
