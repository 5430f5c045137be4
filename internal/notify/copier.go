package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"seekterm/internal/domain"
)

// ErrNoIdentifier is returned when a record has nothing to copy
var ErrNoIdentifier = errors.New("no identifier")

// Copy notifications
const (
	NoIdentifierMessage = "No link available for this result"
	CopiedMessage       = "Link copied to clipboard"
	CopyFailedMessage   = "Failed to copy link"
)

// Copier copies record identifiers and reports the outcome as a notification
type Copier struct {
	clip     Clipboard
	notifier *Notifier
	log      *zap.Logger
}

// NewCopier creates a copier
func NewCopier(clip Clipboard, notifier *Notifier, log *zap.Logger) *Copier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Copier{clip: clip, notifier: notifier, log: log.Named("copier")}
}

// CopyIdentifier places id on the clipboard. An absent id shows a failure
// notification without touching the clipboard.
func (c *Copier) CopyIdentifier(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		c.notifier.Show(domain.NotifyError, NoIdentifierMessage)
		return ErrNoIdentifier
	}

	if err := c.clip.WriteText(ctx, id); err != nil {
		c.log.Warn("clipboard write failed", zap.Error(err))
		c.notifier.Show(domain.NotifyError, CopyFailedMessage)
		if errors.Is(err, ErrClipboardUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrClipboardUnavailable, err)
	}

	c.notifier.Show(domain.NotifySuccess, CopiedMessage)
	return nil
}
