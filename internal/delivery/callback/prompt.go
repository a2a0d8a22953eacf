package callback

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"dashcam/internal/domain/service"
)

// TerminalPrompter prints the consent URL and a scannable QR code
type TerminalPrompter struct {
	out    io.Writer
	qr     service.QRCodeService
	logger *slog.Logger
}

// NewTerminalPrompter creates a prompter writing to out. qr may be nil.
func NewTerminalPrompter(out io.Writer, qr service.QRCodeService, logger *slog.Logger) *TerminalPrompter {
	return &TerminalPrompter{
		out:    out,
		qr:     qr,
		logger: logger,
	}
}

// PromptAuthorization shows authURL. A failing QR render only loses the picture.
func (p *TerminalPrompter) PromptAuthorization(_ context.Context, authURL string) error {
	if _, err := fmt.Fprintf(p.out, "Open this address to sign in:\n\n  %s\n\n", authURL); err != nil {
		return err
	}

	if p.qr == nil {
		return nil
	}

	art, err := p.qr.RenderTerminal(authURL)
	if err != nil {
		p.logger.Warn("Rendering QR code failed", slog.Any("error", err))

		return nil
	}

	_, err = fmt.Fprintf(p.out, "Or scan it with your phone:\n\n%s\n", art)

	return err
}
