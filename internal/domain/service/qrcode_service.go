package service

// QRCodeService renders text, typically an authorization URL, as a QR code
type QRCodeService interface {
	// RenderTerminal returns the QR code drawn with block characters
	RenderTerminal(content string) (string, error)

	// GeneratePNG returns the QR code as PNG bytes
	GeneratePNG(content string) ([]byte, error)
}
