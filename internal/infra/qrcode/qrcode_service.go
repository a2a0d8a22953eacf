package qrcode

import (
	"strings"

	"dashcam/internal/domain/service"
	"dashcam/internal/errors"

	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch strings.ToUpper(errorCorrectionLevel) {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// RenderTerminal draws content with half-block characters so a phone camera can scan it from the terminal
func (s *qrcodeService) RenderTerminal(content string) (string, error) {
	qr, err := s.encode(content)
	if err != nil {
		return "", err
	}

	return qr.ToSmallString(false), nil
}

// GeneratePNG encodes content as a square PNG of the configured size
func (s *qrcodeService) GeneratePNG(content string) ([]byte, error) {
	qr, err := s.encode(content)
	if err != nil {
		return nil, err
	}

	pngBytes, err := qr.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

func (s *qrcodeService) encode(content string) (*qrcode.QRCode, error) {
	if content == "" {
		return nil, errors.New("QR code content is empty")
	}

	qr, err := qrcode.New(content, s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	return qr, nil
}
