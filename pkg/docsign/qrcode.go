package docsign

import (
	"fmt"
	"image"

	"github.com/skip2/go-qrcode"
)

// GenerateQRCodeImage encodes link as a square QR code of size x size pixels.
// A blank quiet zone is not needed, the page margin already provides one.
func GenerateQRCodeImage(link string, size int) (image.Image, error) {
	qr, err := qrcode.New(link, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	qr.DisableBorder = true

	return qr.Image(size), nil
}
