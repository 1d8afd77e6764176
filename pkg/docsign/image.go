package docsign

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

const dataURLImagePrefix = "data:image/"

// Largest decoded image accepted, in pixels. Signatures are drawn into a slot a few cm wide.
const maxImagePixels = 4096 * 4096

// RasterImage is a decoded signature image.
type RasterImage struct {
	// Format as reported by the image codec, e.g. "png"
	Format string
	Data   []byte
	Width  int
	Height int
	Image  image.Image
}

// Browsers and canvas libraries disagree on padding and alphabet, so try the common variants.
var base64Encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

func decodeBase64(payload string) ([]byte, error) {
	payload = strings.Join(strings.Fields(payload), "")

	var firstErr error
	for _, enc := range base64Encodings {
		data, err := enc.DecodeString(payload)
		if err == nil {
			return data, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}

// DecodeDataURL decodes a "data:image/<fmt>;base64,<payload>" string into a raster image.
// Every failure wraps ErrInvalidImageData.
func DecodeDataURL(dataURL string) (*RasterImage, error) {
	header, payload, found := strings.Cut(dataURL, ",")
	if !found || !strings.HasPrefix(header, dataURLImagePrefix) || !strings.HasSuffix(header, ";base64") {
		return nil, fmt.Errorf("%w: expected %s<fmt>;base64,<payload>", ErrInvalidImageData, dataURLImagePrefix)
	}

	data, err := decodeBase64(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding base64 payload: %v", ErrInvalidImageData, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidImageData)
	}

	// reject oversized images from the header before the pixel buffer is allocated
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding image header: %v", ErrInvalidImageData, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: image has no pixels", ErrInvalidImageData)
	}
	if cfg.Width > maxImagePixels/cfg.Height {
		return nil, fmt.Errorf("%w: image of %dx%d exceeds %d pixels", ErrInvalidImageData, cfg.Width, cfg.Height, maxImagePixels)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding image: %v", ErrInvalidImageData, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("%w: image has no pixels", ErrInvalidImageData)
	}

	return &RasterImage{
		Format: format,
		Data:   data,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Image:  img,
	}, nil
}
