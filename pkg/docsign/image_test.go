package docsign

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"
	"image"
	"testing"

	"github.com/SeakMengs/DocSign/pkg/docsign/docsigntest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDataURL(t *testing.T) {
	img, err := DecodeDataURL(docsigntest.PNGDataURL(t, 40, 20))
	require.NoError(t, err)

	assert.Equal(t, "png", img.Format)
	assert.Equal(t, 40, img.Width)
	assert.Equal(t, 20, img.Height)
	assert.NotNil(t, img.Image)
}

func TestDecodeDataURLUnpaddedURLSafe(t *testing.T) {
	payload := base64.RawURLEncoding.EncodeToString(docsigntest.EncodePNG(t, docsigntest.NewImage(7, 5)))

	img, err := DecodeDataURL("data:image/png;base64," + payload)
	require.NoError(t, err)
	assert.Equal(t, 7, img.Width)
}

// PNG holding only a header that declares a w x h truecolor image.
func pngHeaderOnly(w, h uint32) []byte {
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")

	chunk := func(kind string, data []byte) {
		binary.Write(&buf, binary.BigEndian, uint32(len(data)))
		body := append([]byte(kind), data...)
		buf.Write(body)
		binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(body))
	}

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 2 // truecolor
	chunk("IHDR", ihdr)
	chunk("IEND", nil)

	return buf.Bytes()
}

func TestDecodeDataURLTooLarge(t *testing.T) {
	data := pngHeaderOnly(50000, 50000)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err, "header must be a valid png")
	assert.Equal(t, "png", format)
	assert.Equal(t, 50000, cfg.Width)

	img, err := DecodeDataURL("data:image/png;base64," + base64.StdEncoding.EncodeToString(data))
	assert.Nil(t, img)
	assert.ErrorIs(t, err, ErrInvalidImageData)
	assert.ErrorContains(t, err, "exceeds")
}

func TestDecodeDataURLInvalid(t *testing.T) {
	tests := []struct {
		name    string
		dataURL string
	}{
		{name: "empty", dataURL: ""},
		{name: "no comma", dataURL: "data:image/png;base64"},
		{name: "not an image", dataURL: "data:text/plain;base64,aGVsbG8="},
		{name: "not base64", dataURL: "data:image/png,hello"},
		{name: "empty payload", dataURL: "data:image/png;base64,"},
		{name: "truncated payload", dataURL: docsigntest.CorruptDataURL},
		{name: "bytes are not an image", dataURL: "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("not an image"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := DecodeDataURL(tt.dataURL)
			assert.Nil(t, img)
			assert.ErrorIs(t, err, ErrInvalidImageData)
		})
	}
}
