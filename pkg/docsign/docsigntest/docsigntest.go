// Package docsigntest builds small in-memory documents and images for tests.
package docsigntest

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
)

// A4 in mm
const (
	pageWidthMM  = 210.0
	pageHeightMM = 297.0
)

// NewPdf returns a document of n A4 pages, every page draws a different rectangle
// so their content streams differ. n must be at least 1.
func NewPdf(tb testing.TB, n int) []byte {
	tb.Helper()
	require.GreaterOrEqual(tb, n, 1, "use EmptyPdf for a document without pages")

	var buf bytes.Buffer
	var p *pdf.PDF
	for i := 0; i < n; i++ {
		c := canvas.New(pageWidthMM, pageHeightMM)
		ctx := canvas.NewContext(c)
		ctx.SetFillColor(canvas.Black)
		ctx.DrawPath(20, 20+float64(i)*10, canvas.Rectangle(40+float64(i)*5, 30))

		if p == nil {
			p = pdf.New(&buf, c.W, c.H, nil)
		} else {
			p.NewPage(c.W, c.H)
		}
		c.RenderTo(p)
	}
	require.NoError(tb, p.Close())

	return buf.Bytes()
}

// EmptyPdf returns a well-formed document whose page tree has no pages.
func EmptyPdf() []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [] /Count 0 >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, offset := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offset)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

// NewImage returns a w x h image with a dark diagonal stroke on white.
func NewImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	for x := 0; x < w; x++ {
		img.Set(x, x*h/w, color.Black)
	}
	return img
}

func EncodePNG(tb testing.TB, img image.Image) []byte {
	tb.Helper()

	var buf bytes.Buffer
	require.NoError(tb, png.Encode(&buf, img))
	return buf.Bytes()
}

// PNGDataURL returns a data:image/png;base64 URL of a w x h image.
func PNGDataURL(tb testing.TB, w, h int) string {
	tb.Helper()
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(EncodePNG(tb, NewImage(w, h)))
}

// CorruptDataURL has a valid header and a truncated PNG payload.
const CorruptDataURL = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAA"
