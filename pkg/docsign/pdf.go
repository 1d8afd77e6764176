package docsign

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

var pdfHeader = []byte("%PDF-")

func init() {
	// pdfcpu would otherwise create its config dir under the user's home on first use
	api.DisableConfigDir()
}

func newPdfConfig() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// HasPdfHeader reports whether data starts with the PDF file marker.
func HasPdfHeader(data []byte) bool {
	return bytes.HasPrefix(data, pdfHeader)
}

func ValidatePdf(rs io.ReadSeeker) error {
	return api.Validate(rs, newPdfConfig())
}

func GetPageCount(rs io.ReadSeeker) (int, error) {
	return api.PageCount(rs, newPdfConfig())
}

// GetPdfPageSize returns the width and height of a page in px (PDF user space units).
func GetPdfPageSize(rs io.ReadSeeker, pageNr int) (float64, float64, error) {
	dims, err := api.PageDims(rs, newPdfConfig())
	if err != nil {
		return 0, 0, err
	}

	if pageNr < 1 || pageNr > len(dims) {
		return 0, 0, fmt.Errorf("page %d out of range (1-%d)", pageNr, len(dims))
	}

	return dims[pageNr-1].Width, dims[pageNr-1].Height, nil
}

// Stamp the first page of overlayFile on top of page pageNr of rs.
// Every other page is copied unchanged.
func stampPdfPage(rs io.ReadSeeker, w io.Writer, pageNr int, overlayFile string) error {
	// In pdfcpu, scale is relative to the target page so an A4 overlay fits any page size
	// For rotation, it is in degree, default is 45 degree
	description := "pos:c, scale:1 rel, rotation:0"
	onTop := true
	selectedPages := []string{strconv.Itoa(pageNr)}

	wm, err := api.PDFWatermark(overlayFile+":1", description, onTop, false, types.POINTS)
	if err != nil {
		return fmt.Errorf("failed to build overlay watermark: %w", err)
	}

	if err := api.AddWatermarks(rs, w, selectedPages, wm, newPdfConfig()); err != nil {
		return fmt.Errorf("failed to stamp overlay on page %d: %w", pageNr, err)
	}
	return nil
}

// Concatenate docs in order into w.
func appendPdf(w io.Writer, docs ...io.ReadSeeker) error {
	if err := api.MergeRaw(docs, w, false, newPdfConfig()); err != nil {
		return fmt.Errorf("failed to append overlay page: %w", err)
	}
	return nil
}
