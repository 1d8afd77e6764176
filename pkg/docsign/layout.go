package docsign

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// A4 in PDF user space units (1/72 inch)
const (
	PageWidth  = 595.0
	PageHeight = 842.0
)

// Panel geometry in PDF user space, origin at the bottom-left of the page.
const (
	panelWidth      = 230.0
	panelHeight     = 150.0
	leftPanelX      = 50.0
	rightPanelX     = 315.0
	imageWidth      = 150.0
	imageMaxHeight  = 70.0
	labelFontSize   = 12.0
	nameFontSize    = 11.0
	titleFontSize   = 16.0
	subtitleSize    = 11.0
	timestampSize   = 10.0
	timestampY      = 40.0
	qrCodeSize      = 60.0
	timestampFormat = "02/01/2006"
)

// Layout holds the configurable texts of the signature page.
type Layout struct {
	Title          string `toml:"title"`
	Subtitle       string `toml:"subtitle"`
	PartyALabel    string `toml:"party_a_label"`
	PartyBLabel    string `toml:"party_b_label"`
	TimestampLabel string `toml:"timestamp_label"`
	// Draw a QR code of the view URL when one is supplied
	ShowQRCode bool `toml:"show_qr_code"`
}

func DefaultLayout() Layout {
	return Layout{
		Title:          "Signature Page",
		PartyALabel:    "Party A",
		PartyBLabel:    "Party B",
		TimestampLabel: "Signed on",
		ShowQRCode:     true,
	}
}

// LoadLayout reads a TOML layout file, a missing file yields DefaultLayout.
// Keys absent from the file keep their default value.
func LoadLayout(path string) (Layout, error) {
	layout := DefaultLayout()
	if path == "" {
		return layout, nil
	}

	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return layout, nil
	}
	if err != nil {
		return layout, err
	}

	if _, err := toml.DecodeFile(path, &layout); err != nil {
		return DefaultLayout(), fmt.Errorf("parsing layout %s: %w", path, err)
	}

	return layout, nil
}

func (l Layout) label(side Side) string {
	if side == SideB {
		return l.PartyBLabel
	}
	return l.PartyALabel
}
