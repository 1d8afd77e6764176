package docsign

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"
)

/*
 * Attention: tdewolff/canvas uses mm as the unit of measurement. The layout is described in PDF
 * user space units (px at 72 DPI, origin bottom-left) and converted to mm while drawing.
 */

const DPI = 72

// Converts pixels to millimeters
func pxToMM(px float64) float64 {
	return (px * 25.4) / DPI
}

type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

// Slot order of OverlaySpec.Panels and OverlaySpec.Signers
var slotSides = [2]Side{SideA, SideB}

// SignatureInput is one signer slot. Image and Name are both optional.
type SignatureInput struct {
	Side  Side
	Image *RasterImage
	// Name is drawn as is, shape it before building the OverlaySpec
	Name string
}

func (si SignatureInput) IsEmpty() bool {
	return si.Image == nil && si.Name == ""
}

// Panel is a bordered signer region, X and Y locate its bottom-left corner.
type Panel struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (p Panel) Top() float64 {
	return p.Y + p.Height
}

func (p Panel) CenterX() float64 {
	return p.X + p.Width/2
}

// OverlaySpec describes one signature page. Build it with NewOverlaySpec and do not modify it afterwards.
type OverlaySpec struct {
	PageWidth  float64
	PageHeight float64
	// Panels[0] belongs to Signers[0] (party A), Panels[1] to Signers[1] (party B)
	Panels    [2]Panel
	Signers   [2]SignatureInput
	Fonts     FontCapability
	Layout    Layout
	Timestamp string
	// VerificationURL is encoded as a QR code when the layout enables it
	VerificationURL string
}

func NewOverlaySpec(fonts FontCapability, layout Layout, a, b SignatureInput, now time.Time) OverlaySpec {
	a.Side = SideA
	b.Side = SideB

	panelY := (PageHeight - panelHeight) / 2

	return OverlaySpec{
		PageWidth:  PageWidth,
		PageHeight: PageHeight,
		Panels: [2]Panel{
			{X: leftPanelX, Y: panelY, Width: panelWidth, Height: panelHeight},
			{X: rightPanelX, Y: panelY, Width: panelWidth, Height: panelHeight},
		},
		Signers:   [2]SignatureInput{a, b},
		Fonts:     fonts,
		Layout:    layout,
		Timestamp: now.Format(timestampFormat),
	}
}

// RenderedOverlayPage is a single page PDF holding the signature layer.
type RenderedOverlayPage struct {
	Bytes []byte
	// Sides whose image made it onto the page
	DrawnImages []Side
}

type overlayRenderer struct {
	ctx          *canvas.Context
	fontFamily   *canvas.FontFamily
	fullCoverage bool
}

func (r *overlayRenderer) face(size float64, weight FontWeight) *canvas.FontFace {
	return r.fontFamily.Face(size, canvas.Black, weight.FontStyle(), canvas.FontNormal)
}

// drawCenteredText draws text with its horizontal center on centerX and its baseline on y.
func (r *overlayRenderer) drawCenteredText(text string, size float64, weight FontWeight, centerX, y float64) {
	text = Shape(text, r.fullCoverage)
	if text == "" {
		return
	}

	face := r.face(size, weight)
	textWidthMM := face.TextWidth(text)
	r.ctx.DrawText(pxToMM(centerX)-textWidthMM/2, pxToMM(y), canvas.NewTextLine(face, text, canvas.Left))
}

func (r *overlayRenderer) strokePath(x, y float64, path *canvas.Path, width float64) {
	r.ctx.Push()
	defer r.ctx.Pop()

	r.ctx.SetFillColor(canvas.Transparent)
	r.ctx.SetStrokeColor(canvas.Black)
	r.ctx.SetStrokeWidth(pxToMM(width))
	r.ctx.DrawPath(pxToMM(x), pxToMM(y), path)
}

func (r *overlayRenderer) drawHeader(spec OverlaySpec, panelTop float64) {
	centerX := spec.PageWidth / 2

	if spec.Layout.Title != "" {
		r.drawCenteredText(spec.Layout.Title, titleFontSize, FontWeightBold, centerX, panelTop+70)
	}
	if spec.Layout.Subtitle != "" {
		r.drawCenteredText(spec.Layout.Subtitle, subtitleSize, FontWeightRegular, centerX, panelTop+50)
	}

	divider := &canvas.Path{}
	divider.MoveTo(0, 0)
	divider.LineTo(pxToMM(spec.PageWidth-2*leftPanelX), 0)
	r.strokePath(leftPanelX, panelTop+30, divider, 1)
}

// fitImage scales an image of pxW x pxH to the given width, then shrinks it to maxHeight if needed.
// The aspect ratio is always preserved.
func fitImage(pxW, pxH int, width, maxHeight float64) (w, h float64) {
	w = width
	h = width * float64(pxH) / float64(pxW)
	if h > maxHeight {
		h = maxHeight
		w = maxHeight * float64(pxW) / float64(pxH)
	}
	return w, h
}

// drawImage places img horizontally centered on centerX with its top edge on topY.
func (r *overlayRenderer) drawImage(img image.Image, centerX, topY float64) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("drawing image: %v", rec)
		}
	}()

	if img == nil {
		return errors.New("image is not decoded")
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return errors.New("image has no pixels")
	}

	w, h := fitImage(bounds.Dx(), bounds.Dy(), imageWidth, imageMaxHeight)
	dpmm := float64(bounds.Dx()) / pxToMM(w)
	r.ctx.DrawImage(pxToMM(centerX-w/2), pxToMM(topY-h), img, canvas.DPMM(dpmm))
	return nil
}

func (r *overlayRenderer) drawPanel(panel Panel, label string, signer SignatureInput) (bool, error) {
	r.strokePath(panel.X, panel.Y, canvas.Rectangle(pxToMM(panel.Width), pxToMM(panel.Height)), 1)

	labelY := panel.Top() - 22
	r.drawCenteredText(label, labelFontSize, FontWeightBold, panel.CenterX(), labelY)

	var drawErr error
	drawn := false
	if signer.Image != nil {
		if err := r.drawImage(signer.Image.Image, panel.CenterX(), labelY-12); err != nil {
			drawErr = err
		} else {
			drawn = true
		}
	}

	if signer.Name != "" {
		r.drawCenteredText(signer.Name, nameFontSize, FontWeightRegular, panel.CenterX(), panel.Y+22)
	}

	return drawn, drawErr
}

func (r *overlayRenderer) drawTimestamp(spec OverlaySpec) {
	text := spec.Timestamp
	if spec.Layout.TimestampLabel != "" {
		text = fmt.Sprintf("%s: %s", spec.Layout.TimestampLabel, spec.Timestamp)
	}
	r.drawCenteredText(text, timestampSize, FontWeightRegular, spec.PageWidth/2, timestampY)
}

func (r *overlayRenderer) drawQRCode(spec OverlaySpec) error {
	img, err := GenerateQRCodeImage(spec.VerificationURL, 256)
	if err != nil {
		return err
	}

	left := spec.PageWidth - leftPanelX - qrCodeSize
	dpmm := float64(img.Bounds().Dx()) / pxToMM(qrCodeSize)
	r.ctx.DrawImage(pxToMM(left), pxToMM(timestampY-20), img, canvas.DPMM(dpmm))
	return nil
}

// Render draws the signature page described by spec. It has no side effects: problems with a single image
// are returned as warnings and the page is rendered without it. Only a failure to produce the page at all
// is returned as an error wrapping ErrRender.
func Render(spec OverlaySpec) (*RenderedOverlayPage, []Warning, error) {
	fontFamily, err := spec.Fonts.loadFontFamily()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	if spec.PageWidth <= 0 || spec.PageHeight <= 0 {
		return nil, nil, fmt.Errorf("%w: invalid page size %.0fx%.0f", ErrRender, spec.PageWidth, spec.PageHeight)
	}

	c := canvas.New(pxToMM(spec.PageWidth), pxToMM(spec.PageHeight))
	r := &overlayRenderer{
		ctx:          canvas.NewContext(c),
		fontFamily:   fontFamily,
		fullCoverage: spec.Fonts.FullCoverage,
	}

	var warnings []Warning
	page := &RenderedOverlayPage{}

	r.drawHeader(spec, spec.Panels[0].Top())

	for i, panel := range spec.Panels {
		side := slotSides[i]
		drawn, err := r.drawPanel(panel, spec.Layout.label(side), spec.Signers[i])
		if err != nil {
			warnings = append(warnings, Warning{Side: side, Err: fmt.Errorf("%w: %v", ErrInvalidImageData, err)})
		}
		if drawn {
			page.DrawnImages = append(page.DrawnImages, side)
		}
	}

	r.drawTimestamp(spec)

	if spec.Layout.ShowQRCode && spec.VerificationURL != "" {
		if err := r.drawQRCode(spec); err != nil {
			warnings = append(warnings, Warning{Err: fmt.Errorf("drawing QR code: %w", err)})
		}
	}

	var buf bytes.Buffer
	if err := c.Write(&buf, renderers.PDF()); err != nil {
		return nil, warnings, fmt.Errorf("%w: writing page: %v", ErrRender, err)
	}
	if buf.Len() == 0 {
		return nil, warnings, fmt.Errorf("%w: empty page output", ErrRender)
	}

	page.Bytes = buf.Bytes()
	return page, warnings, nil
}
