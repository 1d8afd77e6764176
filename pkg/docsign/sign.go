package docsign

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"
)

// SignerRequest is the raw input of one signer slot, both fields are optional.
type SignerRequest struct {
	// data:image/<format>;base64,<payload>
	ImageDataURL string
	Name         string
}

type SignResult struct {
	Bytes     []byte
	PageCount int
	// Non-fatal problems, the document was still produced
	Warnings []Warning
	// Sides whose image is present on the signature page
	DrawnImages []Side
}

type SignOption func(*signOptions)

type signOptions struct {
	verificationURL string
}

// WithVerificationURL draws url as a QR code on the signature page when the layout allows it.
func WithVerificationURL(url string) SignOption {
	return func(o *signOptions) {
		o.verificationURL = url
	}
}

type renderFunc func(spec OverlaySpec) (*RenderedOverlayPage, []Warning, error)

// Signer holds the state shared by all sign calls. It is safe for concurrent use.
type Signer struct {
	fonts       FontCapability
	layout      Layout
	compositor  Compositor
	defaultMode Mode
	now         func() time.Time
	render      renderFunc
}

func NewSigner(cfg *Config, fonts FontCapability, layout Layout) *Signer {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}

	return &Signer{
		fonts:       fonts,
		layout:      layout,
		compositor:  Compositor{TmpDir: cfg.TmpDir},
		defaultMode: cfg.DefaultMode,
		now:         time.Now,
		render:      Render,
	}
}

// LoadSigner probes the fonts and reads the layout named by cfg. The returned problems are
// font files that exist but could not be used, the signer falls back without them.
func LoadSigner(cfg *Config) (*Signer, []error, error) {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}

	fonts, problems := ProbeFonts(cfg.FontDir)

	layout, err := LoadLayout(cfg.LayoutPath)
	if err != nil {
		return nil, problems, err
	}

	return NewSigner(cfg, fonts, layout), problems, nil
}

func (s *Signer) Fonts() FontCapability {
	return s.fonts
}

// DefaultMode is the mode of the config the signer was built from.
func (s *Signer) DefaultMode() Mode {
	return s.defaultMode
}

// SignDocument adds the signature page for a and b (either may be nil) to source.
// Nothing is rendered or written before source has been validated.
func (s *Signer) SignDocument(ctx context.Context, source []byte, a, b *SignerRequest, mode Mode, opts ...SignOption) (*SignResult, error) {
	var o signOptions
	for _, opt := range opts {
		opt(&o)
	}

	pageCount, err := inspectSource(source)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var warnings []Warning
	inputA, warning := s.prepareInput(SideA, a)
	if warning != nil {
		warnings = append(warnings, *warning)
	}
	inputB, warning := s.prepareInput(SideB, b)
	if warning != nil {
		warnings = append(warnings, *warning)
	}

	spec := NewOverlaySpec(s.fonts, s.layout, inputA, inputB, s.now())
	spec.VerificationURL = o.verificationURL

	page, renderWarnings, err := s.render(spec)
	if err != nil {
		if !errors.Is(err, ErrRender) {
			err = fmt.Errorf("%w: %v", ErrRender, err)
		}
		return nil, err
	}
	warnings = append(warnings, renderWarnings...)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := s.compositor.Composite(source, pageCount, page, mode)
	if err != nil {
		return nil, err
	}

	if err := verifyOutput(doc); err != nil {
		return nil, err
	}

	return &SignResult{
		Bytes:       doc.Bytes,
		PageCount:   doc.PageCount,
		Warnings:    warnings,
		DrawnImages: page.DrawnImages,
	}, nil
}

func (s *Signer) prepareInput(side Side, req *SignerRequest) (SignatureInput, *Warning) {
	input := SignatureInput{Side: side}
	if req == nil {
		return input, nil
	}

	input.Name = Shape(normalizeName(req.Name), s.fonts.FullCoverage)

	if req.ImageDataURL == "" {
		return input, nil
	}

	img, err := DecodeDataURL(req.ImageDataURL)
	if err != nil {
		return input, &Warning{Side: side, Err: err}
	}

	input.Image = img
	return input, nil
}

// inspectSource returns the page count of source or why it cannot be signed.
func inspectSource(source []byte) (int, error) {
	if len(source) == 0 {
		return 0, fmt.Errorf("%w: no bytes", ErrMalformedSourceDocument)
	}

	if !HasPdfHeader(source) {
		return 0, fmt.Errorf("%w: missing %%PDF- header", ErrMalformedSourceDocument)
	}

	numPages, err := countSourcePages(source)
	if err != nil {
		return 0, err
	}
	if numPages == 0 {
		return 0, ErrEmptyDocument
	}

	if err := ValidatePdf(bytes.NewReader(source)); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedSourceDocument, err)
	}

	pageCount, err := GetPageCount(bytes.NewReader(source))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedSourceDocument, err)
	}
	if pageCount == 0 {
		return 0, ErrEmptyDocument
	}

	return pageCount, nil
}

// verifyOutput re-parses the composite before it is handed out.
func verifyOutput(doc *OutputDocument) error {
	if doc == nil || !HasPdfHeader(doc.Bytes) {
		return fmt.Errorf("%w: output is not a PDF", ErrSerializationIntegrity)
	}

	if err := ValidatePdf(bytes.NewReader(doc.Bytes)); err != nil {
		return fmt.Errorf("%w: %v", ErrSerializationIntegrity, err)
	}

	pageCount, err := GetPageCount(bytes.NewReader(doc.Bytes))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerializationIntegrity, err)
	}

	if pageCount != doc.PageCount {
		return fmt.Errorf("%w: expected %d pages, got %d", ErrSerializationIntegrity, doc.PageCount, pageCount)
	}

	return nil
}
