package docsign

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattetti/filebuffer"
)

// Mode selects how the overlay page is combined with the source document.
type Mode int

const (
	// ModeAppend adds the overlay as a new last page, existing pages are never touched.
	ModeAppend Mode = iota
	// ModeMerge stamps the overlay on top of the existing last page.
	ModeMerge
)

func (m Mode) String() string {
	switch m {
	case ModeAppend:
		return "append"
	case ModeMerge:
		return "merge"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "append" and "merge", an empty string yields fallback.
func ParseMode(s string, fallback Mode) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return fallback, nil
	case "append":
		return ModeAppend, nil
	case "merge":
		return ModeMerge, nil
	default:
		return fallback, fmt.Errorf("unknown mode %q, expected append or merge", s)
	}
}

// OutputDocument is the signed document. PageCount is the count the composite is expected to have.
type OutputDocument struct {
	Bytes     []byte
	PageCount int
}

type Compositor struct {
	// Parent of the per-call scratch directory, os.TempDir() when empty
	TmpDir string
}

// Composite combines source (already validated, pageCount pages) with overlay.
// The source bytes are never modified.
func (c Compositor) Composite(source []byte, pageCount int, overlay *RenderedOverlayPage, mode Mode) (*OutputDocument, error) {
	if pageCount <= 0 {
		return nil, ErrEmptyDocument
	}

	if overlay == nil || len(overlay.Bytes) == 0 {
		return nil, fmt.Errorf("%w: no overlay page to composite", ErrRender)
	}

	out := filebuffer.New([]byte{})
	expectedPages := pageCount

	switch mode {
	case ModeAppend:
		expectedPages = pageCount + 1
		if err := appendPdf(out, bytes.NewReader(source), bytes.NewReader(overlay.Bytes)); err != nil {
			return nil, err
		}
	case ModeMerge:
		if err := c.merge(source, pageCount, overlay, out); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported composite mode %s", mode)
	}

	return &OutputDocument{
		Bytes:     out.Buff.Bytes(),
		PageCount: expectedPages,
	}, nil
}

func (c Compositor) merge(source []byte, pageCount int, overlay *RenderedOverlayPage, out *filebuffer.Buffer) error {
	if c.TmpDir != "" {
		if err := os.MkdirAll(c.TmpDir, 0755); err != nil {
			return fmt.Errorf("failed to create tmp dir: %w", err)
		}
	}

	// pdfcpu reads watermark pages from a file
	tmpDir, err := os.MkdirTemp(c.TmpDir, "docsign_merge_*")
	if err != nil {
		return fmt.Errorf("failed to create scratch dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	overlayFile := filepath.Join(tmpDir, "overlay.pdf")
	if err := os.WriteFile(overlayFile, overlay.Bytes, 0644); err != nil {
		return fmt.Errorf("failed to write overlay page: %w", err)
	}

	return stampPdfPage(bytes.NewReader(source), out, pageCount, overlayFile)
}
