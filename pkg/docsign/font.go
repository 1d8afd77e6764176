package docsign

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

type FontWeight string

const (
	FontWeightRegular FontWeight = "regular"
	FontWeightBold    FontWeight = "bold"
)

// Get font weight of canvas type
func (w FontWeight) FontStyle() canvas.FontStyle {
	switch w {
	case FontWeightBold:
		return canvas.FontBold
	default:
		return canvas.FontRegular
	}
}

// FontFamilyFiles names the well-known files of one embeddable family inside the fonts directory.
type FontFamilyFiles struct {
	Name    string
	Regular string
	Bold    string
}

// Probe order: primary family first, then the secondary fallback family.
var FontSearchOrder = []FontFamilyFiles{
	{Name: "DejaVu Sans", Regular: "DejaVuSans.ttf", Bold: "DejaVuSans-Bold.ttf"},
	{Name: "Noto Sans", Regular: "NotoSans-Regular.ttf", Bold: "NotoSans-Bold.ttf"},
}

const fallbackFamilyName = "Go"

// FontCapability is decided once at startup and never mutated afterwards,
// it is safe to share between concurrent sign requests.
type FontCapability struct {
	// FullCoverage reports whether a family able to draw diacritics was found.
	FullCoverage bool
	Family       string
	// Dir where the family was found, empty for the embedded fallback
	Dir     string
	regular []byte
	bold    []byte
}

// FallbackFontCapability uses the embedded Go fonts, names are ASCII-folded before drawing.
func FallbackFontCapability() FontCapability {
	return FontCapability{
		FullCoverage: false,
		Family:       fallbackFamilyName,
		regular:      goregular.TTF,
		bold:         gobold.TTF,
	}
}

// ProbeFonts looks for the families of FontSearchOrder in dir. Missing files are not an error,
// they only downgrade the capability. The returned errors describe files that exist but could not
// be used and are meant for logging.
func ProbeFonts(dir string) (FontCapability, []error) {
	var problems []error

	for _, family := range FontSearchOrder {
		regular, err := readFontFile(filepath.Join(dir, family.Regular))
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				problems = append(problems, err)
			}
			continue
		}

		bold, err := readFontFile(filepath.Join(dir, family.Bold))
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				problems = append(problems, err)
			}
			// a family without its bold face still covers every glyph
			bold = regular
		}

		return FontCapability{
			FullCoverage: true,
			Family:       family.Name,
			Dir:          dir,
			regular:      regular,
			bold:         bold,
		}, problems
	}

	return FallbackFontCapability(), problems
}

func readFontFile(path string) ([]byte, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if _, err := sfnt.Parse(fontBytes); err != nil {
		return nil, fmt.Errorf("parsing font %s: %w", path, err)
	}

	return fontBytes, nil
}

// loadFontFamily builds a canvas font family for a single render call.
func (fc FontCapability) loadFontFamily() (*canvas.FontFamily, error) {
	if len(fc.regular) == 0 {
		fc = FallbackFontCapability()
	}

	fontFamily := canvas.NewFontFamily(fc.Family)
	if err := fontFamily.LoadFont(fc.regular, 0, FontWeightRegular.FontStyle()); err != nil {
		return nil, fmt.Errorf("failed to load regular font: %w", err)
	}
	if err := fontFamily.LoadFont(fc.bold, 0, FontWeightBold.FontStyle()); err != nil {
		return nil, fmt.Errorf("failed to load bold font: %w", err)
	}

	return fontFamily, nil
}

type FontMetadata struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

func getFontMetadataByPath(fontPath string) (*FontMetadata, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	font, err := sfnt.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}

	name, err := font.Name(nil, sfnt.NameIDFamily)
	if err != nil {
		return nil, fmt.Errorf("retrieving font name: %w", err)
	}

	return &FontMetadata{
		Name: name,
		Path: fontPath,
	}, nil
}

// Scan through the directory to process .ttf and .otf files.
// Files that fail to parse are returned in skipped instead of aborting the scan.
func ScanFontDir(dir string) (fonts []FontMetadata, skipped []error, err error) {
	err = filepath.Walk(dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(info.Name()))
		if ext != ".ttf" && ext != ".otf" {
			return nil
		}

		meta, err := getFontMetadataByPath(path)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("skipping %q: %w", path, err))
			return nil
		}

		fonts = append(fonts, *meta)
		return nil
	})
	if err != nil {
		return nil, skipped, err
	}

	return fonts, skipped, nil
}
