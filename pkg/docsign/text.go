package docsign

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Letters that carry a stroke or ligature instead of a combining mark, so NFD leaves them intact.
var asciiFolder = strings.NewReplacer(
	"đ", "d", "Đ", "D",
	"ł", "l", "Ł", "L",
	"ø", "o", "Ø", "O",
	"ß", "ss",
	"æ", "ae", "Æ", "AE",
	"œ", "oe", "Œ", "OE",
)

var lineBreaks = regexp.MustCompile(`[\r\n]+`)

// Shape prepares text for drawing. With a full-coverage font the text is returned unchanged.
// Without one, diacritics are dropped: the text is decomposed (NFD), combining marks of every kind are removed
// and the result is recomposed, so "Nguyễn Văn Đức" becomes "Nguyen Van Duc".
func Shape(text string, fontAvailable bool) string {
	if fontAvailable {
		return text
	}

	// transform.Chain keeps state, build one per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.M)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}

	return asciiFolder.Replace(folded)
}

// Names come from free-form inputs, keep them on a single line.
func normalizeName(name string) string {
	return strings.TrimSpace(lineBreaks.ReplaceAllString(name, " "))
}
