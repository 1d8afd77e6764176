package docsign

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
)

var shapeSamples = []string{
	"",
	"Jane Doe",
	"Nguyễn Văn Đức",
	"François Müller",
	"Łukasz Żółć",
	"Søren Ærø",
	"कि",
	"a\u20dd b",
}

func TestShapeWithFullCoverageFont(t *testing.T) {
	for _, text := range shapeSamples {
		once := Shape(text, true)
		assert.Equal(t, text, once)
		assert.Equal(t, once, Shape(once, true))
	}
}

func TestShapeWithoutFont(t *testing.T) {
	for _, text := range shapeSamples {
		once := Shape(text, false)
		assert.Equal(t, once, Shape(once, false), "shaping %q twice", text)

		for _, r := range once {
			assert.False(t, unicode.Is(unicode.M, r), "combining mark left in %q", once)
		}
	}

	assert.Equal(t, "Nguyen Van Duc", Shape("Nguyễn Văn Đức", false))
	assert.Equal(t, "Francois Muller", Shape("François Müller", false))
	assert.Equal(t, "Jane Doe", Shape("Jane Doe", false))
	// spacing and enclosing marks go too
	assert.Equal(t, "\u0915", Shape("\u0915\u093f", false))
	assert.Equal(t, "ab", Shape("a\u20ddb", false))
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "Jane Doe", normalizeName("  Jane\r\nDoe \n"))
	assert.Equal(t, "", normalizeName("\n\n"))
}
