package docsign

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/SeakMengs/DocSign/pkg/docsign/docsigntest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSigner(t *testing.T) (*Signer, *int) {
	t.Helper()

	cfg := NewDefaultConfig()
	cfg.TmpDir = t.TempDir()

	s := NewSigner(cfg, FallbackFontCapability(), DefaultLayout())
	s.now = func() time.Time { return fixedNow }

	renders := 0
	s.render = func(spec OverlaySpec) (*RenderedOverlayPage, []Warning, error) {
		renders++
		return Render(spec)
	}
	return s, &renders
}

func TestSignDocumentEmptyDocument(t *testing.T) {
	s, renders := newTestSigner(t)

	_, err := s.SignDocument(context.Background(), docsigntest.EmptyPdf(), &SignerRequest{Name: "Jane"}, nil, ModeAppend)

	assert.ErrorIs(t, err, ErrEmptyDocument)
	assert.Zero(t, *renders, "render must not run for an empty document")
}

func TestSignDocumentMalformedSource(t *testing.T) {
	tests := []struct {
		name   string
		source []byte
	}{
		{name: "empty", source: nil},
		{name: "no header", source: []byte("hello, this is not a document")},
		{name: "header only", source: []byte("%PDF-1.7\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, renders := newTestSigner(t)

			_, err := s.SignDocument(context.Background(), tt.source, &SignerRequest{Name: "Jane"}, nil, ModeMerge)

			assert.ErrorIs(t, err, ErrMalformedSourceDocument)
			assert.Zero(t, *renders)

			entries, err := os.ReadDir(s.compositor.TmpDir)
			require.NoError(t, err)
			assert.Empty(t, entries, "nothing may be written for a rejected source")
		})
	}
}

func TestSignDocumentCorruptImageForA(t *testing.T) {
	s, _ := newTestSigner(t)
	source := docsigntest.NewPdf(t, 2)

	a := &SignerRequest{ImageDataURL: docsigntest.CorruptDataURL, Name: "Jane"}
	b := &SignerRequest{ImageDataURL: docsigntest.PNGDataURL(t, 200, 80), Name: "John"}

	result, err := s.SignDocument(context.Background(), source, a, b, ModeAppend)
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, SideA, result.Warnings[0].Side)
	assert.ErrorIs(t, result.Warnings[0], ErrInvalidImageData)
	assert.Equal(t, []Side{SideB}, result.DrawnImages)
	assert.Equal(t, 3, result.PageCount)

	pages, err := ReadSourcePages(result.Bytes)
	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, 1, pages[2].ImageCount())
}

func TestSignDocumentRoundTrip(t *testing.T) {
	for _, mode := range []Mode{ModeAppend, ModeMerge} {
		t.Run(mode.String(), func(t *testing.T) {
			s, renders := newTestSigner(t)
			source := docsigntest.NewPdf(t, 2)

			result, err := s.SignDocument(context.Background(), source, &SignerRequest{Name: "Jane"}, nil, mode,
				WithVerificationURL("http://localhost:1046/view/1700000000_abcdefgh"))
			require.NoError(t, err)
			assert.Equal(t, 1, *renders)
			assert.Empty(t, result.Warnings)

			pageCount, err := GetPageCount(bytes.NewReader(result.Bytes))
			require.NoError(t, err)
			assert.Equal(t, result.PageCount, pageCount)

			if mode == ModeAppend {
				assert.Equal(t, 3, pageCount)
			} else {
				assert.Equal(t, 2, pageCount)
			}
		})
	}
}

func TestSignDocumentWithoutSigners(t *testing.T) {
	s, _ := newTestSigner(t)

	result, err := s.SignDocument(context.Background(), docsigntest.NewPdf(t, 1), nil, nil, ModeAppend)
	require.NoError(t, err)

	assert.Equal(t, 2, result.PageCount)
	assert.Empty(t, result.DrawnImages)
}

func TestSignDocumentRenderFailure(t *testing.T) {
	s, _ := newTestSigner(t)
	s.render = func(OverlaySpec) (*RenderedOverlayPage, []Warning, error) {
		return nil, nil, errors.New("no canvas")
	}

	_, err := s.SignDocument(context.Background(), docsigntest.NewPdf(t, 1), nil, nil, ModeAppend)
	assert.ErrorIs(t, err, ErrRender)
}

func TestSignDocumentCanceled(t *testing.T) {
	s, renders := newTestSigner(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.SignDocument(ctx, docsigntest.NewPdf(t, 1), nil, nil, ModeAppend)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, *renders)
}

func TestLoadSigner(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.FontDir = t.TempDir()
	cfg.LayoutPath = ""

	s, problems, err := LoadSigner(cfg)
	require.NoError(t, err)

	assert.Empty(t, problems)
	assert.False(t, s.Fonts().FullCoverage)
}
