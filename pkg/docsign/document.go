package docsign

import (
	"bytes"
	"fmt"
	"io"

	"github.com/digitorus/pdf"
)

// PageResource is a named entry of a page's resource dictionary.
type PageResource struct {
	// Kind is the resource category, e.g. "Font" or "XObject"
	Kind    string
	Name    string
	Subtype string
}

// SourcePage is a read-only view of one page of a parsed document.
type SourcePage struct {
	// 0-based
	Index int
	// Decoded content stream, multiple streams are joined with a newline
	Content   []byte
	Resources []PageResource
}

// ImageCount returns how many image XObjects the page references.
func (sp SourcePage) ImageCount() int {
	count := 0
	for _, res := range sp.Resources {
		if res.Kind == "XObject" && res.Subtype == "Image" {
			count++
		}
	}
	return count
}

var resourceKinds = []string{"Font", "XObject"}

func openSource(data []byte) (r *pdf.Reader, err error) {
	// the reader panics on some broken object graphs instead of returning an error
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrMalformedSourceDocument, rec)
		}
	}()

	r, err = pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSourceDocument, err)
	}
	return r, nil
}

func countSourcePages(data []byte) (n int, err error) {
	r, err := openSource(data)
	if err != nil {
		return 0, err
	}

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrMalformedSourceDocument, rec)
		}
	}()
	return r.NumPage(), nil
}

// ReadSourcePages parses data and returns its pages in document order.
func ReadSourcePages(data []byte) (pages []SourcePage, err error) {
	r, err := openSource(data)
	if err != nil {
		return nil, err
	}

	defer func() {
		if rec := recover(); rec != nil {
			pages = nil
			err = fmt.Errorf("%w: %v", ErrMalformedSourceDocument, rec)
		}
	}()

	numPages := r.NumPage()
	pages = make([]SourcePage, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			return nil, fmt.Errorf("%w: page %d not found", ErrMalformedSourceDocument, i)
		}

		content, err := readPageContent(page.V.Key("Contents"))
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrMalformedSourceDocument, i, err)
		}

		pages = append(pages, SourcePage{
			Index:     i - 1,
			Content:   content,
			Resources: pageResources(page),
		})
	}

	return pages, nil
}

func readPageContent(contents pdf.Value) ([]byte, error) {
	if contents.IsNull() {
		return nil, nil
	}

	var buf bytes.Buffer
	if contents.Kind() == pdf.Array {
		for i := 0; i < contents.Len(); i++ {
			if err := copyStream(&buf, contents.Index(i)); err != nil {
				return nil, err
			}
			buf.WriteString("\n")
		}
		return buf.Bytes(), nil
	}

	if err := copyStream(&buf, contents); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func copyStream(w io.Writer, stream pdf.Value) error {
	reader := stream.Reader()
	if reader == nil {
		return nil
	}
	defer reader.Close()

	if _, err := io.Copy(w, reader); err != nil {
		return fmt.Errorf("failed to copy content stream: %w", err)
	}
	return nil
}

func pageResources(page pdf.Page) []PageResource {
	var resources []PageResource

	dict := page.Resources()
	for _, kind := range resourceKinds {
		entries := dict.Key(kind)
		for _, name := range entries.Keys() {
			resources = append(resources, PageResource{
				Kind:    kind,
				Name:    name,
				Subtype: entries.Key(name).Key("Subtype").Name(),
			})
		}
	}

	return resources
}
