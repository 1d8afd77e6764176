package docsign

import (
	"errors"
	"fmt"
)

var (
	// Recoverable: the signer's image is omitted and a Warning is reported.
	ErrInvalidImageData = errors.New("invalid image data")

	ErrRender                  = errors.New("failed to render signature overlay")
	ErrEmptyDocument           = errors.New("document has no pages")
	ErrMalformedSourceDocument = errors.New("malformed source document")
	ErrSerializationIntegrity  = errors.New("signed document failed integrity check")
)

// Warning is a non-fatal problem that degraded the rendered overlay.
// Side is empty when the problem is not tied to a signer slot.
type Warning struct {
	Side Side  `json:"side,omitempty"`
	Err  error `json:"-"`
}

func (w Warning) Error() string {
	if w.Side == "" {
		return fmt.Sprintf("overlay: %v", w.Err)
	}
	return fmt.Sprintf("signer %s: %v", w.Side, w.Err)
}

func (w Warning) Unwrap() error {
	return w.Err
}
