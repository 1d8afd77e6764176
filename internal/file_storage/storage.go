package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/SeakMengs/DocSign/internal/util"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrInvalidID = errors.New("invalid document id")
)

// Store keeps PDF documents addressed by ids from util.GenerateDocumentID.
type Store interface {
	Put(ctx context.Context, id string, r io.Reader, size int64) error
	// Get returns ErrNotFound when no document is stored under id.
	Get(ctx context.Context, id string) (io.ReadCloser, error)
	Exists(ctx context.Context, id string) (bool, error)
}

func checkID(id string) error {
	if !util.IsDocumentID(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// ReadAll loads the whole document stored under id.
func ReadAll(ctx context.Context, s Store, id string) ([]byte, error) {
	rc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", id, err)
	}
	return data, nil
}
