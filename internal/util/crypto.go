package util

import (
	"fmt"
	"regexp"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const documentIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// <unix seconds>_<8 alphanumeric chars>, e.g. "1700000000_a1B2c3D4"
var documentIDPattern = regexp.MustCompile(`^[0-9]+_[0-9a-zA-Z]{8}$`)

func GenerateNChar(n int) (string, error) {
	id, err := gonanoid.New(n)
	if err != nil {
		return "", err
	}
	return id, nil
}

// GenerateDocumentID returns a new id for a stored document.
func GenerateDocumentID() (string, error) {
	suffix, err := gonanoid.Generate(documentIDAlphabet, 8)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d_%s", time.Now().Unix(), suffix), nil
}

// IsDocumentID reports whether id has the shape produced by GenerateDocumentID.
// Ids are used as file and object names, anything else is rejected.
func IsDocumentID(id string) bool {
	return documentIDPattern.MatchString(id)
}
