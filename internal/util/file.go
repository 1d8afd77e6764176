package util

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Example output for "ex.txt": "21313123123_ex.txt"
func AddUniquePrefixToFileName(fileName string) string {
	uniquePrefix := fmt.Sprintf("%d", time.Now().UnixNano())
	return fmt.Sprintf("%s_%s", uniquePrefix, fileName)
}

func GetTempDir() string {
	return filepath.Join(os.TempDir(), strings.ToLower(GetAppName()))
}

// MkdirWorkDir creates a fresh directory below parent (or the app temp dir when parent is empty).
// The caller removes it.
func MkdirWorkDir(parent, pattern string) (string, error) {
	if parent == "" {
		parent = GetTempDir()
	}
	if err := os.MkdirAll(parent, 0755); err != nil {
		return "", fmt.Errorf("failed to create work directory: %w", err)
	}
	return os.MkdirTemp(parent, pattern)
}

// ReplaceExt swaps the extension of a file name, "report.docx" with ".pdf" gives "report.pdf".
func ReplaceExt(fileName, ext string) string {
	base := filepath.Base(fileName)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ext
}

// AttachmentDisposition builds a Content-Disposition header that survives non-ASCII file names.
func AttachmentDisposition(fileName string) string {
	return "attachment; filename*=UTF-8''" + url.PathEscape(fileName)
}
