package converter

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/SeakMengs/DocSign/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mimics the soffice command line: writes <outdir>/<src name>.pdf with the given body.
const fakeSofficeScript = `#!/bin/sh
while [ $# -gt 0 ]; do
  case "$1" in
    --outdir) out="$2"; shift 2 ;;
    --convert-to) shift 2 ;;
    -env:*|--headless) shift ;;
    *) src="$1"; shift ;;
  esac
done
name=$(basename "$src")
name="${name%.*}"
{{body}}
`

func writeFakeSoffice(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake converter is a shell script")
	}

	path := filepath.Join(t.TempDir(), "soffice")
	script := []byte(strings.Replace(fakeSofficeScript, "{{body}}", body, 1))
	require.NoError(t, os.WriteFile(path, script, 0755))
	return path
}

func newTestConverter(t *testing.T, body string, timeout time.Duration) *SofficeConverter {
	t.Helper()

	return NewSofficeConverter(config.ConverterConfig{
		Binary:  writeFakeSoffice(t, body),
		Timeout: timeout,
	}, nil)
}

func newSource(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	src := filepath.Join(dir, "contract.docx")
	require.NoError(t, os.WriteFile(src, []byte("docx"), 0644))
	return src, filepath.Join(dir, "contract.pdf")
}

func TestSofficeConverter(t *testing.T) {
	c := newTestConverter(t, `printf '%s' '%PDF-1.7 converted' > "$out/$name.pdf"`, time.Minute)
	src, dst := newSource(t)

	require.NoError(t, c.Convert(context.Background(), src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 converted", string(data))

	entries, err := os.ReadDir(filepath.Dir(dst))
	require.NoError(t, err)
	assert.Len(t, entries, 2, "only the source and the result remain")
}

func TestSofficeConverterEmptyOutput(t *testing.T) {
	c := newTestConverter(t, `: > "$out/$name.pdf"`, time.Minute)
	src, dst := newSource(t)

	assert.ErrorIs(t, c.Convert(context.Background(), src, dst), ErrEmptyOutput)
}

func TestSofficeConverterMissingOutput(t *testing.T) {
	c := newTestConverter(t, `exit 0`, time.Minute)
	src, dst := newSource(t)

	assert.Error(t, c.Convert(context.Background(), src, dst))
}

func TestSofficeConverterFailure(t *testing.T) {
	c := newTestConverter(t, `echo "source file could not be loaded" >&2; exit 1`, time.Minute)
	src, dst := newSource(t)

	err := c.Convert(context.Background(), src, dst)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source file could not be loaded")
}

func TestSofficeConverterTimeout(t *testing.T) {
	c := newTestConverter(t, `exec sleep 10`, 100*time.Millisecond)
	src, dst := newSource(t)

	start := time.Now()
	err := c.Convert(context.Background(), src, dst)

	assert.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(start), 5*time.Second)
}
