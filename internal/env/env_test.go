package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	t.Setenv("DOCSIGN_TEST_STRING", "hello")
	t.Setenv("DOCSIGN_TEST_INT", " 42 ")
	t.Setenv("DOCSIGN_TEST_BOOL", "false")
	t.Setenv("DOCSIGN_TEST_BAD", "not-a-number")

	assert.Equal(t, "hello", GetString("DOCSIGN_TEST_STRING", "fallback"))
	assert.Equal(t, "fallback", GetString("DOCSIGN_TEST_MISSING", "fallback"))

	assert.Equal(t, 42, GetInt("DOCSIGN_TEST_INT", 1))
	assert.Equal(t, 1, GetInt("DOCSIGN_TEST_BAD", 1))
	assert.Equal(t, 7, GetInt("DOCSIGN_TEST_MISSING", 7))

	assert.False(t, GetBool("DOCSIGN_TEST_BOOL", true))
	assert.True(t, GetBool("DOCSIGN_TEST_BAD", true))
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DOCSIGN_TEST_FROM_FILE=file\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("DOCSIGN_TEST_FROM_FILE") })

	LoadEnv(path)
	assert.Equal(t, "file", GetString("DOCSIGN_TEST_FROM_FILE", ""))

	// a missing file only logs
	LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
}
