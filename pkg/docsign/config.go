package docsign

import (
	"os"
	"path/filepath"
)

type Config struct {
	// Directory searched for the families of FontSearchOrder
	FontDir string
	// Optional TOML file overriding the texts of the signature page
	LayoutPath string
	// Directory where the scratch files of merge mode are stored, each call removes its own
	TmpDir string
	// Used when a request does not name a mode
	DefaultMode Mode
}

func NewDefaultConfig() *Config {
	return &Config{
		FontDir:     "fonts",
		LayoutPath:  "layout.toml",
		TmpDir:      filepath.Join(os.TempDir(), "docsign", "tmp"),
		DefaultMode: ModeAppend,
	}
}
