package converter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/SeakMengs/DocSign/internal/config"
	"github.com/SeakMengs/DocSign/internal/util"
	"go.uber.org/zap"
)

var (
	ErrEmptyOutput = errors.New("PDF created but empty")
	ErrTimeout     = errors.New("conversion timed out")
)

type Converter interface {
	// Convert turns the DOCX at srcPath into a PDF written to dstPath.
	Convert(ctx context.Context, srcPath, dstPath string) error
}

// SofficeConverter runs LibreOffice headless, one process per conversion.
type SofficeConverter struct {
	Binary  string
	Timeout time.Duration
	logger  *zap.SugaredLogger
}

func NewSofficeConverter(cfg config.ConverterConfig, logger *zap.SugaredLogger) *SofficeConverter {
	// For unit test
	if logger == nil {
		logger = util.NewLogger("development")
	}

	return &SofficeConverter{
		Binary:  cfg.Binary,
		Timeout: cfg.Timeout,
		logger:  logger,
	}
}

func (c *SofficeConverter) Convert(ctx context.Context, srcPath, dstPath string) error {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	outDir, err := os.MkdirTemp(filepath.Dir(dstPath), "soffice_*")
	if err != nil {
		return fmt.Errorf("failed to create converter output directory: %w", err)
	}
	defer os.RemoveAll(outDir)

	absOutDir, err := filepath.Abs(outDir)
	if err != nil {
		return err
	}

	// A private profile lets conversions run while another soffice instance is open
	profile := "-env:UserInstallation=file://" + filepath.ToSlash(filepath.Join(absOutDir, "profile"))

	cmd := exec.CommandContext(ctx, c.Binary, profile, "--headless", "--convert-to", "pdf", "--outdir", absOutDir, srcPath)
	cmd.WaitDelay = time.Second

	start := time.Now()
	output, err := cmd.CombinedOutput()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s", ErrTimeout, c.Timeout)
	}
	if err != nil {
		return fmt.Errorf("%s failed: %w: %s", c.Binary, err, strings.TrimSpace(string(output)))
	}

	c.logger.Debugf("Converted %s in %s", filepath.Base(srcPath), time.Since(start))

	produced := filepath.Join(absOutDir, util.ReplaceExt(srcPath, ".pdf"))
	if err := checkOutput(produced); err != nil {
		return err
	}

	if err := os.Rename(produced, dstPath); err != nil {
		return fmt.Errorf("failed to move converted PDF: %w", err)
	}

	return nil
}

func checkOutput(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("converter did not produce %s", filepath.Base(path))
	}
	if err != nil {
		return err
	}

	if info.Size() == 0 {
		return ErrEmptyOutput
	}

	return nil
}
