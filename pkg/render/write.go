package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

const (
	dirMode  os.FileMode = 0o755
	fileMode os.FileMode = 0o644
)

// outputPath maps a slash-separated destination onto the output root.
func (r *Renderer) outputPath(dst string) (string, error) {
	local := filepath.FromSlash(dst)
	if !filepath.IsLocal(local) {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, dst)
	}
	if !r.outReady {
		if err := os.MkdirAll(r.outDir, dirMode); err != nil {
			return "", fmt.Errorf("render: create output dir: %w", err)
		}
		r.outReady = true
	}
	return filepath.Join(r.outDir, local), nil
}

// writeFile replaces dst atomically, creating its parent directories first.
func (r *Renderer) writeFile(dst string, content io.Reader) error {
	full, err := r.outputPath(dst)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), dirMode); err != nil {
		return fmt.Errorf("render: create dir for %s: %w", dst, err)
	}
	if err := atomic.WriteFile(full, content); err != nil {
		return fmt.Errorf("render: write %s: %w", dst, err)
	}
	if err := os.Chmod(full, fileMode); err != nil {
		return fmt.Errorf("render: chmod %s: %w", dst, err)
	}
	return nil
}

// copyFile streams src to dst without template evaluation.
func (r *Renderer) copyFile(src, dst string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("render: open binary: %w", err)
	}
	defer f.Close()

	return r.writeFile(dst, f)
}
