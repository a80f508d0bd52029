package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// Writer writes tables as tab-separated UTF-8 files into a directory.
type Writer struct {
	dir string
}

// NewWriter creates a Writer for dir. An empty dir means the working directory.
func NewWriter(dir string) *Writer {
	if dir == "" {
		dir = "."
	}
	return &Writer{dir: dir}
}

// Write creates the file named by t and returns its path.
func (w *Writer) Write(t Table) (path string, err error) {
	if err := os.MkdirAll(w.dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path = filepath.Join(w.dir, t.Name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close report: %w", closeErr)
		}
	}()

	cw := csv.NewWriter(f)
	cw.Comma = '\t'
	cw.UseCRLF = true

	if err := cw.Write(t.Header); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return "", fmt.Errorf("failed to write rows: %w", err)
	}

	return path, nil
}
