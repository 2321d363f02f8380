package pipeline

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ppiankov/medprep/internal/model"
)

const writeBufSize = 64 * 1024

// DatasetWriter persists a dataset as line-delimited JSON
type DatasetWriter struct {
	mode     string
	permFile os.FileMode
	permDir  os.FileMode
}

// NewDatasetWriter creates a writer. mode is model.OutputModeTruncate
// (open with O_TRUNC and write in place) or model.OutputModeAtomic (write a
// sibling temp file, then rename over the target).
func NewDatasetWriter(mode string) *DatasetWriter {
	if mode == "" {
		mode = model.OutputModeTruncate
	}
	return &DatasetWriter{mode: mode, permFile: 0o644, permDir: 0o755}
}

// WriteFile creates the parent directory if needed and replaces path with
// the encoded dataset. Existing content is never appended to.
func (w *DatasetWriter) WriteFile(path string, dataset model.Dataset) error {
	if err := os.MkdirAll(filepath.Dir(path), w.permDir); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	switch w.mode {
	case model.OutputModeAtomic:
		return w.writeAtomic(path, dataset)
	case model.OutputModeTruncate:
		return w.writeTruncate(path, dataset)
	default:
		return fmt.Errorf("unknown output mode %q", w.mode)
	}
}

func (w *DatasetWriter) writeTruncate(path string, dataset model.Dataset) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, w.permFile)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	bw := bufio.NewWriterSize(f, writeBufSize)
	if err := EncodeJSONL(bw, dataset); err != nil {
		return err
	}
	return bw.Flush()
}

func (w *DatasetWriter) writeAtomic(path string, dataset model.Dataset) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	_ = os.Chmod(tmpPath, w.permFile)

	fail := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}

	bw := bufio.NewWriterSize(tmp, writeBufSize)
	if err := EncodeJSONL(bw, dataset); err != nil {
		return fail(err)
	}
	if err := bw.Flush(); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// EncodeJSONL writes one compact JSON object per record, each terminated by
// '\n'. Non-ASCII text and <, >, & are written literally.
func EncodeJSONL(out io.Writer, dataset model.Dataset) error {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	for i := range dataset {
		if err := enc.Encode(&dataset[i]); err != nil {
			return fmt.Errorf("encode record %d: %w", i, err)
		}
	}
	return nil
}
