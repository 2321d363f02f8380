package pipeline

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ppiankov/medprep/internal/model"
)

// ErrSourceMissing is returned by LoadRecords when the source file does not exist
var ErrSourceMissing = errors.New("source file not found")

// SourceError reports a source file that exists but could not be loaded
type SourceError struct {
	Source string
	Path   string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("load %s source %s: %v", e.Source, e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// LoadRecords reads a whole source file as a JSON array of objects. A missing
// file yields an error wrapping both ErrSourceMissing and fs.ErrNotExist.
func LoadRecords(source, path string) ([]model.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrSourceMissing, err)
		}
		return nil, &SourceError{Source: source, Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, &SourceError{Source: source, Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &SourceError{Source: source, Path: path, Err: errors.New("is a directory")}
	}

	var records []model.RawRecord
	dec := json.NewDecoder(bufio.NewReaderSize(f, 64*1024))
	if err := dec.Decode(&records); err != nil {
		return nil, &SourceError{Source: source, Path: path, Err: fmt.Errorf("decode JSON array: %w", err)}
	}
	if records == nil {
		return nil, &SourceError{Source: source, Path: path, Err: errors.New("expected a JSON array, got null")}
	}
	if dec.More() {
		return nil, &SourceError{Source: source, Path: path, Err: errors.New("unexpected data after JSON array")}
	}
	for i, rec := range records {
		if rec == nil {
			return nil, &SourceError{Source: source, Path: path, Err: fmt.Errorf("element %d is not an object", i)}
		}
	}

	return records, nil
}
