// Package csvstore persists the price dataset as a CSV file with a header row.
package csvstore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"stockdata/pkg/price"
)

var _ price.Store = (*Store)(nil)

// Store reads and rewrites a single CSV file.
type Store struct {
	path string
}

// New returns a Store backed by the file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads every row. Columns are matched to fields by header name, so
// column order in the file does not matter.
func (s *Store) Load(ctx context.Context) (price.Dataset, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", price.ErrStorageUnavailable, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return price.Dataset{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header of %s: %v", price.ErrStorageUnavailable, s.path, err)
	}

	ds := price.Dataset{}
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", price.ErrStorageUnavailable, s.path, err)
		}
		var rec price.Record
		for i, name := range header {
			if i < len(row) {
				rec.Set(name, row[i])
			}
		}
		ds = append(ds, rec)
	}
	return ds, nil
}

// Save writes the header and every record to a temporary file next to the
// target and renames it into place.
func (s *Store) Save(ctx context.Context, ds price.Dataset) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %v", price.ErrStorageUnavailable, err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp, ds); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: writing %s: %v", price.ErrStorageUnavailable, s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", price.ErrStorageUnavailable, err)
	}
	perm := os.FileMode(0o644)
	if fi, err := os.Stat(s.path); err == nil {
		perm = fi.Mode().Perm()
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("%w: %v", price.ErrStorageUnavailable, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("%w: %v", price.ErrStorageUnavailable, err)
	}
	return nil
}

func write(w io.Writer, ds price.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(price.Fields); err != nil {
		return err
	}
	for _, r := range ds {
		if err := cw.Write(r.Values()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
