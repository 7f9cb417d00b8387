package price

import (
	"crypto/subtle"
	"fmt"
)

// Append validates that every field is present and adds the record at the
// end of a copy of ds.
func Append(ds Dataset, p Patch) (Dataset, error) {
	if missing := p.Missing(); len(missing) > 0 {
		return ds, &ValidationError{Missing: missing}
	}
	return append(ds.Clone(), p.Record()), nil
}

// UpdateByDate merges p into the first record dated date. The record keeps
// its position; fields absent from p are retained. p may change Date itself.
// ds is not modified; the merged dataset is returned.
func UpdateByDate(ds Dataset, date string, p Patch) (Dataset, error) {
	if p.Date == nil {
		return ds, &ValidationError{Missing: []string{FieldDate}}
	}
	i := indexByDate(ds, date)
	if i < 0 {
		return ds, fmt.Errorf("%w: %s", ErrNotFound, date)
	}
	out := ds.Clone()
	p.MergeInto(&out[i])
	return out, nil
}

// DeleteByDate removes the first record dated date and only that one. An
// empty date is matched like any other value. ds is not modified.
func DeleteByDate(ds Dataset, date string) (Dataset, error) {
	i := indexByDate(ds, date)
	if i < 0 {
		return ds, fmt.Errorf("%w: %s", ErrNotFound, date)
	}
	out := make(Dataset, 0, len(ds)-1)
	out = append(out, ds[:i]...)
	return append(out, ds[i+1:]...), nil
}

// DeleteAll empties the dataset when supplied equals expected exactly.
func DeleteAll(ds Dataset, supplied, expected string) (Dataset, error) {
	if subtle.ConstantTimeCompare([]byte(supplied), []byte(expected)) != 1 {
		return ds, ErrUnauthorized
	}
	return Dataset{}, nil
}
