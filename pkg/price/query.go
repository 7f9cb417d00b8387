package price

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical textual form of Record.Date.
const DateLayout = "2006-01-02"

// AverageWindow is the number of leading records averaged by the
// calculate10DayAverage endpoint.
const AverageWindow = 10

// ParseDate parses s as YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	return t, nil
}

// FindByDate returns the first record whose Date equals date byte for byte.
func FindByDate(ds Dataset, date string) (Record, error) {
	if i := indexByDate(ds, date); i >= 0 {
		return ds[i], nil
	}
	return Record{}, fmt.Errorf("%w: %s", ErrNotFound, date)
}

func indexByDate(ds Dataset, date string) int {
	for i := range ds {
		if ds[i].Date == date {
			return i
		}
	}
	return -1
}

// TrailingAverage averages Close over the first n records in dataset order.
// The sum is always divided by n, so a dataset shorter than n under-reports.
func TrailingAverage(ds Dataset, n int) (float64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: window %d", ErrInsufficientData, n)
	}
	window := ds
	if len(window) > n {
		window = window[:n]
	}
	total := decimal.Zero
	for _, r := range window {
		v, err := decimal.NewFromString(r.Close)
		if err != nil {
			return 0, fmt.Errorf("%w: Close %q on %s", ErrMalformedPrice, r.Close, r.Date)
		}
		total = total.Add(v)
	}
	avg, _ := total.Div(decimal.NewFromInt(int64(n))).Float64()
	return avg, nil
}

// StrictTrailingAverage is TrailingAverage but fails when fewer than n
// records exist.
func StrictTrailingAverage(ds Dataset, n int) (float64, error) {
	if len(ds) < n {
		return 0, fmt.Errorf("%w: have %d records, need %d", ErrInsufficientData, len(ds), n)
	}
	return TrailingAverage(ds, n)
}

// FilterByDateRange returns the records dated within [start, end], in dataset
// order. A stored date that does not parse fails the whole call.
func FilterByDateRange(ds Dataset, start, end time.Time) (Dataset, error) {
	out := Dataset{}
	for _, r := range ds {
		d, err := ParseDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("stored record: %w", err)
		}
		if !d.Before(start) && !d.After(end) {
			out = append(out, r)
		}
	}
	return out, nil
}
