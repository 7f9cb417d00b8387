// Package price holds the daily price dataset model, the Store contract
// used to persist it, and the query and mutation operations built on top.
package price

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// Column names of the backing file, in order.
const (
	FieldDate     = "Date"
	FieldOpen     = "Open"
	FieldHigh     = "High"
	FieldLow      = "Low"
	FieldClose    = "Close"
	FieldAdjClose = "Adj Close"
	FieldVolume   = "Volume"
)

// Fields is the fixed header row of the dataset.
var Fields = []string{FieldDate, FieldOpen, FieldHigh, FieldLow, FieldClose, FieldAdjClose, FieldVolume}

// Record is one dated price observation. All values are kept as text.
type Record struct {
	Date     string `json:"Date"`
	Open     string `json:"Open"`
	High     string `json:"High"`
	Low      string `json:"Low"`
	Close    string `json:"Close"`
	AdjClose string `json:"Adj Close"`
	Volume   string `json:"Volume"`
}

// Values returns the record's fields in header order.
func (r Record) Values() []string {
	return []string{r.Date, r.Open, r.High, r.Low, r.Close, r.AdjClose, r.Volume}
}

// Set assigns the named column. Unknown names are ignored.
func (r *Record) Set(field, value string) {
	switch field {
	case FieldDate:
		r.Date = value
	case FieldOpen:
		r.Open = value
	case FieldHigh:
		r.High = value
	case FieldLow:
		r.Low = value
	case FieldClose:
		r.Close = value
	case FieldAdjClose:
		r.AdjClose = value
	case FieldVolume:
		r.Volume = value
	}
}

// Dataset is the full ordered sequence of records. Order is file order.
type Dataset []Record

// Clone returns a copy that shares no backing array with ds.
func (ds Dataset) Clone() Dataset {
	out := make(Dataset, len(ds))
	copy(out, ds)
	return out
}

// Patch carries the fields present in a request body. A nil field was not
// supplied by the caller.
type Patch struct {
	Date     *string `json:"Date,omitempty"`
	Open     *string `json:"Open,omitempty"`
	High     *string `json:"High,omitempty"`
	Low      *string `json:"Low,omitempty"`
	Close    *string `json:"Close,omitempty"`
	AdjClose *string `json:"Adj Close,omitempty"`
	Volume   *string `json:"Volume,omitempty"`
}

func (p *Patch) slots() []**string {
	return []**string{&p.Date, &p.Open, &p.High, &p.Low, &p.Close, &p.AdjClose, &p.Volume}
}

// UnmarshalJSON accepts string or number values. Numbers keep their literal
// text so "Volume": 1200 is stored as "1200". Keys outside Fields are dropped.
func (p *Patch) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Patch{}
	slots := p.slots()
	for i, name := range Fields {
		v, ok := raw[name]
		if !ok {
			continue
		}
		s, err := scalarText(v)
		if err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		*slots[i] = &s
	}
	return nil
}

func scalarText(v json.RawMessage) (string, error) {
	v = bytes.TrimSpace(v)
	if len(v) > 0 && v[0] == '"' {
		var s string
		err := json.Unmarshal(v, &s)
		return s, err
	}
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(v))
	dec.UseNumber()
	if err := dec.Decode(&n); err != nil {
		return "", fmt.Errorf("expected string or number")
	}
	return n.String(), nil
}

// Missing lists the fields not supplied, in header order.
func (p Patch) Missing() []string {
	var missing []string
	for i, slot := range p.slots() {
		if *slot == nil {
			missing = append(missing, Fields[i])
		}
	}
	return missing
}

// Record builds a record from the patch, leaving absent fields empty.
func (p Patch) Record() Record {
	var r Record
	p.MergeInto(&r)
	return r
}

// MergeInto overwrites the fields of r that are present in p.
func (p Patch) MergeInto(r *Record) {
	for i, slot := range p.slots() {
		if *slot != nil {
			r.Set(Fields[i], **slot)
		}
	}
}

// Store loads and saves the whole dataset. Save replaces prior contents.
type Store interface {
	Load(ctx context.Context) (Dataset, error)
	Save(ctx context.Context, ds Dataset) error
}
