package price

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func strp(s string) *string { return &s }

func fullPatch(date string) Patch {
	return Patch{
		Date:     strp(date),
		Open:     strp("1.0"),
		High:     strp("2.0"),
		Low:      strp("0.5"),
		Close:    strp("1.5"),
		AdjClose: strp("1.4"),
		Volume:   strp("1000"),
	}
}

func TestAppend(t *testing.T) {
	ds, err := Append(Dataset{}, fullPatch("2024-01-02"))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	got, err := FindByDate(ds, "2024-01-02")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	want := Record{Date: "2024-01-02", Open: "1.0", High: "2.0", Low: "0.5", Close: "1.5", AdjClose: "1.4", Volume: "1000"}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestAppendMissingFields(t *testing.T) {
	p := fullPatch("2024-01-02")
	p.AdjClose = nil
	p.Volume = nil

	ds, err := Append(Dataset{}, p)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if !errors.Is(err, ErrValidation) {
		t.Error("expected errors.Is(err, ErrValidation)")
	}
	if !reflect.DeepEqual(verr.Missing, []string{FieldAdjClose, FieldVolume}) {
		t.Errorf("unexpected missing list %v", verr.Missing)
	}
	if len(ds) != 0 {
		t.Errorf("dataset changed on failure: %v", ds)
	}
}

func TestUpdatePreservesPosition(t *testing.T) {
	ds := dated("2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05")

	ds, err := UpdateByDate(ds, "2024-01-03", Patch{Date: strp("2024-01-03"), Close: strp("42")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if ds[2].Date != "2024-01-03" || ds[2].Close != "42" {
		t.Errorf("third record not updated in place: %+v", ds[2])
	}
	if ds[2].Open != "" {
		t.Errorf("unpatched field changed: %+v", ds[2])
	}
	if len(ds) != 5 {
		t.Errorf("expected 5 records, got %d", len(ds))
	}
}

func TestUpdateCanChangeDate(t *testing.T) {
	ds := dated("2024-01-01")
	ds, err := UpdateByDate(ds, "2024-01-01", Patch{Date: strp("2024-02-01")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := FindByDate(ds, "2024-02-01"); err != nil {
		t.Errorf("expected record under new date: %v", err)
	}
}

func TestUpdateErrors(t *testing.T) {
	ds := dated("2024-01-01")
	if _, err := UpdateByDate(ds, "2024-01-01", Patch{Close: strp("1")}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error without Date, got %v", err)
	}
	if _, err := UpdateByDate(ds, "2030-01-01", Patch{Date: strp("2030-01-01")}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRemovesOnlyFirstMatch(t *testing.T) {
	ds := Dataset{
		{Date: "2024-01-01", Close: "1"},
		{Date: "2024-01-02", Close: "first"},
		{Date: "2024-01-03", Close: "3"},
		{Date: "2024-01-02", Close: "second"},
	}
	ds, err := DeleteByDate(ds, "2024-01-02")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(ds) != 3 {
		t.Fatalf("expected 3 records, got %d", len(ds))
	}
	got, _ := FindByDate(ds, "2024-01-02")
	if got.Close != "second" {
		t.Errorf("expected second duplicate to remain, got %+v", got)
	}
	if ds[1].Date != "2024-01-03" {
		t.Errorf("order not preserved: %+v", ds)
	}

	if _, err := DeleteByDate(ds, "1999-01-01"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := DeleteByDate(ds, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for empty date, got %v", err)
	}
}

func TestDeleteAll(t *testing.T) {
	ds := dated("2024-01-01", "2024-01-02")

	kept, err := DeleteAll(ds, "IAMADMIN12", "IAMADMIN123")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if len(kept) != 2 {
		t.Errorf("dataset changed on rejected delete: %v", kept)
	}

	empty, err := DeleteAll(ds, "IAMADMIN123", "IAMADMIN123")
	if err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty dataset, got %v", empty)
	}
}

func TestPatchDecode(t *testing.T) {
	var p Patch
	body := `{"Date":"2024-01-02","Close":187.15,"Volume":1200,"Ticker":"AAPL"}`
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	r := p.Record()
	if r.Close != "187.15" || r.Volume != "1200" || r.Date != "2024-01-02" {
		t.Errorf("unexpected record %+v", r)
	}
	want := []string{FieldOpen, FieldHigh, FieldLow, FieldAdjClose}
	if !reflect.DeepEqual(p.Missing(), want) {
		t.Errorf("missing = %v, want %v", p.Missing(), want)
	}

	if err := json.Unmarshal([]byte(`{"Close":true}`), &p); err == nil {
		t.Error("expected error for boolean value")
	}
}

func TestDeleteEmptyDateMatchesStoredEmptyDate(t *testing.T) {
	ds := Dataset{{Date: "2024-01-01"}, {Date: "", Close: "9"}, {Date: "2024-01-02"}}
	ds, err := DeleteByDate(ds, "")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(ds) != 2 || ds[0].Date != "2024-01-01" || ds[1].Date != "2024-01-02" {
		t.Errorf("unexpected dataset %+v", ds)
	}
}

func TestMutationsLeaveInputUntouched(t *testing.T) {
	orig := dated("a", "b", "c")

	if _, err := DeleteByDate(orig, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := UpdateByDate(orig, "b", Patch{Date: strp("b"), Close: strp("42")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := Append(orig[:1], fullPatch("z")); err != nil {
		t.Fatalf("append: %v", err)
	}

	want := dated("a", "b", "c")
	if !reflect.DeepEqual(orig, want) {
		t.Errorf("input modified: got %+v, want %+v", orig, want)
	}
}
