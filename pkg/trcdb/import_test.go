package trcdb

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fakeRows struct {
	rows    [][]any
	current int
	err     error
}

func (f *fakeRows) Next() bool {
	if f.current >= len(f.rows) {
		return false
	}
	f.current++
	return true
}

func (f *fakeRows) Scan(dest ...any) error {
	row := f.rows[f.current-1]
	if len(dest) != len(row) {
		return errors.New("column count mismatch")
	}
	for i, v := range row {
		*(dest[i].(*any)) = v
	}
	return nil
}

func (f *fakeRows) Err() error {
	return f.err
}

func TestImportRows(t *testing.T) {
	te, err := CreateEngine(testDriverConfig(t), "photometry")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	columns := []ColumnDef{
		{Name: "sourceId", Type: sourceColumnType("INT")},
		{Name: "psfFlux", Type: sourceColumnType("FLOAT8")},
		{Name: "psfFluxErr", Type: sourceColumnType("DECIMAL")},
		{Name: "band", Type: sourceColumnType("GEOMETRY")},
	}
	rows := &fakeRows{rows: [][]any{
		{int64(10), 3631.0, []byte("36.31"), []byte("r")},
		{int64(11), 0.0, []byte("1"), "g"},
	}}
	count, err := importRows(te, "Source", columns, rows)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if count != 2 {
		t.Fatalf("Expected 2 rows imported, got %d", count)
	}

	var queryLock sync.Mutex
	_, _, matrix, err := Query(te, "SELECT sourceId, band, fluxToAbMagSigma(psfFlux, psfFluxErr) FROM Source ORDER BY sourceId", &queryLock)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	want := [][]any{
		{int64(10), "r", magSigma(3631.0, 36.31)},
		{int64(11), "g", nil},
	}
	if diff := cmp.Diff(want, matrix); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestImportRowsPropagatesErrors(t *testing.T) {
	te, err := CreateEngine(testDriverConfig(t), "photometry")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	rows := &fakeRows{err: errors.New("connection reset")}
	if _, err := importRows(te, "Broken", []ColumnDef{{Name: "flux", Type: "DOUBLE"}}, rows); err == nil {
		t.Fatalf("Expected iteration error")
	}
}

func TestSourceColumnType(t *testing.T) {
	cases := map[string]string{
		"double":           "DOUBLE",
		"FLOAT4":           "DOUBLE",
		"money":            "DOUBLE",
		"int4":             "BIGINT",
		"BIGINT":           "BIGINT",
		"VARCHAR":          "VARCHAR",
		"DATETIME":         "TEXT",
		"UNIQUEIDENTIFIER": "TEXT",
	}
	for in, want := range cases {
		if got := sourceColumnType(in); got != want {
			t.Fatalf("sourceColumnType(%s) = %s, want %s", in, got, want)
		}
	}
}
