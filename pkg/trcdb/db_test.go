package trcdb

import (
	"bytes"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/trimble-oss/trcphotometry/pkg/core"
	"github.com/trimble-oss/trcphotometry/pkg/trcdb/engine"
	"github.com/trimble-oss/trcphotometry/pkg/utils/config"
)

const objectSeed = `
tables:
  - name: Object
    columns:
      - {name: objectId, type: BIGINT}
      - {name: rFlux_PS, type: DOUBLE}
      - {name: rFlux_PS_Sigma, type: DOUBLE}
    rows:
      - [1, 3631.0, 36.31]
      - [2, 100.0, 0.0]
      - [3, 0.0, 5.0]
      - [4, null, 1.0]
      - [5, -2.5, 0.5]
`

func testDriverConfig(t *testing.T, seedPaths ...string) *config.DriverConfig {
	var buf bytes.Buffer
	t.Cleanup(func() {
		if t.Failed() {
			t.Log(buf.String())
		}
	})
	return &config.DriverConfig{
		CoreConfig: &core.CoreConfig{
			Log:        log.New(&buf, "[trcphot]", log.LstdFlags),
			IsHeadless: true,
		},
		SeedPaths: seedPaths,
	}
}

func seededEngine(t *testing.T) *engine.TierceronEngine {
	seedPath := filepath.Join(t.TempDir(), "object_seed.yml")
	if err := os.WriteFile(seedPath, []byte(objectSeed), 0o600); err != nil {
		t.Fatalf("Failed to write seed: %v", err)
	}
	te, err := CreateEngine(testDriverConfig(t, seedPath), "photometry")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return te
}

func magSigma(flux, fluxSigma float64) float64 {
	return (2.5 / math.Ln10) * math.Abs(fluxSigma/flux)
}

func TestQueryFluxToAbMagSigma(t *testing.T) {
	te := seededEngine(t)
	var queryLock sync.Mutex

	_, columns, matrix, err := Query(te, "SELECT objectId, fluxToAbMagSigma(rFlux_PS, rFlux_PS_Sigma) AS magSigma FROM Object ORDER BY objectId", &queryLock)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if diff := cmp.Diff([]string{"objectId", "magSigma"}, columns); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	want := [][]any{
		{int64(1), magSigma(3631.0, 36.31)},
		{int64(2), 0.0},
		{int64(3), nil},
		{int64(4), nil},
		{int64(5), magSigma(-2.5, 0.5)},
	}
	if diff := cmp.Diff(want, matrix); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestQueryIsCaseInsensitive(t *testing.T) {
	te := seededEngine(t)
	var queryLock sync.Mutex

	_, _, matrix, err := Query(te, "SELECT FLUXTOABMAGSIGMA(rFlux_PS, rFlux_PS_Sigma) FROM Object WHERE objectId = 1", &queryLock)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(matrix) != 1 || matrix[0][0] != magSigma(3631.0, 36.31) {
		t.Fatalf("unexpected result %v", matrix)
	}
}

func TestQueryLiterals(t *testing.T) {
	te := seededEngine(t)
	var queryLock sync.Mutex

	_, _, matrix, err := Query(te, "SELECT fluxToAbMagSigma(3631.0, 36.31), fluxToAbMagSigma(0, 5), fluxToAbMagSigma(NULL, 1)", &queryLock)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(matrix) != 1 || len(matrix[0]) != 3 {
		t.Fatalf("unexpected shape %v", matrix)
	}
	got, ok := matrix[0][0].(float64)
	if !ok || math.Abs(got-0.010857362047581294) > 1e-15 {
		t.Fatalf("unexpected magSigma %v", matrix[0][0])
	}
	if matrix[0][1] != nil || matrix[0][2] != nil {
		t.Fatalf("expected NULL results, got %v", matrix[0][1:])
	}
}

func TestQueryArityFailure(t *testing.T) {
	te := seededEngine(t)
	var queryLock sync.Mutex

	for _, query := range []string{
		"SELECT fluxToAbMagSigma(rFlux_PS) FROM Object",
		"SELECT fluxToAbMagSigma(1, 2, 3)",
	} {
		_, _, _, err := Query(te, query, &queryLock)
		if err == nil {
			t.Fatalf("Expected arity error for %q", query)
		}
		if !strings.Contains(err.Error(), "fluxToAbMagSigma() expects exactly 2 arguments") {
			t.Fatalf("unexpected error for %q: %v", query, err)
		}
	}
}

func TestQuerySupplementaryFunctions(t *testing.T) {
	te := seededEngine(t)
	var queryLock sync.Mutex

	_, _, matrix, err := Query(te, "SELECT fluxToAbMag(abMagToFlux(20)), fluxToAbMag(0)", &queryLock)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	mag, ok := matrix[0][0].(float64)
	if !ok || math.Abs(mag-20) > 1e-9 {
		t.Fatalf("unexpected round trip %v", matrix[0][0])
	}
	if matrix[0][1] != nil {
		t.Fatalf("expected NULL for zero flux, got %v", matrix[0][1])
	}
}

func TestAddTableErrors(t *testing.T) {
	te, err := CreateEngine(testDriverConfig(t), "photometry")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := AddTable(te, "Empty", nil); err == nil {
		t.Fatalf("Expected error for table without columns")
	}
	if _, err := AddTable(te, "Bad", []ColumnDef{{Name: "blob", Type: "GEOMETRY"}}); err == nil {
		t.Fatalf("Expected error for unsupported column type")
	}
	if _, err := AddTable(te, "Source", []ColumnDef{{Name: "flux", Type: "DOUBLE"}}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := AddTable(te, "source", []ColumnDef{{Name: "flux", Type: "DOUBLE"}}); err == nil {
		t.Fatalf("Expected duplicate table error")
	}
	if err := InsertRows(te, "Source", [][]any{{1.0, 2.0}}); err == nil {
		t.Fatalf("Expected row width error")
	}
	if err := InsertRows(te, "Missing", nil); err == nil {
		t.Fatalf("Expected missing table error")
	}
}

func TestParseSeed(t *testing.T) {
	seed, err := ParseSeed([]byte(objectSeed))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(seed.Tables) != 1 || seed.Tables[0].Name != "Object" || len(seed.Tables[0].Rows) != 5 {
		t.Fatalf("unexpected seed %+v", seed)
	}
	if _, err := ParseSeed([]byte("tables:\n  - columns: []\n")); err == nil {
		t.Fatalf("Expected error for unnamed table")
	}
	if _, err := ParseSeed([]byte("tables: [")); err == nil {
		t.Fatalf("Expected yaml error")
	}
}

func TestCreateEngineMissingSeed(t *testing.T) {
	_, err := CreateEngine(testDriverConfig(t, filepath.Join(t.TempDir(), "missing.yml")), "photometry")
	if err == nil {
		t.Fatalf("Expected error for missing seed")
	}
}
