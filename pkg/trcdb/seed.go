package trcdb

import (
	"fmt"
	"os"

	"github.com/trimble-oss/trcphotometry/pkg/trcdb/engine"

	"gopkg.in/yaml.v2"
)

// SeedTable is one table in a seed file.
type SeedTable struct {
	Name    string      `yaml:"name"`
	Columns []ColumnDef `yaml:"columns"`
	Rows    [][]any     `yaml:"rows"`
}

// SeedFile is the on-disk layout of a seed file:
//
//	tables:
//	  - name: Object
//	    columns:
//	      - {name: objectId, type: BIGINT}
//	      - {name: rFlux_PS, type: DOUBLE}
//	    rows:
//	      - [1, 3.631e-27]
type SeedFile struct {
	Tables []SeedTable `yaml:"tables"`
}

// ParseSeed decodes seed data without touching an engine.
func ParseSeed(seedData []byte) (*SeedFile, error) {
	var seed SeedFile
	if err := yaml.Unmarshal(seedData, &seed); err != nil {
		return nil, err
	}
	for i, table := range seed.Tables {
		if table.Name == "" {
			return nil, fmt.Errorf("seed table %d has no name", i)
		}
	}
	return &seed, nil
}

// LoadSeed reads a seed file and loads every table it describes into te.
func LoadSeed(te *engine.TierceronEngine, seedPath string) error {
	seedData, err := os.ReadFile(seedPath)
	if err != nil {
		return err
	}
	seed, err := ParseSeed(seedData)
	if err != nil {
		return fmt.Errorf("seed %s: %w", seedPath, err)
	}
	return loadSeedTables(te, seed)
}

func loadSeedTables(te *engine.TierceronEngine, seed *SeedFile) error {
	for _, seedTable := range seed.Tables {
		if _, err := AddTable(te, seedTable.Name, seedTable.Columns); err != nil {
			return err
		}
		if err := InsertRows(te, seedTable.Name, seedTable.Rows); err != nil {
			return err
		}
	}
	return nil
}
