package engine

import (
	"fmt"
	"strings"

	"github.com/trimble-oss/trcphotometry/pkg/utils/config"

	sqle "github.com/dolthub/go-mysql-server"
	"github.com/dolthub/go-mysql-server/memory"
	"github.com/dolthub/go-mysql-server/sql"
)

type TierceronTable struct {
	Table  *memory.Table
	Schema sql.PrimaryKeySchema
}

type TierceronEngine struct {
	Config     config.DriverConfig
	Database   *memory.Database
	Engine     *sqle.Engine
	Context    *sql.Context
	TableCache map[string]*TierceronTable
}

// ColumnType maps a seed or source column type name to its engine type.
// Photometry columns are DOUBLE; identifiers BIGINT; everything else TEXT.
func ColumnType(typeName string) (sql.Type, error) {
	switch strings.ToUpper(strings.TrimSpace(typeName)) {
	case "DOUBLE", "DOUBLE PRECISION", "FLOAT", "REAL", "DECIMAL", "NUMERIC":
		return sql.Float64, nil
	case "BIGINT", "INT", "INTEGER", "SMALLINT", "TINYINT":
		return sql.Int64, nil
	case "TEXT", "VARCHAR", "CHAR", "STRING", "NVARCHAR":
		return sql.Text, nil
	}
	return nil, fmt.Errorf("unsupported column type %s", typeName)
}

// CachedTable returns a table previously added to te, ignoring case.
func (te *TierceronEngine) CachedTable(tableName string) (*TierceronTable, bool) {
	table, ok := te.TableCache[strings.ToLower(tableName)]
	return table, ok
}
