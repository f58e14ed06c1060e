package trcdb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/trimble-oss/trcphotometry/pkg/trcdb/engine"
)

// rowScanner is the subset of *sql.Rows an import reads.
type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// ImportTable copies the result of sourceQuery on conn into a new memory
// table named tableName.
func ImportTable(ctx context.Context, conn *sql.DB, te *engine.TierceronEngine, sourceQuery string, tableName string) (int, error) {
	rows, err := conn.QueryContext(ctx, sourceQuery)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return 0, err
	}
	columns := make([]ColumnDef, len(columnTypes))
	for i, columnType := range columnTypes {
		columns[i] = ColumnDef{Name: columnType.Name(), Type: sourceColumnType(columnType.DatabaseTypeName())}
	}
	return importRows(te, tableName, columns, rows)
}

// sourceColumnType narrows a driver type name to a column type the engine
// supports; unknown types are kept as TEXT.
func sourceColumnType(databaseTypeName string) string {
	typeName := strings.ToUpper(databaseTypeName)
	if _, err := engine.ColumnType(typeName); err == nil {
		return typeName
	}
	switch typeName {
	case "FLOAT4", "FLOAT8", "MONEY", "SMALLMONEY":
		return "DOUBLE"
	case "INT2", "INT4", "INT8", "MEDIUMINT", "BIT":
		return "BIGINT"
	}
	return "TEXT"
}

func importRows(te *engine.TierceronEngine, tableName string, columns []ColumnDef, rows rowScanner) (int, error) {
	if _, err := AddTable(te, tableName, columns); err != nil {
		return 0, err
	}

	imported := 0
	batch := [][]any{}
	for rows.Next() {
		values := make([]any, len(columns))
		scanTargets := make([]any, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return imported, fmt.Errorf("import %s: %w", tableName, err)
		}
		for i, value := range values {
			if b, ok := value.([]byte); ok {
				values[i] = string(b)
			}
		}
		batch = append(batch, values)
		if len(batch) == importBatchSize {
			if err := InsertRows(te, tableName, batch); err != nil {
				return imported, err
			}
			imported += len(batch)
			batch = batch[:0]
		}
	}
	if err := rows.Err(); err != nil {
		return imported, err
	}
	if err := InsertRows(te, tableName, batch); err != nil {
		return imported, err
	}
	return imported + len(batch), nil
}

const importBatchSize = 500
