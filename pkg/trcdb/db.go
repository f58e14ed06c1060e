package trcdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/trimble-oss/trcphotometry/pkg/photometry/udf"
	"github.com/trimble-oss/trcphotometry/pkg/trcdb/engine"
	eUtils "github.com/trimble-oss/trcphotometry/pkg/utils"
	"github.com/trimble-oss/trcphotometry/pkg/utils/config"

	sqle "github.com/dolthub/go-mysql-server"
	sqlememory "github.com/dolthub/go-mysql-server/memory"
	sqles "github.com/dolthub/go-mysql-server/sql"
	"github.com/dolthub/go-mysql-server/sql/mysql_db"
)

var m sync.Mutex

// ColumnDef represents a column definition in a table
type ColumnDef struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// CreateEngine - creates a query engine with the photometry functions
// registered and any configured seed tables loaded.
func CreateEngine(driverConfig *config.DriverConfig, dbname string) (*engine.TierceronEngine, error) {
	te := &engine.TierceronEngine{Database: sqlememory.NewDatabase(dbname), Engine: nil, TableCache: map[string]*engine.TierceronTable{}, Context: sqles.NewEmptyContext(), Config: *driverConfig}

	te.Engine = sqle.NewDefault(sqlememory.NewMemoryDBProvider(te.Database))
	te.Engine.Analyzer.Debug = false
	te.Engine.Analyzer.Catalog.MySQLDb.SetPersister(&mysql_db.NoopPersister{})
	udf.RegisterAll(te.Context, te.Engine.Analyzer.Catalog)

	for _, seedPath := range driverConfig.SeedPaths {
		if err := LoadSeed(te, seedPath); err != nil {
			eUtils.LogErrorObject(driverConfig.CoreConfig, err, false)
			return nil, err
		}
		eUtils.LogInfo(driverConfig.CoreConfig, "Loaded seed "+seedPath)
	}

	return te, nil
}

// AddTable creates an empty memory table. Adding a table that already
// exists with the same name is an error.
func AddTable(te *engine.TierceronEngine, tableName string, columns []ColumnDef) (*engine.TierceronTable, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s has no columns", tableName)
	}
	if _, ok := te.CachedTable(tableName); ok {
		return nil, fmt.Errorf("table %s already exists", tableName)
	}

	tableSchema := sqles.NewPrimaryKeySchema([]*sqles.Column{})
	for _, columnDef := range columns {
		columnType, err := engine.ColumnType(columnDef.Type)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", columnDef.Name, err)
		}
		column := sqles.Column{Name: columnDef.Name, Type: columnType, Source: tableName, Nullable: true}
		tableSchema.Schema = append(tableSchema.Schema, &column)
	}

	table := sqlememory.NewTable(tableName, tableSchema, nil)
	m.Lock()
	te.Database.AddTable(tableName, table)
	tierceronTable := &engine.TierceronTable{Table: table, Schema: tableSchema}
	te.TableCache[strings.ToLower(tableName)] = tierceronTable
	m.Unlock()

	return tierceronTable, nil
}

// InsertRows converts each value to its column type and appends the rows.
// Values that do not convert are stored as NULL.
func InsertRows(te *engine.TierceronEngine, tableName string, rows [][]any) error {
	tierceronTable, ok := te.CachedTable(tableName)
	if !ok {
		return fmt.Errorf("table %s not found", tableName)
	}
	schema := tierceronTable.Schema.Schema

	for i, row := range rows {
		if len(row) != len(schema) {
			return fmt.Errorf("table %s row %d: expected %d values, got %d", tableName, i, len(schema), len(row))
		}
		converted := make([]any, len(row))
		for j, value := range row {
			if value == nil {
				continue
			}
			iVar, cErr := schema[j].Type.Convert(value)
			if cErr != nil {
				iVar = nil
			}
			converted[j] = iVar
		}
		m.Lock()
		insertErr := tierceronTable.Table.Insert(te.Context, sqles.NewRow(converted...))
		m.Unlock()
		if insertErr != nil {
			return insertErr
		}
	}
	return nil
}

// Query - queries photometry tables using standard ANSI SQL syntax.
// Example: select fluxToAbMagSigma(rFlux_PS, rFlux_PS_Sigma) from Object
func Query(te *engine.TierceronEngine, query string, queryLock *sync.Mutex) (string, []string, [][]any, error) {
	if strings.Contains(query, "%s.") {
		query = fmt.Sprintf(query, te.Database.Name())
	}
	ctx := sqles.NewContext(context.Background())
	ctx.WithQuery(query)
	ctx.SetCurrentDatabase(te.Database.Name())
	queryLock.Lock()
	schema, r, err := te.Engine.Query(ctx, query)
	queryLock.Unlock()
	if err != nil {
		if strings.Contains(err.Error(), "duplicate") {
			return "", nil, nil, errors.New("Duplicate primary key found.")
		}
		return "", nil, nil, err
	}

	columns := []string{}
	matrix := [][]any{}
	tableName := ""

	for _, col := range schema {
		if tableName == "" {
			tableName = col.Source
		}

		columns = append(columns, col.Name)
	}

	if len(columns) > 0 {
		okResult := false
		for {
			queryLock.Lock()
			row, err := r.Next(ctx)
			queryLock.Unlock()
			if err == io.EOF {
				break
			} else if err != nil {
				r.Close(ctx)
				return "", nil, nil, err
			}
			rowData := []any{}
			if sqles.IsOkResult(row) { //This is for insert statements
				okResult = true
				sqlOkResult := sqles.GetOkResult(row)
				if sqlOkResult.RowsAffected > 0 {
					matrix = append(matrix, rowData)
				} else {
					if sqlOkResult.InsertID > 0 {
						rowData = append(rowData, sqlOkResult.InsertID)
						matrix = append(matrix, rowData)
					}
				}
			} else {
				for _, col := range row {
					rowData = append(rowData, col)
				}
				matrix = append(matrix, rowData)
			}
		}
		r.Close(ctx)
		if okResult {
			return "ok", nil, matrix, nil
		}
	}

	return tableName, columns, matrix, nil
}
