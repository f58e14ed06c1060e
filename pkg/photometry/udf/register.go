package udf

import (
	"strings"

	"github.com/dolthub/go-mysql-server/sql"
)

// FunctionRegistry is satisfied by the go-mysql-server analyzer catalog.
type FunctionRegistry interface {
	RegisterFunction(ctx *sql.Context, fns ...sql.Function)
}

// SQLFunction wraps desc for a go-mysql-server catalog. Arity is checked
// when the query is analyzed, before any row is read. The catalog key is
// lower case: the parser lowers function names before lookup.
func SQLFunction(desc *Descriptor) sql.Function {
	return sql.FunctionN{
		Name: strings.ToLower(desc.Name),
		Fn: func(args ...sql.Expression) (sql.Expression, error) {
			return NewFunction(desc, args...)
		},
	}
}

// SQLFunctions returns every photometry function in catalog form.
func SQLFunctions() []sql.Function {
	descriptors := Descriptors()
	fns := make([]sql.Function, len(descriptors))
	for i, d := range descriptors {
		fns[i] = SQLFunction(d)
	}
	return fns
}

// RegisterAll adds the photometry functions to registry.
func RegisterAll(ctx *sql.Context, registry FunctionRegistry) {
	registry.RegisterFunction(ctx, SQLFunctions()...)
}
