package udf

import (
	"fmt"
	"strings"

	"github.com/dolthub/go-mysql-server/sql"
	"github.com/dolthub/go-mysql-server/sql/expression"
	"github.com/shopspring/decimal"
)

// Function is a go-mysql-server expression evaluating one Descriptor.
type Function struct {
	desc *Descriptor
	init *InitResult
	args []sql.Expression
}

var _ sql.FunctionExpression = (*Function)(nil)

// NewFunction runs the registration check for desc and builds the call.
func NewFunction(desc *Descriptor, args ...sql.Expression) (*Function, error) {
	result, err := desc.Init(describeArgs(args))
	if err != nil {
		return nil, err
	}
	return &Function{desc: desc, init: result, args: args}, nil
}

// describeArgs avoids Type() on children: during parsing they are still
// unresolved placeholders.
func describeArgs(args []sql.Expression) []Arg {
	described := make([]Arg, len(args))
	for i, arg := range args {
		described[i] = Arg{Kind: KindReal}
		if lit, ok := arg.(*expression.Literal); ok {
			described[i] = Arg{Kind: kindOf(lit.Value()), Const: true}
		}
	}
	return described
}

func kindOf(v any) Kind {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInt
	case decimal.Decimal, decimal.NullDecimal:
		return KindDecimal
	case string, []byte:
		return KindString
	}
	return KindReal
}

func (f *Function) FunctionName() string {
	return f.desc.Name
}

func (f *Function) Description() string {
	return f.desc.Description
}

func (f *Function) Descriptor() *Descriptor {
	return f.desc
}

// InitResult returns the registration hints computed when the call was built.
func (f *Function) InitResult() *InitResult {
	return f.init
}

func (f *Function) Resolved() bool {
	for _, arg := range f.args {
		if !arg.Resolved() {
			return false
		}
	}
	return true
}

func (f *Function) String() string {
	args := make([]string, len(f.args))
	for i, arg := range f.args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", f.desc.Name, strings.Join(args, ", "))
}

func (f *Function) Type() sql.Type {
	return sql.Float64
}

func (f *Function) IsNullable() bool {
	return f.init.MaybeNull
}

func (f *Function) Children() []sql.Expression {
	return f.args
}

func (f *Function) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != len(f.args) {
		return nil, sql.ErrInvalidChildrenNumber.New(f, len(children), len(f.args))
	}
	return NewFunction(f.desc, children...)
}

// Eval never fails on bad values: NULL, non-numeric, NaN, +/-Inf and every
// other undefined case evaluate to NULL.
func (f *Function) Eval(ctx *sql.Context, row sql.Row) (interface{}, error) {
	values := make([]float64, len(f.args))
	for i, arg := range f.args {
		v, err := arg.Eval(ctx, row)
		if err != nil {
			return nil, err
		}
		fv, ok := ToFloat64(v)
		if !ok {
			return nil, nil
		}
		values[i] = fv
	}
	return f.desc.Eval(values).Interface(), nil
}

// IsConstant reports whether every argument is a literal, in which case the
// call may be folded once per query.
func (f *Function) IsConstant() bool {
	return f.init.ConstItem
}

// Fold replaces a constant call with its literal value. Non-constant calls
// are returned unchanged.
func (f *Function) Fold(ctx *sql.Context) (sql.Expression, error) {
	if !f.IsConstant() {
		return f, nil
	}
	v, err := f.Eval(ctx, nil)
	if err != nil {
		return nil, err
	}
	return expression.NewLiteral(v, sql.Float64), nil
}
