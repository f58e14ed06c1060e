package udf

import (
	"errors"
	"fmt"

	"github.com/trimble-oss/trcphotometry/pkg/photometry"
)

// ErrArgumentCount is wrapped by every arity failure reported from Init.
var ErrArgumentCount = errors.New("wrong argument count")

// FullPrecisionDecimals tells a host not to round a DOUBLE result.
const FullPrecisionDecimals = 31

type Kind int

const (
	KindReal Kind = iota
	KindInt
	KindDecimal
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindReal:
		return "REAL"
	case KindInt:
		return "INT"
	case KindDecimal:
		return "DECIMAL"
	case KindString:
		return "STRING"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Arg is what a host knows about one call argument at registration time.
type Arg struct {
	Kind Kind
	// Const is set when the argument is a literal in the query.
	Const bool
}

// Descriptor describes one scalar photometry function to a SQL host.
type Descriptor struct {
	Name        string
	Description string
	Arity       int
	MaybeNull   bool
	Decimals    int
	// Eval receives exactly Arity arguments, already coerced to float64.
	Eval func(args []float64) photometry.Value
}

// InitResult is the outcome of a successful registration.
type InitResult struct {
	ArgKinds  []Kind
	MaybeNull bool
	ConstItem bool
	Decimals  int
}

// Init validates a call shape against d and returns the registration hints.
// An arity mismatch is the only failure.
func (d *Descriptor) Init(args []Arg) (*InitResult, error) {
	if len(args) != d.Arity {
		return nil, &ArityError{Name: d.Name, Want: d.Arity, Got: len(args)}
	}
	result := &InitResult{
		ArgKinds:  make([]Kind, len(args)),
		MaybeNull: d.MaybeNull,
		ConstItem: len(args) > 0,
		Decimals:  d.Decimals,
	}
	for i, arg := range args {
		// Every argument is evaluated as DOUBLE regardless of its declared kind.
		result.ArgKinds[i] = KindReal
		if !arg.Const {
			result.ConstItem = false
		}
	}
	return result, nil
}

// ArityError reports a call with the wrong number of arguments.
type ArityError struct {
	Name string
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	noun := "arguments"
	if e.Want == 1 {
		noun = "argument"
	}
	return fmt.Sprintf("%s() expects exactly %d %s", e.Name, e.Want, noun)
}

func (e *ArityError) Unwrap() error {
	return ErrArgumentCount
}
