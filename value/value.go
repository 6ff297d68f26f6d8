// Package value implements the tagged Value type shared by the interpreter,
// instruction generators and writers: nil, integer, real, string, bool,
// list and callable.
package value

import (
	"fmt"
	"strconv"
	"strings"
)

type Kind int

const (
	Nil Kind = iota
	Integer
	Real
	String
	Bool
	List
	Callable
)

func (k Kind) String() string {
	switch k {
	case Nil:
		return "nil"
	case Integer:
		return "integer"
	case Real:
		return "real"
	case String:
		return "string"
	case Bool:
		return "bool"
	case List:
		return "list"
	case Callable:
		return "callable"
	default:
		return "unknown"
	}
}

// Fn is implemented by both native built-ins and user-defined ("fn")
// functions. The interpreter package holds the concrete types and performs
// the actual call through its own wider callable interface; Value
// itself only needs to know a callable's name and arity.
type Fn interface {
	Arity() int
	FnName() string
}

// Value is lasm's tagged runtime value. Exactly one of the typed fields is
// meaningful, selected by Kind; equality (Equal) and truthiness (IsTruthy)
// follow spec semantics rather than Go's native comparisons.
type Value struct {
	Kind Kind
	I    int64
	R    float64
	S    string
	B    bool
	L    []Value
	C    Fn
}

func Int(n int64) Value        { return Value{Kind: Integer, I: n} }
func Real_(n float64) Value    { return Value{Kind: Real, R: n} }
func Str(s string) Value       { return Value{Kind: String, S: s} }
func Bool_(b bool) Value       { return Value{Kind: Bool, B: b} }
func List_(items []Value) Value { return Value{Kind: List, L: items} }
func Callable_(c Fn) Value     { return Value{Kind: Callable, C: c} }

var NilValue = Value{Kind: Nil}

// IsScalar is true for integer and real values (spec §3).
func (v Value) IsScalar() bool { return v.Kind == Integer || v.Kind == Real }

// IsTruthy treats nil and false as false; everything else is true.
func (v Value) IsTruthy() bool {
	switch v.Kind {
	case Nil:
		return false
	case Bool:
		return v.B
	default:
		return true
	}
}

// Equal is defined only within the same variant (spec §3).
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case Nil:
		return true
	case Integer:
		return v.I == other.I
	case Real:
		return v.R == other.R
	case String:
		return v.S == other.S
	case Bool:
		return v.B == other.B
	case List:
		if len(v.L) != len(other.L) {
			return false
		}
		for i := range v.L {
			if !v.L[i].Equal(other.L[i]) {
				return false
			}
		}
		return true
	case Callable:
		return v.C == other.C
	default:
		return false
	}
}

// AsFloat64 promotes an integer or real value to float64 for arithmetic
// that mixes the two. ok is false for any non-scalar value.
func (v Value) AsFloat64() (float64, bool) {
	switch v.Kind {
	case Integer:
		return float64(v.I), true
	case Real:
		return v.R, true
	default:
		return 0, false
	}
}

// FormatHex renders a value the way the symbols writer and diagnostics print
// it: integers use the supplied hex prefix, reals use Go's canonical
// decimal form, strings render unquoted.
func (v Value) FormatHex(hexPrefix string) string {
	switch v.Kind {
	case Nil:
		return "nil"
	case Integer:
		sign := ""
		n := v.I
		if n < 0 {
			sign, n = "-", -n
		}
		return sign + hexPrefix + strconv.FormatInt(n, 16)
	case Real:
		return strconv.FormatFloat(v.R, 'g', -1, 64)
	case String:
		return v.S
	case Bool:
		return strconv.FormatBool(v.B)
	case List:
		parts := make([]string, len(v.L))
		for i, e := range v.L {
			parts[i] = e.FormatHex(hexPrefix)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case Callable:
		return fmt.Sprintf("<fn %s>", v.C.FnName())
	default:
		return ""
	}
}

func (v Value) String() string { return v.FormatHex("0x") }
