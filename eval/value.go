package eval

import (
	"math"
	"sort"
	"strconv"
)

// ValueKind is the runtime type of a value.
type ValueKind int

const (
	NumberValue ValueKind = iota
	TextValue
)

func (vk ValueKind) String() string {
	if vk == TextValue {
		return "STRING"
	}
	return "NUMBER"
}

// Value is either a number or a text.
type Value struct {
	kind   ValueKind
	number float64
	text   string
}

// Number creates numeric value.
func Number(f float64) Value {
	return Value{kind: NumberValue, number: f}
}

// Text creates text value.
func Text(s string) Value {
	return Value{kind: TextValue, text: s}
}

func (v Value) Kind() ValueKind {
	return v.kind
}

// Number returns numeric value and true for numbers, 0 and false for texts.
func (v Value) Number() (float64, bool) {
	return v.number, v.kind == NumberValue
}

// Text returns printable form: text itself or formatted number.
func (v Value) Text() string {
	switch v.kind {
	case TextValue:
		return v.text
	default:
		return FormatNumber(v.number)
	}
}

func (v Value) String() string {
	return v.Text()
}

// Quoted returns text values in double quotes and numbers as is.
func (v Value) Quoted() string {
	if v.kind == TextValue {
		return strconv.Quote(v.text)
	}
	return FormatNumber(v.number)
}

// FormatNumber returns the shortest decimal form of f rounded to 15 significant digits,
// without exponent.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	rounded, e := strconv.ParseFloat(strconv.FormatFloat(f, 'g', 15, 64), 64)
	if e != nil {
		rounded = f
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

// Environment maps variable names to values.
type Environment map[string]Value

// Names returns variable names in ascending order.
func (env Environment) Names() []string {
	res := make([]string, 0, len(env))
	for name := range env {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}
