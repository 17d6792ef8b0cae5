package eval

import (
	"math"
	"strconv"

	"github.com/ava12/pseudo/lexer"
	"github.com/ava12/pseudo/parser"
	"github.com/ava12/pseudo/tree"
)

type binaryOp func(a, b float64) float64

func truth(cond bool) float64 {
	if cond {
		return 1
	}
	return 0
}

// toInt32 truncates f toward zero and wraps it to 32 bits, NaN and infinities become 0.
func toInt32(f float64) int32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int32(int64(math.Mod(math.Trunc(f), 1<<32)))
}

func shiftCount(f float64) uint32 {
	return uint32(toInt32(f)) & 31
}

// leftFolded operators are applied left to right to flat operand lists.
var leftFolded = map[tree.Tag]binaryOp{
	parser.LogicalOr:      func(a, b float64) float64 { return truth(a == 1 || b == 1) },
	parser.LogicalAnd:     func(a, b float64) float64 { return truth(a == 1 && b == 1) },
	parser.BitwiseOr:      func(a, b float64) float64 { return float64(toInt32(a) | toInt32(b)) },
	parser.BitwiseXor:     func(a, b float64) float64 { return float64(toInt32(a) ^ toInt32(b)) },
	parser.BitwiseAnd:     func(a, b float64) float64 { return float64(toInt32(a) & toInt32(b)) },
	parser.NotEqual:       func(a, b float64) float64 { return truth(a != b) },
	parser.Equal:          func(a, b float64) float64 { return truth(a == b) },
	parser.LessThan:       func(a, b float64) float64 { return truth(a < b) },
	parser.LessOrEqual:    func(a, b float64) float64 { return truth(a <= b) },
	parser.GreaterThan:    func(a, b float64) float64 { return truth(a > b) },
	parser.GreaterOrEqual: func(a, b float64) float64 { return truth(a >= b) },
	parser.ShiftLeft:      func(a, b float64) float64 { return float64(toInt32(a) << shiftCount(b)) },
	parser.ShiftRight:     func(a, b float64) float64 { return float64(toInt32(a) >> shiftCount(b)) },
	parser.Subtract:       func(a, b float64) float64 { return a - b },
	parser.Multiply:       func(a, b float64) float64 { return a * b },
	parser.Divide:         func(a, b float64) float64 { return a / b },
	parser.Modulus:        math.Mod,
}

var unaryOps = map[tree.Tag]func(float64) float64{
	parser.UnaryMinus: func(a float64) float64 { return -a },
	parser.UnaryPlus:  func(a float64) float64 { return a },
	parser.LogicalNot: func(a float64) float64 { return truth(a == 0) },
	parser.BitwiseNot: func(a float64) float64 { return float64(^toInt32(a)) },
	parser.Floor:      math.Floor,
}

func (ev *Evaluator) evaluate(n tree.Node) (Value, error) {
	if e := ev.checkBudget(n); e != nil {
		return Value{}, e
	}

	switch x := n.(type) {
	case *tree.TokenNode:
		return ev.atom(x)
	case *tree.NonTermNode:
		return ev.operator(x)
	default:
		return Value{}, invalidNodeError(n, "expression")
	}
}

func (ev *Evaluator) atom(n *tree.TokenNode) (Value, error) {
	switch n.Kind() {
	case lexer.Number:
		f, e := strconv.ParseFloat(n.Text(), 64)
		if e != nil {
			return Value{}, invalidNumberError(n, n.Text())
		}
		return Number(f), nil

	case lexer.String:
		return Text(n.Text()), nil

	case lexer.Identifier:
		v, found := ev.env[n.Text()]
		if !found {
			return Value{}, undeclaredError(n, n.Text())
		}
		return v, nil

	default:
		return Value{}, invalidNodeError(n, "expression")
	}
}

func (ev *Evaluator) operator(n *tree.NonTermNode) (Value, error) {
	tag := n.Tag()
	if tag == parser.Expression {
		if n.Len() != 1 {
			return Value{}, arityError(n)
		}
		return ev.evaluate(n.Child(0))
	}

	if op, found := unaryOps[tag]; found {
		if n.Len() != 1 {
			return Value{}, arityError(n)
		}
		a, e := ev.operand(n, n.Child(0))
		if e != nil {
			return Value{}, e
		}
		return Number(op(a)), nil
	}

	if n.Len() < 2 {
		return Value{}, arityError(n)
	}

	switch tag {
	case parser.Sum:
		return ev.sum(n)
	case parser.Power:
		return ev.power(n)
	}

	op, found := leftFolded[tag]
	if !found {
		return Value{}, invalidNodeError(n, "expression")
	}

	res, e := ev.operand(n, n.Child(0))
	if e != nil {
		return Value{}, e
	}
	for _, c := range n.Children()[1:] {
		b, e := ev.operand(n, c)
		if e != nil {
			return Value{}, e
		}
		res = op(res, b)
	}
	return Number(res), nil
}

// operand evaluates numeric operand c of operator n.
func (ev *Evaluator) operand(n *tree.NonTermNode, c tree.Node) (float64, error) {
	v, e := ev.evaluate(c)
	if e != nil {
		return 0, e
	}

	f, valid := v.Number()
	if !valid {
		return 0, typeMismatchError(n, NumberValue, v.Kind())
	}
	return f, nil
}

// sum adds numbers or concatenates texts, a number is converted to text if the other operand is a text.
func (ev *Evaluator) sum(n *tree.NonTermNode) (Value, error) {
	res, e := ev.evaluate(n.Child(0))
	if e != nil {
		return Value{}, e
	}

	for _, c := range n.Children()[1:] {
		v, e := ev.evaluate(c)
		if e != nil {
			return Value{}, e
		}

		if res.Kind() == TextValue || v.Kind() == TextValue {
			res = Text(res.Text() + v.Text())
		} else {
			res = Number(res.number + v.number)
		}
	}
	return res, nil
}

// power is right-associative: operands are evaluated left to right, then folded right to left.
func (ev *Evaluator) power(n *tree.NonTermNode) (Value, error) {
	operands := make([]float64, n.Len())
	for i, c := range n.Children() {
		f, e := ev.operand(n, c)
		if e != nil {
			return Value{}, e
		}
		operands[i] = f
	}

	res := operands[len(operands)-1]
	for i := len(operands) - 2; i >= 0; i-- {
		res = math.Pow(operands[i], res)
	}
	return Number(res), nil
}
