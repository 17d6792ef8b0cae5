package eval

import (
	"github.com/ava12/pseudo/lexer"
	"github.com/ava12/pseudo/parser"
	"github.com/ava12/pseudo/tree"
)

func (ev *Evaluator) execute(n tree.Node) error {
	if e := ev.checkBudget(n); e != nil {
		return e
	}

	ntn, valid := n.(*tree.NonTermNode)
	if !valid {
		return invalidNodeError(n, "statement")
	}

	switch ntn.Tag() {
	case parser.Program:
		return ev.executeAll(ntn.Children())
	case parser.Assignment:
		_, e := ev.assign(ntn)
		return e
	case parser.Print:
		return ev.print(ntn)
	case parser.Read:
		return notImplementedError(ntn)
	case parser.If:
		return ev.executeIf(ntn)
	case parser.While:
		return ev.executeWhile(ntn)
	case parser.DoWhile:
		return ev.executeDoWhile(ntn, 1)
	case parser.RepeatUntil:
		return ev.executeDoWhile(ntn, 0)
	case parser.For:
		return ev.executeFor(ntn)
	default:
		return invalidNodeError(n, "statement")
	}
}

func (ev *Evaluator) executeAll(ns []tree.Node) error {
	for _, n := range ns {
		if e := ev.execute(n); e != nil {
			return e
		}
	}
	return nil
}

// assign returns assigned variable name.
func (ev *Evaluator) assign(n *tree.NonTermNode) (string, error) {
	if n.Len() != 2 {
		return "", arityError(n)
	}

	id, valid := n.Child(0).(*tree.TokenNode)
	if !valid || id.Kind() != lexer.Identifier {
		return "", invalidNodeError(n.Child(0), "variable name")
	}

	v, e := ev.evaluate(n.Child(1))
	if e != nil {
		return "", e
	}

	ev.env[id.Text()] = v
	return id.Text(), nil
}

func (ev *Evaluator) print(n *tree.NonTermNode) error {
	if e := ev.write("\n"); e != nil {
		return e
	}
	for _, c := range n.Children() {
		v, e := ev.evaluate(c)
		if e != nil {
			return e
		}
		if e = ev.write(v.Text()); e != nil {
			return e
		}
	}
	return nil
}

// condition evaluates n that must be a number.
func (ev *Evaluator) condition(n tree.Node) (float64, error) {
	v, e := ev.evaluate(n)
	if e != nil {
		return 0, e
	}

	f, valid := v.Number()
	if !valid {
		return 0, typeMismatchError(n, NumberValue, v.Kind())
	}
	return f, nil
}

// executeIf runs then-branch only if condition is exactly 1.
func (ev *Evaluator) executeIf(n *tree.NonTermNode) error {
	if n.Len() == 0 {
		return arityError(n)
	}

	body := n.Children()[1:]
	var elseBranch *tree.NonTermNode
	if len(body) > 0 {
		last, valid := body[len(body)-1].(*tree.NonTermNode)
		if valid && last.Tag() == parser.Else {
			elseBranch = last
			body = body[:len(body)-1]
		}
	}

	c, e := ev.condition(n.Child(0))
	if e != nil {
		return e
	}

	switch {
	case c == 1:
		return ev.executeAll(body)
	case elseBranch != nil:
		return ev.executeAll(elseBranch.Children())
	default:
		return nil
	}
}

func (ev *Evaluator) executeWhile(n *tree.NonTermNode) error {
	if n.Len() == 0 {
		return arityError(n)
	}

	body := n.Children()[1:]
	for {
		if e := ev.checkBudget(n); e != nil {
			return e
		}

		c, e := ev.condition(n.Child(0))
		if e != nil {
			return e
		}
		if c != 1 {
			return nil
		}

		if e = ev.executeAll(body); e != nil {
			return e
		}
	}
}

// executeDoWhile runs the body at least once and repeats it while condition equals to loopValue.
func (ev *Evaluator) executeDoWhile(n *tree.NonTermNode, loopValue float64) error {
	if n.Len() == 0 {
		return arityError(n)
	}

	body := n.Children()[:n.Len()-1]
	for {
		if e := ev.checkBudget(n); e != nil {
			return e
		}

		if e := ev.executeAll(body); e != nil {
			return e
		}

		c, e := ev.condition(n.Child(-1))
		if e != nil {
			return e
		}
		if c != loopValue {
			return nil
		}
	}
}

// executeFor loops while final value is greater than loop variable (ascending loop)
// or less than loop variable (descending loop). Direction is defined by the first step value,
// absent step means ascending loop with step 1. Final value and step are evaluated at each iteration.
func (ev *Evaluator) executeFor(n *tree.NonTermNode) error {
	if n.Len() < 2 {
		return arityError(n)
	}

	seed, valid := n.Child(0).(*tree.NonTermNode)
	if !valid || seed.Tag() != parser.Assignment {
		return invalidNodeError(n.Child(0), "loop variable assignment")
	}

	final := n.Child(1)
	var stepExpr tree.Node
	body := n.Children()[2:]
	if fs, valid := n.Child(2).(*tree.NonTermNode); valid && fs.Tag() == parser.ForStep {
		if fs.Len() != 1 {
			return arityError(fs)
		}
		stepExpr = fs.Child(0)
		body = body[1:]
	}

	name, e := ev.assign(seed)
	if e != nil {
		return e
	}

	step := 1.0
	if stepExpr != nil {
		step, e = ev.condition(stepExpr)
		if e != nil {
			return e
		}
	}
	ascending := step > 0

	for {
		if e = ev.checkBudget(n); e != nil {
			return e
		}

		limit, e := ev.condition(final)
		if e != nil {
			return e
		}
		current, e := ev.loopVariable(seed, name)
		if e != nil {
			return e
		}
		if (ascending && limit <= current) || (!ascending && limit >= current) {
			return nil
		}

		if e = ev.executeAll(body); e != nil {
			return e
		}

		if stepExpr != nil {
			step, e = ev.condition(stepExpr)
			if e != nil {
				return e
			}
		}
		current, e = ev.loopVariable(seed, name)
		if e != nil {
			return e
		}
		ev.env[name] = Number(current + step)
	}
}

func (ev *Evaluator) loopVariable(n tree.Node, name string) (float64, error) {
	v := ev.env[name]
	f, valid := v.Number()
	if !valid {
		return 0, typeMismatchError(n, NumberValue, v.Kind())
	}
	return f, nil
}
