package pgqb

import (
	"github.com/syssam/pgqb/sqltype"
)

// Expression is a single comparison or arithmetic node. The left operand
// is a column or a nested expression; the right operand's rendering is
// decided when the expression is built: columns inline their qualified
// name, nil and booleans become the NULL/TRUE/FALSE literals, enum values
// bind their underlying string, nested expressions render recursively and
// anything else binds as one ? placeholder.
type Expression struct {
	left      QueryBuilder // *Column or *Expression
	op        string
	rightSQL  string       // rendered right operand when rightNode is nil
	rightNode QueryBuilder // nested expression, rendered at prepare time
	params    []any        // right-side bound parameters
}

func newExpression(left QueryBuilder, op string, right any) *Expression {
	e := &Expression{left: left, op: op}
	switch r := right.(type) {
	case *Column:
		e.rightSQL = r.String()
	case *Expression:
		e.rightNode = r
	case nil:
		e.rightSQL = "NULL"
	case bool:
		if r {
			e.rightSQL = "TRUE"
		} else {
			e.rightSQL = "FALSE"
		}
	case sqltype.EnumValue:
		e.rightSQL = "?"
		e.params = []any{r.String()}
	default:
		e.rightSQL = "?"
		e.params = []any{right}
	}
	return e
}

// equals renders = for ordinary values and IS for nil and booleans.
func equals(left QueryBuilder, right any) *Expression {
	if isNullOrBool(right) {
		return newExpression(left, "IS", right)
	}
	return newExpression(left, "=", right)
}

// notEquals renders != for ordinary values and IS NOT for nil and booleans.
func notEquals(left QueryBuilder, right any) *Expression {
	if isNullOrBool(right) {
		return newExpression(left, "IS NOT", right)
	}
	return newExpression(left, "!=", right)
}

func isNullOrBool(v any) bool {
	if v == nil {
		return true
	}
	_, ok := v.(bool)
	return ok
}

func (*Expression) predicate() {}

// Prepare renders the expression. Left-hand parameters precede right-hand
// parameters, matching placeholder order in the text.
func (e *Expression) Prepare() (string, []any, error) {
	leftSQL, params, err := e.left.Prepare()
	if err != nil {
		return "", nil, err
	}
	rightSQL := e.rightSQL
	if e.rightNode != nil {
		s, p, err := e.rightNode.Prepare()
		if err != nil {
			return "", nil, err
		}
		rightSQL = s
		params = append(params, p...)
	} else {
		params = append(params, e.params...)
	}
	return leftSQL + " " + e.op + " " + rightSQL, params, nil
}

// GT returns the comparison e > v.
func (e *Expression) GT(v any) *Expression { return newExpression(e, ">", v) }

// GTE returns the comparison e >= v.
func (e *Expression) GTE(v any) *Expression { return newExpression(e, ">=", v) }

// LT returns the comparison e < v.
func (e *Expression) LT(v any) *Expression { return newExpression(e, "<", v) }

// LTE returns the comparison e <= v.
func (e *Expression) LTE(v any) *Expression { return newExpression(e, "<=", v) }

// EQ returns the comparison e = v, coerced to IS when v is nil or a
// boolean.
func (e *Expression) EQ(v any) *Expression { return equals(e, v) }

// NEQ returns the comparison e != v, coerced to IS NOT when v is nil or a
// boolean.
func (e *Expression) NEQ(v any) *Expression { return notEquals(e, v) }

// Is is equivalent to EQ: IS against nil and booleans, = otherwise.
func (e *Expression) Is(v any) *Expression { return equals(e, v) }

// IsNot is equivalent to NEQ: IS NOT against nil and booleans, !=
// otherwise.
func (e *Expression) IsNot(v any) *Expression { return notEquals(e, v) }

// Add returns the arithmetic expression e + v.
func (e *Expression) Add(v any) *Expression { return newExpression(e, "+", v) }

// Sub returns the arithmetic expression e - v.
func (e *Expression) Sub(v any) *Expression { return newExpression(e, "-", v) }

// Mul returns the arithmetic expression e * v.
func (e *Expression) Mul(v any) *Expression { return newExpression(e, "*", v) }

// Div returns the arithmetic expression e / v.
func (e *Expression) Div(v any) *Expression { return newExpression(e, "/", v) }

// Mod returns the arithmetic expression e % v.
func (e *Expression) Mod(v any) *Expression { return newExpression(e, "%", v) }

// And combines the expression with an operand using AND.
func (e *Expression) And(p Predicate) *LogicGate {
	return &LogicGate{pred: e, op: "AND", operand: p}
}

// Or combines the expression with an operand using OR.
func (e *Expression) Or(p Predicate) *LogicGate {
	return &LogicGate{pred: e, op: "OR", operand: p}
}

// AndNot combines the expression with an operand using AND NOT.
func (e *Expression) AndNot(p Predicate) *LogicGate {
	return &LogicGate{pred: e, op: "AND NOT", operand: p}
}

// OrNot combines the expression with an operand using OR NOT.
func (e *Expression) OrNot(p Predicate) *LogicGate {
	return &LogicGate{pred: e, op: "OR NOT", operand: p}
}

// As aliases the expression in a select list.
func (e *Expression) As(alias string) *As {
	return &As{node: e, alias: alias}
}

// LogicGate joins a preceding predicate with an operand using AND, OR,
// AND NOT or OR NOT. An operand that is itself a LogicGate renders
// parenthesized; a bare expression renders flat. Chained gates extend to
// the left without grouping.
type LogicGate struct {
	pred    Predicate
	op      string
	operand Predicate
}

func (*LogicGate) predicate() {}

// Prepare renders the gate. Predecessor parameters precede operand
// parameters.
func (g *LogicGate) Prepare() (string, []any, error) {
	sql, params, err := g.pred.Prepare()
	if err != nil {
		return "", nil, err
	}
	opSQL, opParams, err := g.operand.Prepare()
	if err != nil {
		return "", nil, err
	}
	if _, ok := g.operand.(*LogicGate); ok {
		opSQL = "(" + opSQL + ")"
	}
	params = append(params, opParams...)
	return sql + " " + g.op + " " + opSQL, params, nil
}

// And extends the gate with a further AND operand.
func (g *LogicGate) And(p Predicate) *LogicGate {
	return &LogicGate{pred: g, op: "AND", operand: p}
}

// Or extends the gate with a further OR operand.
func (g *LogicGate) Or(p Predicate) *LogicGate {
	return &LogicGate{pred: g, op: "OR", operand: p}
}

// AndNot extends the gate with a further AND NOT operand.
func (g *LogicGate) AndNot(p Predicate) *LogicGate {
	return &LogicGate{pred: g, op: "AND NOT", operand: p}
}

// OrNot extends the gate with a further OR NOT operand.
func (g *LogicGate) OrNot(p Predicate) *LogicGate {
	return &LogicGate{pred: g, op: "OR NOT", operand: p}
}

// paren wraps a predicate in parentheses. Where applies it when the
// initial condition is a pre-composed gate, so the whole group binds
// before any combinator appended later.
type paren struct {
	node Predicate
}

func (*paren) predicate() {}

func (p *paren) Prepare() (string, []any, error) {
	sql, params, err := p.node.Prepare()
	if err != nil {
		return "", nil, err
	}
	return "(" + sql + ")", params, nil
}

// As renders its node followed by AS alias. A bare column is inlined from
// its qualified name without touching a parameter list.
type As struct {
	node  QueryBuilder // *Column or *Expression
	alias string
}

// Prepare renders the aliased node.
func (a *As) Prepare() (string, []any, error) {
	if c, ok := a.node.(*Column); ok {
		return c.String() + " AS " + a.alias, nil, nil
	}
	sql, params, err := a.node.Prepare()
	if err != nil {
		return "", nil, err
	}
	return sql + " AS " + a.alias, params, nil
}
