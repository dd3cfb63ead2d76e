package formula

import (
	"fmt"
	"strconv"
)

// Op identifies a binary arithmetic operator.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
)

// String returns the operator's source form.
func (op Op) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	}
	return "?"
}

// Expr is a node in a parsed formula tree.
//
// Trees are immutable after construction and each node is exclusively owned
// by its parent, so a tree may be evaluated concurrently by independent
// callers. The concrete node types form a closed set: Literal, Binary,
// Negate, and Dice.
type Expr interface {
	fmt.Stringer
	exprNode()
}

// Literal is a numeric constant.
type Literal struct {
	Value float64
}

// Binary applies Op to the results of Left and Right.
type Binary struct {
	Op    Op
	Left  Expr
	Right Expr
}

// Negate is unary minus.
type Negate struct {
	Operand Expr
}

// Dice rolls Count dice of Sides faces each and sums the outcomes.
type Dice struct {
	Count int
	Sides int
}

func (*Literal) exprNode() {}
func (*Binary) exprNode()  {}
func (*Negate) exprNode()  {}
func (*Dice) exprNode()    {}

// String renders the literal without a trailing fractional part when whole.
func (e *Literal) String() string {
	return strconv.FormatFloat(e.Value, 'g', -1, 64)
}

// String renders the operation fully parenthesized, making precedence and
// associativity explicit in the normalized form.
func (e *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right)
}

// String renders the negation fully parenthesized.
func (e *Negate) String() string {
	return fmt.Sprintf("(-%s)", e.Operand)
}

// String renders the dice term in NdM notation.
func (e *Dice) String() string {
	return fmt.Sprintf("%dd%d", e.Count, e.Sides)
}
