package classify

import (
	"strings"

	"classbridge/internal/source"
)

// OperatorKind identifies a recognized operator token.
type OperatorKind int

const (
	// OpUnrecognized - an operator-shaped name outside the token set.
	OpUnrecognized OperatorKind = iota
	// OpEqual - operator==.
	OpEqual
	// OpNotEqual - operator!=.
	OpNotEqual
	// OpAdd - operator+.
	OpAdd
	// OpSubtract - operator-.
	OpSubtract
	// OpMultiply - operator*.
	OpMultiply
	// OpDivide - operator/.
	OpDivide
	// OpLess - operator<.
	OpLess
	// OpLessEqual - operator<=.
	OpLessEqual
	// OpGreater - operator>.
	OpGreater
	// OpGreaterEqual - operator>=.
	OpGreaterEqual
	// OpSpaceship - operator<=> (three-way comparison).
	OpSpaceship
	// OpStreamOut - operator<<.
	OpStreamOut
	// OpStreamIn - operator>>.
	OpStreamIn
	// OpIndex - operator[].
	OpIndex
	// OpCall - operator().
	OpCall
	// OpAssign - operator=.
	OpAssign
	// OpArrow - operator->.
	OpArrow
	// OpDeref - unary operator* spelled as operator*() is still OpMultiply;
	// OpDeref is reserved for explicit dereference overloads.
	OpDeref
	// OpIncrement - operator++.
	OpIncrement
	// OpDecrement - operator--.
	OpDecrement
)

// String returns the operator token, e.g. "==".
func (o OperatorKind) String() string {
	for tok, kind := range operatorTokens {
		if kind == o {
			return tok
		}
	}

	return "?"
}

// operatorTokens is the recognized operator token set. Anything outside
// this set classifies as a plain method, never guessed as an operator.
// Recognition is wider than representability: tokens like "<<" classify
// as operators and are later rejected by the desugaring mapper.
var operatorTokens = map[string]OperatorKind{
	"==":  OpEqual,
	"!=":  OpNotEqual,
	"+":   OpAdd,
	"-":   OpSubtract,
	"*":   OpMultiply,
	"/":   OpDivide,
	"<":   OpLess,
	"<=":  OpLessEqual,
	">":   OpGreater,
	">=":  OpGreaterEqual,
	"<=>": OpSpaceship,
	"<<":  OpStreamOut,
	">>":  OpStreamIn,
	"[]":  OpIndex,
	"()":  OpCall,
	"=":   OpAssign,
	"->":  OpArrow,
	"++":  OpIncrement,
	"--":  OpDecrement,
}

const operatorPrefix = "operator"

// Classified pairs a member with its assigned construct kind.
type Classified struct {
	Member *source.MemberDeclaration
	Kind   ConstructKind
	// Operator is set when Kind is KindOperator.
	Operator OperatorKind
}

// Member classifies a single member of the named type.
func Member(typeName string, m *source.MemberDeclaration) Classified {
	c := Classified{Member: m}

	switch {
	case m.IsFieldDecl:
		c.Kind = KindField
	case m.Name == "~"+typeName && len(m.Params) == 0:
		c.Kind = KindDestructor
	case m.Name == typeName && m.ReturnType.IsZero():
		c.Kind = KindConstructor
	case isOperatorName(m.Name):
		if op, ok := operatorTokens[operatorToken(m.Name)]; ok {
			c.Kind = KindOperator
			c.Operator = op
		} else {
			// Not in the recognized token set: plain method.
			c.Kind = KindMethod
		}
	case m.IsPureVirtual && !m.HasBody:
		c.Kind = KindAbstractMethod
	default:
		c.Kind = KindMethod
	}

	return c
}

// Members classifies every member of the declaration, in order.
func Members(decl *source.TypeDeclaration) []Classified {
	out := make([]Classified, len(decl.Members))
	for i := range decl.Members {
		out[i] = Member(decl.Name.Name, &decl.Members[i])
	}

	return out
}

// isOperatorName reports whether the name is spelled as an operator
// overload ("operator" followed by a non-identifier token).
func isOperatorName(name string) bool {
	if !strings.HasPrefix(name, operatorPrefix) {
		return false
	}

	rest := operatorToken(name)
	if rest == "" {
		return false
	}

	// "operatorXyz" is a legal method name, not an overload.
	first := rest[0]
	isIdent := first == '_' ||
		(first >= 'a' && first <= 'z') ||
		(first >= 'A' && first <= 'Z') ||
		(first >= '0' && first <= '9')

	return !isIdent
}

// operatorToken extracts the token part of an operator name, e.g.
// "operator==" -> "==".
func operatorToken(name string) string {
	return strings.TrimSpace(strings.TrimPrefix(name, operatorPrefix))
}
