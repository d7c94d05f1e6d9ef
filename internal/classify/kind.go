package classify

import "classbridge/internal/common"

// ConstructKind is the classified kind of one member declaration.
type ConstructKind int

const (
	// KindField - a data member.
	KindField ConstructKind = iota
	// KindConstructor - a constructor.
	KindConstructor
	// KindDestructor - a destructor.
	KindDestructor
	// KindMethod - a plain (non-abstract) method.
	KindMethod
	// KindAbstractMethod - a pure virtual, bodyless method.
	KindAbstractMethod
	// KindOperator - an operator overload from the recognized token set.
	KindOperator
)

// String returns a human-readable construct kind name.
func (k ConstructKind) String() string {
	switch k {
	case KindField:
		return "field"
	case KindConstructor:
		return "constructor"
	case KindDestructor:
		return "destructor"
	case KindMethod:
		return "method"
	case KindAbstractMethod:
		return "abstract method"
	case KindOperator:
		return "operator"
	default:
		return common.UnknownStr
	}
}
