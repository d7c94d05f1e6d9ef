package mapper

import (
	"classbridge/internal/classify"
	"classbridge/internal/common"
	"classbridge/internal/source"
)

// Outcome is the translation confidence for one construct.
type Outcome int

const (
	// OutcomeMapped - translated losslessly.
	OutcomeMapped Outcome = iota
	// OutcomeBestEffort - translated with a semantic caveat.
	OutcomeBestEffort
	// OutcomeUnmappable - no target equivalent; requires a human.
	OutcomeUnmappable
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeMapped:
		return "mapped"
	case OutcomeBestEffort:
		return "best-effort"
	case OutcomeUnmappable:
		return "unmappable"
	default:
		return common.UnknownStr
	}
}

// Result is the final mapping record for one construct: a member, or
// the type declaration itself.
type Result struct {
	// Construct is the qualified construct name, e.g.
	// "Geometry::Vector2D::operator==".
	Construct string
	// ConstructKind labels what was mapped ("type", "field",
	// "operator", ...).
	ConstructKind string
	// Loc is the construct's source location.
	Loc source.Location
	// Outcome is the terminal translation outcome.
	Outcome Outcome
	// Note explains a best-effort caveat.
	Note string
	// Reason explains an unmappable outcome.
	Reason string
}

// constructState tracks the per-construct lifecycle:
// pending -> classified -> terminal outcome. Terminal states are final;
// a construct is never revisited once settled.
type constructState int

const (
	statePending constructState = iota
	stateClassified
	stateSettled
)

// construct carries one member through classification to its outcome.
type construct struct {
	classified classify.Classified
	state      constructState
	result     Result
}

// newConstruct enters the classified state directly; classification
// happens in one pass before any mapper runs.
func newConstruct(owner string, c classify.Classified) *construct {
	name := owner + "::" + c.Member.Name

	return &construct{
		classified: c,
		state:      stateClassified,
		result: Result{
			Construct:     name,
			ConstructKind: c.Kind.String(),
			Loc:           c.Member.Loc,
		},
	}
}

// settle assigns the terminal outcome. The first settle wins; later
// calls are ignored, keeping the pass a single forward traversal.
func (c *construct) settle(outcome Outcome, detail string) {
	if c.state == stateSettled {
		return
	}

	c.state = stateSettled
	c.result.Outcome = outcome

	switch outcome {
	case OutcomeBestEffort:
		c.result.Note = detail
	case OutcomeUnmappable:
		c.result.Reason = detail
	}
}

// settled reports whether the construct reached a terminal state.
func (c *construct) settled() bool {
	return c.state == stateSettled
}
