package sem

import (
	"fmt"
	"strings"
)

// TypeError reports that an expression has the wrong type.  Want may be nil
// when the expectation is a family of types rather than a single one, in
// which case WantDesc carries a description.
type TypeError struct {
	Got      Expression
	Want     Expression
	WantDesc string
	Where    string
}

func (e *TypeError) Error() string {
	want := e.WantDesc
	if e.Want != nil {
		want = TypeString(e.Want)
	}

	msg := fmt.Sprintf("expected %s, but got %s", want, TypeString(e.Got))
	if e.Where != "" {
		msg += " in " + e.Where
	}
	return msg
}

// Reasons for a NameError
const (
	ReasonNotFound = iota
	ReasonDuplicate
	ReasonRedefined
)

// NameError reports a problem with an identifier: it was not found, it was
// declared twice within one theory, or its definition was set twice.
type NameError struct {
	Reason int
	Name   string
}

func (e *NameError) Error() string {
	switch e.Reason {
	case ReasonDuplicate:
		return "duplicate symbol: " + e.Name
	case ReasonRedefined:
		return "definition already set: " + e.Name
	default:
		return "did not find symbol: " + e.Name
	}
}

// ArityError reports a mismatch between the number of expected and given
// arguments or premises.
type ArityError struct {
	Expected int
	Got      int
	Where    string
}

func (e *ArityError) Error() string {
	msg := fmt.Sprintf("expected %d arguments, but got %d", e.Expected, e.Got)
	if e.Where != "" {
		msg += " in " + e.Where
	}
	return msg
}

// RuleError reports that a proof step names a rule that is absent from the
// rules theory.
type RuleError struct {
	Name string
}

func (e *RuleError) Error() string {
	return "undefined rule: " + e.Name
}

// -----------------------------------------------------------------------------

// TypeString renders a type expression for error messages.  Lambda types are
// written as `(args)->return`.
func TypeString(e Expression) string {
	var sb strings.Builder
	writeType(&sb, e)
	return sb.String()
}

func writeType(sb *strings.Builder, e Expression) {
	switch v := e.(type) {
	case *BuiltInType:
		switch v.Variant {
		case KindType:
			sb.WriteString("type")
		case KindStatement:
			sb.WriteString("statement")
		case KindRule:
			sb.WriteString("rule")
		default:
			sb.WriteString("undefined")
		}

	case *LambdaType:
		sb.WriteByte('(')
		for n, arg := range v.Args() {
			if n > 0 {
				sb.WriteByte(' ')
			}
			writeType(sb, arg)
		}
		sb.WriteString(")->")
		writeType(sb, v.ReturnType())

	case *AtomicExpr:
		sb.WriteString(v.Atom().Name())

	default:
		sb.WriteByte('?')
	}
}

// ordinal builds location strings like "argument 2" for error messages.
func ordinal(what string, n int) string {
	return fmt.Sprintf("%s %d", what, n+1)
}
