// Package rules implements the inference rules of the logic kernel and the
// proofs that apply them: tautologies, equivalence rules, deduction rules,
// single proof steps and long proofs with intermediate lemmas.
package rules

import (
	"fmt"

	"github.com/aaronpuchert/logic/sem"
	"github.com/aaronpuchert/logic/walk"
)

// Rule is the interface for inference rules.  A rule is an object of the
// built-in type `rule` carrying an ordered parameter list (structurally a
// theory fragment) and one or more statement templates.
type Rule interface {
	sem.Object

	// Params returns the ordered parameter list of the rule.
	Params() *sem.Theory

	// Validate reports whether a conclusion can be derived with this rule
	// from the referenced premise statements, under a context mapping the
	// rule's parameters to substitute expressions.
	Validate(ctx sem.Context, premises []sem.Reference, conclusion sem.Expression) bool
}

// ruleBase carries the name and parameter list shared by all rule shapes.
type ruleBase struct {
	name   string
	params *sem.Theory
}

func (r *ruleBase) Name() string {
	return r.name
}

func (r *ruleBase) TypeOf() sem.Expression {
	return sem.RuleType
}

func (r *ruleBase) Definition() sem.Expression {
	return nil
}

func (r *ruleBase) Params() *sem.Theory {
	return r.params
}

// premiseExpr resolves a premise reference to the expression of the
// referenced statement.  It returns nil if the reference does not point at a
// statement.
func premiseExpr(ref sem.Reference) sem.Expression {
	stmt, ok := ref.Resolve().(*sem.Statement)
	if !ok {
		return nil
	}
	return stmt.Definition()
}

// -----------------------------------------------------------------------------

// Tautology asserts that a statement template holds for all substitutions of
// the rule's parameters.
type Tautology struct {
	ruleBase
	taut sem.Expression
}

// NewTautology creates a tautology rule.  The template must be a statement.
func NewTautology(name string, params *sem.Theory, taut sem.Expression) (*Tautology, error) {
	if taut.TypeOf() != sem.Expression(sem.StatementType) {
		return nil, &sem.TypeError{Got: taut.TypeOf(), Want: sem.StatementType, Where: name}
	}

	return &Tautology{ruleBase: ruleBase{name: name, params: params}, taut: taut}, nil
}

// Statement returns the tautological statement template.
func (t *Tautology) Statement() sem.Expression {
	return t.taut
}

// Validate checks a tautology application: no premises, and the conclusion
// must match the template under the context.
func (t *Tautology) Validate(ctx sem.Context, premises []sem.Reference, conclusion sem.Expression) bool {
	if len(premises) != 0 {
		return false
	}

	return walk.NewSubstitution(t.taut).Check(conclusion, ctx)
}

// -----------------------------------------------------------------------------

// EquivalenceRule asserts that two statement templates are inter-derivable in
// both directions.
type EquivalenceRule struct {
	ruleBase
	first, second sem.Expression
}

// NewEquivalenceRule creates an equivalence rule.  Both templates must be
// statements.
func NewEquivalenceRule(name string, params *sem.Theory, first, second sem.Expression) (*EquivalenceRule, error) {
	if first.TypeOf() != sem.Expression(sem.StatementType) {
		return nil, &sem.TypeError{Got: first.TypeOf(), Want: sem.StatementType, Where: "first statement"}
	}
	if second.TypeOf() != sem.Expression(sem.StatementType) {
		return nil, &sem.TypeError{Got: second.TypeOf(), Want: sem.StatementType, Where: "second statement"}
	}

	return &EquivalenceRule{ruleBase: ruleBase{name: name, params: params}, first: first, second: second}, nil
}

// First returns the first statement template.
func (e *EquivalenceRule) First() sem.Expression {
	return e.first
}

// Second returns the second statement template.
func (e *EquivalenceRule) Second() sem.Expression {
	return e.second
}

// Validate checks an equivalence application: exactly one premise, and the
// premise/conclusion pair must match the two templates in either direction.
func (e *EquivalenceRule) Validate(ctx sem.Context, premises []sem.Reference, conclusion sem.Expression) bool {
	if len(premises) != 1 {
		return false
	}

	premise := premiseExpr(premises[0])
	if premise == nil {
		return false
	}

	first := walk.NewSubstitution(e.first)
	second := walk.NewSubstitution(e.second)
	return (first.Check(premise, ctx) && second.Check(conclusion, ctx)) ||
		(first.Check(conclusion, ctx) && second.Check(premise, ctx))
}

// -----------------------------------------------------------------------------

// DeductionRule asserts that a conclusion template may be derived once all
// premise templates are matched by referenced statements.
type DeductionRule struct {
	ruleBase
	premises   []sem.Expression
	conclusion sem.Expression
}

// NewDeductionRule creates a deduction rule.  All premise templates and the
// conclusion template must be statements.
func NewDeductionRule(name string, params *sem.Theory, premises []sem.Expression, conclusion sem.Expression) (*DeductionRule, error) {
	for n, premise := range premises {
		if premise.TypeOf() != sem.Expression(sem.StatementType) {
			return nil, &sem.TypeError{Got: premise.TypeOf(), Want: sem.StatementType, Where: fmt.Sprintf("premise %d", n+1)}
		}
	}
	if conclusion.TypeOf() != sem.Expression(sem.StatementType) {
		return nil, &sem.TypeError{Got: conclusion.TypeOf(), Want: sem.StatementType, Where: "conclusion"}
	}

	return &DeductionRule{
		ruleBase:   ruleBase{name: name, params: params},
		premises:   premises,
		conclusion: conclusion,
	}, nil
}

// Premises returns the ordered premise templates.
func (d *DeductionRule) Premises() []sem.Expression {
	return d.premises
}

// Conclusion returns the conclusion template.
func (d *DeductionRule) Conclusion() sem.Expression {
	return d.conclusion
}

// Validate checks a deduction application: one reference per premise
// template, each matching in declared order, then the conclusion.
func (d *DeductionRule) Validate(ctx sem.Context, premises []sem.Reference, conclusion sem.Expression) bool {
	if len(premises) != len(d.premises) {
		return false
	}

	for n, template := range d.premises {
		premise := premiseExpr(premises[n])
		if premise == nil {
			return false
		}
		if !walk.NewSubstitution(template).Check(premise, ctx) {
			return false
		}
	}

	return walk.NewSubstitution(d.conclusion).Check(conclusion, ctx)
}
