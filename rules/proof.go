package rules

import (
	"container/list"

	"github.com/aaronpuchert/logic/sem"
	"github.com/aaronpuchert/logic/walk"
)

// ProofStep is a single application of one rule: an ordered list of argument
// expressions (one per rule parameter) and an ordered list of premise
// references.  The rule is resolved by name against a rules theory at
// construction, and the context pairing parameters with arguments is built
// and type-checked once.
type ProofStep struct {
	rule Rule
	args []sem.Expression
	ctx  sem.Context
	refs []sem.Reference
}

// NewProofStep creates a proof step applying the named rule from the given
// rules theory.  It fails with a RuleError when the rule is unknown, an
// ArityError when the argument count does not match the rule's parameter
// list, and a TypeError when an argument's type does not fit its parameter.
func NewProofStep(ruleTheory *sem.Theory, ruleName string, args []sem.Expression, refs []sem.Reference) (*ProofStep, error) {
	pos := ruleTheory.Get(ruleName)
	if pos == nil {
		return nil, &sem.RuleError{Name: ruleName}
	}
	rule, ok := pos.Value.(Rule)
	if !ok {
		return nil, &sem.RuleError{Name: ruleName}
	}

	if len(args) != rule.Params().Len() {
		return nil, &sem.ArityError{Expected: rule.Params().Len(), Got: len(args), Where: rule.Name()}
	}

	// Build the context and check argument types against the parameter
	// types.  The comparator runs under the context built so far, so
	// dependent parameters like `(T y)` resolve through earlier entries.
	ctx := sem.Context{}
	compare := sem.NewTypeComparator(ctx)

	el := rule.Params().Front()
	for n := 0; el != nil; el, n = el.Next(), n+1 {
		param := el.Value.(sem.Object)
		if !compare.Equal(param.TypeOf(), args[n].TypeOf()) {
			return nil, &sem.TypeError{Got: args[n].TypeOf(), Want: param.TypeOf(), Where: rule.Name()}
		}
		ctx[param] = args[n]
	}

	return &ProofStep{rule: rule, args: args, ctx: ctx, refs: refs}, nil
}

// Rule returns the rule applied by this proof step.
func (p *ProofStep) Rule() Rule {
	return p.rule
}

// Args returns the argument expressions in parameter order.
func (p *ProofStep) Args() []sem.Expression {
	return p.args
}

// References returns the premise references in declared order.
func (p *ProofStep) References() []sem.Reference {
	return p.refs
}

// Substitute returns the substitute chosen for a rule parameter, or nil.
func (p *ProofStep) Substitute(param sem.Object) sem.Expression {
	return p.ctx[param]
}

// Proves reports whether the proof step proves the given statement.
func (p *ProofStep) Proves(stmt *sem.Statement) bool {
	return p.rule.Validate(p.ctx, p.refs, stmt.Definition())
}

// -----------------------------------------------------------------------------

// LongProof is a proof consisting of a sub-theory of intermediate lemmas.
// The sub-theory is parented to the theory of the proved statement at the
// statement's position, so relative references like `parent~2` reach the
// outer theory.
type LongProof struct {
	subTheory *sem.Theory
}

// NewLongProof creates a long proof bound under the given position of the
// outer theory.
func NewLongProof(theory *sem.Theory, pos *list.Element) *LongProof {
	return &LongProof{subTheory: sem.NewTheory(theory, pos)}
}

// SubTheory returns the theory of intermediate lemmas.
func (p *LongProof) SubTheory() *sem.Theory {
	return p.subTheory
}

// Proves reports whether the long proof proves the given statement: the
// sub-theory must verify and its last object must be a statement whose
// expression equals the proved statement's expression.
func (p *LongProof) Proves(stmt *sem.Statement) bool {
	last := p.subTheory.Back()
	if last == nil {
		return false
	}

	final, ok := last.Value.(*sem.Statement)
	if !ok {
		return false
	}

	if !walk.NewSubstitution(final.Definition()).Check(stmt.Definition(), nil) {
		return false
	}

	return p.subTheory.Verify()
}
