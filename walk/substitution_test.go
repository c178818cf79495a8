package walk

import (
	"testing"

	"github.com/aaronpuchert/logic/sem"
)

// ruleFixture provides statement variables and a small domain for matching
// tests: a type `person` with individual `fritz` and predicates over it.
type ruleFixture struct {
	a, b         *sem.Node
	exprA, exprB *sem.AtomicExpr
	p, q         *sem.Statement
	exprP, exprQ *sem.AtomicExpr

	person     *sem.Node
	personType *sem.AtomicExpr
	fritz      *sem.Node
	exprFritz  *sem.AtomicExpr
	student    *sem.Node
	stupid     *sem.Node
}

func newRuleFixture(t *testing.T) *ruleFixture {
	t.Helper()
	f := &ruleFixture{}

	f.a, _ = sem.NewNode(sem.StatementType, "a")
	f.b, _ = sem.NewNode(sem.StatementType, "b")
	f.exprA = sem.NewAtomic(f.a)
	f.exprB = sem.NewAtomic(f.b)

	var err error
	if f.p, err = sem.NewStatement("p", f.exprA); err != nil {
		t.Fatalf("declaring p: %v", err)
	}
	if f.q, err = sem.NewStatement("q", f.exprA); err != nil {
		t.Fatalf("declaring q: %v", err)
	}
	f.exprP = sem.NewAtomic(f.p)
	f.exprQ = sem.NewAtomic(f.q)

	f.person, _ = sem.NewNode(sem.TypeType, "person")
	f.personType = sem.NewAtomic(f.person)
	f.fritz, _ = sem.NewNode(f.personType, "fritz")
	f.exprFritz = sem.NewAtomic(f.fritz)

	predType, err := sem.NewLambdaType([]sem.Expression{f.personType}, sem.StatementType)
	if err != nil {
		t.Fatalf("building predicate type: %v", err)
	}
	f.student, _ = sem.NewNode(predType, "schüler?")
	f.stupid, _ = sem.NewNode(predType, "dumm?")

	return f
}

func negation(t *testing.T, e sem.Expression) sem.Expression {
	t.Helper()
	neg, err := sem.NewNegation(e)
	if err != nil {
		t.Fatalf("negation: %v", err)
	}
	return neg
}

func connective(t *testing.T, variant int, first, second sem.Expression) sem.Expression {
	t.Helper()
	conn, err := sem.NewConnective(variant, first, second)
	if err != nil {
		t.Fatalf("connective: %v", err)
	}
	return conn
}

func call(t *testing.T, callee sem.Object, args ...sem.Expression) sem.Expression {
	t.Helper()
	expr, err := sem.NewLambdaCall(callee, args)
	if err != nil {
		t.Fatalf("lambda call: %v", err)
	}
	return expr
}

func TestMatchAtomicAndConnective(t *testing.T) {
	f := newRuleFixture(t)

	// Template: (or a (not a))
	template := connective(t, sem.ConnOr, f.exprA, negation(t, f.exprA))

	target := connective(t, sem.ConnOr, f.exprP, negation(t, f.exprP))
	subst := NewSubstitution(template)
	if !subst.Check(target, sem.Context{f.a: f.exprP}) {
		t.Error("(or p (not p)) should match (or a (not a)) with a ↦ p")
	}
	if subst.Mismatch() != nil {
		t.Error("successful match should leave no mismatch")
	}

	// Mixed substitution does not match
	bad := connective(t, sem.ConnOr, f.exprP, negation(t, f.exprQ))
	if subst.Check(bad, sem.Context{f.a: f.exprP}) {
		t.Error("(or p (not q)) should not match (or a (not a)) with a ↦ p")
	}
	if subst.Mismatch() == nil {
		t.Error("failed match should record a mismatch")
	}

	// Wrong variant does not match
	wrongVariant := connective(t, sem.ConnAnd, f.exprP, negation(t, f.exprP))
	if subst.Check(wrongVariant, sem.Context{f.a: f.exprP}) {
		t.Error("a conjunction should not match a disjunction template")
	}
}

func TestMatchBetaReduction(t *testing.T) {
	f := newRuleFixture(t)

	// Parameters: P of type (person)->statement, y of type person
	predType, _ := sem.NewLambdaType([]sem.Expression{f.personType}, sem.StatementType)
	paramP, _ := sem.NewNode(predType, "P")
	paramY, _ := sem.NewNode(f.personType, "y")

	// Template: (P y)
	template := call(t, paramP, sem.NewAtomic(paramY))

	// Substitute: P ↦ (lambda ((person x)) (schüler? x)), y ↦ fritz
	x, _ := sem.NewNode(f.personType, "x")
	lambda, err := sem.NewLambda(sem.NewTheoryOf(x), call(t, f.student, sem.NewAtomic(x)))
	if err != nil {
		t.Fatalf("building lambda: %v", err)
	}

	ctx := sem.Context{paramP: lambda, paramY: f.exprFritz}
	target := call(t, f.student, f.exprFritz)

	subst := NewSubstitution(template)
	if !subst.Check(target, ctx) {
		t.Error("(schüler? fritz) should match (P y) under beta reduction")
	}

	// The context must be restored to the rule parameters afterwards
	if len(ctx) != 2 {
		t.Errorf("context has %d entries after matching, want 2", len(ctx))
	}

	// A different predicate does not match
	if subst.Check(call(t, f.stupid, f.exprFritz), ctx) {
		t.Error("(dumm? fritz) should not match (P y) with P ↦ schüler?-lambda")
	}
}

func TestMatchAtomicSubstituteInCallPosition(t *testing.T) {
	f := newRuleFixture(t)

	predType, _ := sem.NewLambdaType([]sem.Expression{f.personType}, sem.StatementType)
	paramP, _ := sem.NewNode(predType, "P")
	paramY, _ := sem.NewNode(f.personType, "y")

	template := call(t, paramP, sem.NewAtomic(paramY))

	// P ↦ schüler? (an atom, not a lambda) has no defined semantics yet; the
	// matcher must reject it without panicking.
	ctx := sem.Context{paramP: sem.NewAtomic(f.student), paramY: f.exprFritz}
	target := call(t, f.student, f.exprFritz)

	subst := NewSubstitution(template)
	if subst.Check(target, ctx) {
		t.Error("substituting an atom into call position should not match")
	}
	if subst.Mismatch() == nil {
		t.Error("the rejected substitution should be recorded as a mismatch")
	}
}

func TestMatchLambdaAlpha(t *testing.T) {
	f := newRuleFixture(t)

	x, _ := sem.NewNode(f.personType, "x")
	templLambda, err := sem.NewLambda(sem.NewTheoryOf(x), call(t, f.student, sem.NewAtomic(x)))
	if err != nil {
		t.Fatalf("building template lambda: %v", err)
	}

	// Same shape with a differently named parameter
	z, _ := sem.NewNode(f.personType, "z")
	targetLambda, err := sem.NewLambda(sem.NewTheoryOf(z), call(t, f.student, sem.NewAtomic(z)))
	if err != nil {
		t.Fatalf("building target lambda: %v", err)
	}

	subst := NewSubstitution(templLambda)
	if !subst.Check(targetLambda, nil) {
		t.Error("alpha-equivalent lambdas should match")
	}

	// A parameter of a different type changes the signature
	s, _ := sem.NewNode(sem.StatementType, "s")
	other, err := sem.NewLambda(sem.NewTheoryOf(s), sem.NewAtomic(s))
	if err != nil {
		t.Fatalf("building statement lambda: %v", err)
	}
	if subst.Check(other, nil) {
		t.Error("lambdas with different signatures should not match")
	}
}

// TestMatcherReinitialized checks that matching results depend only on the
// context, not on state left over from earlier calls.
func TestMatcherReinitialized(t *testing.T) {
	f := newRuleFixture(t)

	template := connective(t, sem.ConnImpl, f.exprA, f.exprB)
	good := connective(t, sem.ConnImpl, f.exprP, f.exprQ)
	bad := connective(t, sem.ConnImpl, f.exprQ, f.exprP)

	ctx := sem.Context{f.a: f.exprP, f.b: f.exprQ}

	subst := NewSubstitution(template)
	for round := 0; round < 3; round++ {
		if !subst.Check(good, ctx) {
			t.Errorf("round %d: (impl p q) should match", round)
		}
		if subst.Check(bad, ctx) {
			t.Errorf("round %d: (impl q p) should not match", round)
		}
		if len(ctx) != 2 {
			t.Errorf("round %d: context has %d entries, want 2", round, len(ctx))
		}
	}
}
