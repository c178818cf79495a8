package rules

import (
	"container/list"
	"testing"

	"github.com/aaronpuchert/logic/sem"
)

// testRules builds the standard rule theory used by the scenarios:
// excluded_middle, double_negation, ponens and specialization.
func testRules(t *testing.T) *sem.Theory {
	t.Helper()

	stmtA, _ := sem.NewNode(sem.StatementType, "a")
	stmtB, _ := sem.NewNode(sem.StatementType, "b")
	exprA := sem.NewAtomic(stmtA)
	exprB := sem.NewAtomic(stmtB)

	theory := sem.NewTheory(nil, nil)
	var pos *list.Element

	// Rule of the excluded middle.
	notA, _ := sem.NewNegation(exprA)
	tautStmt, _ := sem.NewConnective(sem.ConnOr, exprA, notA)
	tautology, err := NewTautology("excluded_middle", sem.NewTheoryOf(stmtA), tautStmt)
	if err != nil {
		t.Fatalf("building excluded_middle: %v", err)
	}
	pos, _ = theory.Add(tautology, pos)

	// Rule of double negation.
	notNotA, _ := sem.NewNegation(notA)
	equivrule, err := NewEquivalenceRule("double_negation", sem.NewTheoryOf(stmtA), notNotA, exprA)
	if err != nil {
		t.Fatalf("building double_negation: %v", err)
	}
	pos, _ = theory.Add(equivrule, pos)

	// The modus ponens rule.
	impl, _ := sem.NewConnective(sem.ConnImpl, exprA, exprB)
	ponens, err := NewDeductionRule("ponens", sem.NewTheoryOf(stmtA, stmtB),
		[]sem.Expression{impl, exprA}, exprB)
	if err != nil {
		t.Fatalf("building ponens: %v", err)
	}
	pos, _ = theory.Add(ponens, pos)

	// The specialization rule.
	typeDecl, _ := sem.NewNode(sem.TypeType, "T")
	genType := sem.NewAtomic(typeDecl)
	predType, _ := sem.NewLambdaType([]sem.Expression{genType}, sem.StatementType)
	predNode, _ := sem.NewNode(predType, "P")
	varY, _ := sem.NewNode(genType, "y")

	forallExpr, err := sem.NewQuantifier(sem.QuantForall, sem.NewAtomic(predNode))
	if err != nil {
		t.Fatalf("quantifying over P: %v", err)
	}
	predExpr, err := sem.NewLambdaCall(predNode, []sem.Expression{sem.NewAtomic(varY)})
	if err != nil {
		t.Fatalf("calling P with y: %v", err)
	}
	specialization, err := NewDeductionRule("specialization",
		sem.NewTheoryOf(typeDecl, predNode, varY),
		[]sem.Expression{forallExpr}, predExpr)
	if err != nil {
		t.Fatalf("building specialization: %v", err)
	}
	theory.Add(specialization, pos)

	return theory
}

func addStatement(t *testing.T, theory *sem.Theory, pos *list.Element, name string, expr sem.Expression) (*sem.Statement, *list.Element) {
	t.Helper()
	stmt, err := sem.NewStatement(name, expr)
	if err != nil {
		t.Fatalf("building statement %q: %v", name, err)
	}
	newPos, err := theory.Add(stmt, pos)
	if err != nil {
		t.Fatalf("adding statement %q: %v", name, err)
	}
	return stmt, newPos
}

// Scenario: the excluded middle tautology applies to a statement but not to
// an individual of another type.
func TestTautologyApplication(t *testing.T) {
	ruleTheory := testRules(t)

	theory := sem.NewTheory(nil, nil)
	p, _ := sem.NewNode(sem.StatementType, "p")
	pos, _ := theory.Add(p, nil)

	exprP := sem.NewAtomic(p)
	notP, _ := sem.NewNegation(exprP)
	goalExpr, _ := sem.NewConnective(sem.ConnOr, exprP, notP)

	goal, pos := addStatement(t, theory, pos, "", goalExpr)
	step, err := NewProofStep(ruleTheory, "excluded_middle", []sem.Expression{exprP}, nil)
	if err != nil {
		t.Fatalf("building proof step: %v", err)
	}
	goal.AddProof(step)

	if !theory.Verify() {
		t.Error("(or p (not p)) should verify via excluded_middle")
	}

	// Idempotent proof attachment
	goal.AddProof(step)
	if !theory.Verify() {
		t.Error("attaching the same proof twice should not change the result")
	}

	// A person is not a statement: the application is rejected during
	// construction.
	person, _ := sem.NewNode(sem.TypeType, "person")
	q, _ := sem.NewNode(sem.NewAtomic(person), "q")
	if _, err := NewProofStep(ruleTheory, "excluded_middle",
		[]sem.Expression{sem.NewAtomic(q)}, nil); err == nil {
		t.Error("substituting a person for a statement variable should fail")
	} else if _, ok := err.(*sem.TypeError); !ok {
		t.Errorf("expected a TypeError, got %v", err)
	}

	// Unknown rules are rejected
	if _, err := NewProofStep(ruleTheory, "nonsense", nil, nil); err == nil {
		t.Error("an unknown rule name should fail")
	} else if _, ok := err.(*sem.RuleError); !ok {
		t.Errorf("expected a RuleError, got %v", err)
	}

	// Wrong argument count is rejected
	if _, err := NewProofStep(ruleTheory, "excluded_middle", nil, nil); err == nil {
		t.Error("missing arguments should fail")
	} else if _, ok := err.(*sem.ArityError); !ok {
		t.Errorf("expected an ArityError, got %v", err)
	}
}

// Scenario: double negation works in both directions.
func TestEquivalenceRuleBidirectional(t *testing.T) {
	ruleTheory := testRules(t)

	theory := sem.NewTheory(nil, nil)
	a, _ := sem.NewNode(sem.StatementType, "a")
	pos, _ := theory.Add(a, nil)
	exprA := sem.NewAtomic(a)

	_, pos = addStatement(t, theory, pos, "ax", exprA)
	axiomRef := sem.NewReference(theory, pos)

	notA, _ := sem.NewNegation(exprA)
	notNotA, _ := sem.NewNegation(notA)

	// Forward: derive (not (not a)) from a
	goal, pos := addStatement(t, theory, pos, "", notNotA)
	step, err := NewProofStep(ruleTheory, "double_negation",
		[]sem.Expression{exprA}, []sem.Reference{axiomRef})
	if err != nil {
		t.Fatalf("building proof step: %v", err)
	}
	goal.AddProof(step)

	if !theory.Verify() {
		t.Error("(not (not a)) should follow from a via double_negation")
	}

	// Backward: derive a from (not (not a))
	prev := sem.NewReference(theory, pos)
	back, _ := addStatement(t, theory, pos, "", exprA)
	backStep, err := NewProofStep(ruleTheory, "double_negation",
		[]sem.Expression{exprA}, []sem.Reference{prev})
	if err != nil {
		t.Fatalf("building backward proof step: %v", err)
	}
	back.AddProof(backStep)

	if !theory.Verify() {
		t.Error("a should follow from (not (not a)) via double_negation")
	}

	// A premise count of zero fails validation
	if step.Rule().Validate(sem.Context{}, nil, notNotA) {
		t.Error("double_negation without premises should not validate")
	}
}

// Scenario: modus ponens verifies with references in declared order and
// fails with them permuted.
func TestDeductionRuleOrder(t *testing.T) {
	ruleTheory := testRules(t)

	theory := sem.NewTheory(nil, nil)
	a, _ := sem.NewNode(sem.StatementType, "a")
	pos, _ := theory.Add(a, nil)
	b, _ := sem.NewNode(sem.StatementType, "b")
	pos, _ = theory.Add(b, pos)

	exprA := sem.NewAtomic(a)
	exprB := sem.NewAtomic(b)
	implAB, _ := sem.NewConnective(sem.ConnImpl, exprA, exprB)

	_, posA := addStatement(t, theory, pos, "ax_a", exprA)
	_, posImpl := addStatement(t, theory, posA, "ax_impl", implAB)

	refA := sem.NewReference(theory, posA)
	refImpl := sem.NewReference(theory, posImpl)

	goal, _ := addStatement(t, theory, posImpl, "", exprB)
	step, err := NewProofStep(ruleTheory, "ponens",
		[]sem.Expression{exprA, exprB}, []sem.Reference{refImpl, refA})
	if err != nil {
		t.Fatalf("building proof step: %v", err)
	}
	goal.AddProof(step)

	if !theory.Verify() {
		t.Error("b should follow from a and (impl a b) via ponens")
	}

	// Permuting the references breaks the proof
	permuted, err := NewProofStep(ruleTheory, "ponens",
		[]sem.Expression{exprA, exprB}, []sem.Reference{refA, refImpl})
	if err != nil {
		t.Fatalf("building permuted proof step: %v", err)
	}
	goal.AddProof(permuted)

	if theory.Verify() {
		t.Error("permuted references should not verify")
	}
}

// fritzTheory builds the fritz example against a rule theory and returns the
// theory; fritzSource in the build and syntax tests is its textual form.
func fritzTheory(t *testing.T, ruleTheory *sem.Theory) *sem.Theory {
	t.Helper()

	theory := sem.NewTheory(nil, nil)

	person, _ := sem.NewNode(sem.TypeType, "person")
	pos, _ := theory.Add(person, nil)
	personType := sem.NewAtomic(person)

	predType, _ := sem.NewLambdaType([]sem.Expression{personType}, sem.StatementType)
	student, _ := sem.NewNode(predType, "schüler?")
	pos, _ = theory.Add(student, pos)
	stupid, _ := sem.NewNode(predType, "dumm?")
	pos, _ = theory.Add(stupid, pos)

	fritz, _ := sem.NewNode(personType, "fritz")
	pos, _ = theory.Add(fritz, pos)
	exprFritz := sem.NewAtomic(fritz)

	// (axiom (schüler? fritz))
	studentFritz, err := sem.NewLambdaCall(student, []sem.Expression{exprFritz})
	if err != nil {
		t.Fatalf("calling schüler? with fritz: %v", err)
	}
	_, axiom1Pos := addStatement(t, theory, pos, "", studentFritz)

	// (axiom (forall (lambda (list (person x)) (impl (schüler? x) (dumm? x)))))
	x, _ := sem.NewNode(personType, "x")
	exprX := sem.NewAtomic(x)
	studentX, _ := sem.NewLambdaCall(student, []sem.Expression{exprX})
	stupidX, _ := sem.NewLambdaCall(stupid, []sem.Expression{exprX})
	implX, _ := sem.NewConnective(sem.ConnImpl, studentX, stupidX)
	implPred, err := sem.NewLambda(sem.NewTheoryOf(x), implX)
	if err != nil {
		t.Fatalf("building predicate lambda: %v", err)
	}
	forallExpr, err := sem.NewQuantifier(sem.QuantForall, implPred)
	if err != nil {
		t.Fatalf("quantifying: %v", err)
	}
	_, axiom2Pos := addStatement(t, theory, axiom1Pos, "", forallExpr)

	// (lemma (impl (schüler? fritz) (dumm? fritz)) ...) via specialization
	stupidFritz, _ := sem.NewLambdaCall(stupid, []sem.Expression{exprFritz})
	implFritz, _ := sem.NewConnective(sem.ConnImpl, studentFritz, stupidFritz)

	inter, interPos := addStatement(t, theory, axiom2Pos, "", implFritz)
	specStep, err := NewProofStep(ruleTheory, "specialization",
		[]sem.Expression{personType, implPred, exprFritz},
		[]sem.Reference{sem.NewReference(theory, axiom2Pos)})
	if err != nil {
		t.Fatalf("building specialization step: %v", err)
	}
	inter.AddProof(specStep)

	// (lemma (dumm? fritz) ...) via ponens
	goal, _ := addStatement(t, theory, interPos, "", stupidFritz)
	ponensStep, err := NewProofStep(ruleTheory, "ponens",
		[]sem.Expression{studentFritz, stupidFritz},
		[]sem.Reference{sem.NewReference(theory, interPos), sem.NewReference(theory, axiom1Pos)})
	if err != nil {
		t.Fatalf("building ponens step: %v", err)
	}
	goal.AddProof(ponensStep)

	return theory
}

// Scenario: specialisation plus modus ponens (the fritz example).
func TestSpecializationAndPonens(t *testing.T) {
	ruleTheory := testRules(t)

	theory := fritzTheory(t, ruleTheory)
	if !theory.Verify() {
		t.Error("the fritz theory should verify")
	}
}

// Axioms verify trivially, regardless of content.
func TestAxiomsVerifyTrivially(t *testing.T) {
	theory := sem.NewTheory(nil, nil)
	a, _ := sem.NewNode(sem.StatementType, "a")
	pos, _ := theory.Add(a, nil)

	addStatement(t, theory, pos, "", sem.NewAtomic(a))

	if !theory.Verify() {
		t.Error("a theory of axioms should verify")
	}
}

// A long proof verifies its sub-theory and requires the final statement to
// equal the proved one.
func TestLongProof(t *testing.T) {
	ruleTheory := testRules(t)

	theory := sem.NewTheory(nil, nil)
	a, _ := sem.NewNode(sem.StatementType, "a")
	pos, _ := theory.Add(a, nil)
	exprA := sem.NewAtomic(a)

	_, axiomPos := addStatement(t, theory, pos, "", exprA)

	notA, _ := sem.NewNegation(exprA)
	notNotA, _ := sem.NewNegation(notA)

	goal, goalPos := addStatement(t, theory, axiomPos, "", notNotA)

	proof := NewLongProof(theory, goalPos)
	inter, err := sem.NewStatement("", notNotA)
	if err != nil {
		t.Fatalf("building intermediate statement: %v", err)
	}
	interStep, err := NewProofStep(ruleTheory, "double_negation",
		[]sem.Expression{exprA},
		[]sem.Reference{sem.NewReference(theory, axiomPos)})
	if err != nil {
		t.Fatalf("building intermediate step: %v", err)
	}
	inter.AddProof(interStep)
	proof.SubTheory().Add(inter, nil)

	goal.AddProof(proof)
	if !theory.Verify() {
		t.Error("the long proof should verify")
	}

	// A final statement that differs from the goal does not prove it
	otherGoal, err := sem.NewStatement("", exprA)
	if err != nil {
		t.Fatalf("building other goal: %v", err)
	}
	if proof.Proves(otherGoal) {
		t.Error("a long proof ending elsewhere should not prove the goal")
	}

	// An empty long proof proves nothing
	empty := NewLongProof(theory, goalPos)
	if empty.Proves(goal) {
		t.Error("an empty long proof should not prove anything")
	}
}
