package syntax

import (
	"os"
	"strings"
	"testing"

	"github.com/aaronpuchert/logic/logging"
	"github.com/aaronpuchert/logic/sem"
)

func TestMain(m *testing.M) {
	logging.Initialize("silent")
	os.Exit(m.Run())
}

const rulesSource = `# Basic rules of classical logic.

(tautology excluded_middle (list (statement a)) (or a (not a)))
(equivrule double_negation (list (statement a)) (not (not a)) a)
(deductionrule ponens (list (statement a) (statement b)) (list (impl a b) a) b)
(deductionrule specialization
	(list (type T) ((lambda-type statement (list T)) P) (T y))
	(list (forall P))
	(P y)
)
`

const fritzSource = `(type person)
((lambda-type statement (list person)) schüler?)
((lambda-type statement (list person)) dumm?)
(person fritz)

(axiom schüler_fritz (schüler? fritz))
(axiom alle_dumm
	(forall (lambda (list (person x)) (impl (schüler? x) (dumm? x)))))

(lemma impl_fritz (impl (schüler? fritz) (dumm? fritz))
	(specialization
		(list person (lambda (list (person x)) (impl (schüler? x) (dumm? x))) fritz)
		(list alle_dumm)
	)
)
(lemma dumm_fritz (dumm? fritz)
	(ponens (list (schüler? fritz) (dumm? fritz)) (list impl_fritz schüler_fritz))
)
`

func parseRules(t *testing.T) *sem.Theory {
	t.Helper()

	p := NewParser(strings.NewReader(rulesSource), "rules.lth")
	theory := p.ParseTheory()
	if p.Errors() != 0 {
		t.Fatalf("parsing rules: %d errors", p.Errors())
	}
	return theory
}

func TestParseRules(t *testing.T) {
	theory := parseRules(t)

	for _, name := range []string{"excluded_middle", "double_negation", "ponens", "specialization"} {
		if theory.Get(name) == nil {
			t.Errorf("rule %s missing after parse", name)
		}
	}
	if theory.Len() != 4 {
		t.Errorf("rule theory has %d objects, want 4", theory.Len())
	}
}

func TestParseAndVerifyFritz(t *testing.T) {
	ruleTheory := parseRules(t)

	p := NewParser(strings.NewReader(fritzSource), "fritz.lth")
	p.Rules = ruleTheory
	theory := p.ParseTheory()
	if p.Errors() != 0 {
		t.Fatalf("parsing fritz: %d errors", p.Errors())
	}

	if !theory.Verify() {
		t.Error("the fritz theory should verify")
	}

	// The lemma really carries a proof
	pos := theory.Get("dumm_fritz")
	if pos == nil {
		t.Fatal("lemma dumm_fritz missing")
	}
	stmt, ok := pos.Value.(*sem.Statement)
	if !ok || !stmt.HasProof() {
		t.Error("dumm_fritz should be a statement with a proof")
	}
}

// TestParseRecovery checks that a theory containing one malformed object
// still parses the remaining objects and reports exactly one error.
func TestParseRecovery(t *testing.T) {
	ruleTheory := parseRules(t)

	source := `(type person)
((lambda-type statement (list person)) dumm?)
(person fritz)
(axiom broken (unknown? fritz))
(axiom works (dumm? fritz))
`

	p := NewParser(strings.NewReader(source), "broken.lth")
	p.Rules = ruleTheory
	theory := p.ParseTheory()

	if p.Errors() != 1 {
		t.Errorf("parsing reported %d errors, want 1", p.Errors())
	}

	if theory.Get("works") == nil {
		t.Error("objects after the malformed one should still be parsed")
	}
	if theory.Get("fritz") == nil || theory.Get("person") == nil {
		t.Error("objects before the malformed one should still be parsed")
	}
}

// TestParseRoundTrip writes a parsed theory with the pretty printer and
// parses the output again: the result must still verify.
func TestParseRoundTrip(t *testing.T) {
	ruleTheory := parseRules(t)

	p := NewParser(strings.NewReader(fritzSource), "fritz.lth")
	p.Rules = ruleTheory
	theory := p.ParseTheory()
	if p.Errors() != 0 {
		t.Fatalf("parsing fritz: %d errors", p.Errors())
	}

	var sb strings.Builder
	w := NewWriter(&sb, 80, 4, true)
	w.WriteTheory(theory)
	if err := w.Flush(); err != nil {
		t.Fatalf("flushing writer: %v", err)
	}

	p2 := NewParser(strings.NewReader(sb.String()), "fritz-written.lth")
	p2.Rules = ruleTheory
	reparsed := p2.ParseTheory()
	if p2.Errors() != 0 {
		t.Fatalf("reparsing written theory: %d errors\n%s", p2.Errors(), sb.String())
	}

	if !reparsed.Verify() {
		t.Errorf("round-tripped theory should verify\n%s", sb.String())
	}

	// All named objects survive the round trip
	for _, name := range []string{"person", "schüler?", "dumm?", "fritz",
		"schüler_fritz", "alle_dumm", "impl_fritz", "dumm_fritz"} {
		if reparsed.Get(name) == nil {
			t.Errorf("object %s lost in round trip", name)
		}
	}

	// The rules theory itself round-trips as well
	sb.Reset()
	w = NewWriter(&sb, 80, 4, true)
	w.WriteTheory(ruleTheory)
	if err := w.Flush(); err != nil {
		t.Fatalf("flushing rules writer: %v", err)
	}

	p3 := NewParser(strings.NewReader(sb.String()), "rules-written.lth")
	if p3.ParseTheory().Len() != 4 {
		t.Errorf("rules theory lost objects in round trip\n%s", sb.String())
	}
	if p3.Errors() != 0 {
		t.Errorf("reparsing written rules: %d errors\n%s", p3.Errors(), sb.String())
	}
}

// TestParseLongProof checks the `(proof ...)` form with intermediate lemmas
// and relative references.
func TestParseLongProof(t *testing.T) {
	ruleTheory := parseRules(t)

	source := `(type person)
((lambda-type statement (list person)) schüler?)
((lambda-type statement (list person)) dumm?)
(person fritz)
(axiom schüler_fritz (schüler? fritz))
(axiom alle_dumm
	(forall (lambda (list (person x)) (impl (schüler? x) (dumm? x)))))
(lemma dumm_fritz (dumm? fritz)
	(proof
		(lemma (impl (schüler? fritz) (dumm? fritz))
			(specialization
				(list person (lambda (list (person x)) (impl (schüler? x) (dumm? x))) fritz)
				(list alle_dumm)
			)
		)
		(lemma (dumm? fritz)
			(ponens (list (schüler? fritz) (dumm? fritz)) (list this~1 schüler_fritz))
		)
	)
)
`

	p := NewParser(strings.NewReader(source), "longproof.lth")
	p.Rules = ruleTheory
	theory := p.ParseTheory()
	if p.Errors() != 0 {
		t.Fatalf("parsing long proof: %d errors", p.Errors())
	}

	if !theory.Verify() {
		t.Error("the long proof theory should verify")
	}
}
