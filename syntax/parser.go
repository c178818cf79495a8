package syntax

import (
	"container/list"
	"fmt"
	"io"

	"github.com/aaronpuchert/logic/logging"
	"github.com/aaronpuchert/logic/rules"
	"github.com/aaronpuchert/logic/sem"
)

// Parser is the recursive-descent parser of the S-expression theory syntax.
// It builds sem values directly and recovers from errors at the next closing
// parenthesis; unknown identifiers are substituted with an undefined sentinel
// so that parsing can continue.
type Parser struct {
	sc         *Scanner
	descriptor string
	token      Token

	// Rules is the theory against which proof steps resolve rule names.  It
	// must be set before parsing theories that contain lemmas.
	Rules *sem.Theory

	// The current theory stack and the insertion position per theory
	theoryStack []*sem.Theory
	posStack    []*list.Element

	errors   int
	warnings int

	// Dummy objects to use in the case of errors
	undefinedNode sem.Object
	undefinedExpr sem.Expression
}

// NewParser creates a parser reading from r.  The descriptor denotes the
// input in diagnostics, e.g. a file name.
func NewParser(r io.Reader, descriptor string) *Parser {
	node, _ := sem.NewNode(sem.UndefinedType, "")

	p := &Parser{
		sc:            NewScanner(r),
		descriptor:    descriptor,
		undefinedNode: node,
		undefinedExpr: sem.NewAtomic(node),
	}
	p.token = p.sc.Next()
	return p
}

// Errors returns the number of errors encountered so far.
func (p *Parser) Errors() int {
	return p.errors
}

// Warnings returns the number of warnings encountered so far.
func (p *Parser) Warnings() int {
	return p.warnings
}

// -----------------------------------------------------------------------------

func (p *Parser) next() {
	p.token = p.sc.Next()
}

func (p *Parser) pos() *logging.TextPosition {
	return &logging.TextPosition{Line: p.token.Line, Col: p.token.Col}
}

func (p *Parser) errorf(kind int, format string, args ...interface{}) {
	p.errors++
	logging.LogCheckError(p.descriptor, fmt.Sprintf(format, args...), kind, p.pos())
}

func (p *Parser) warnf(kind int, format string, args ...interface{}) {
	p.warnings++
	logging.LogCheckWarning(p.descriptor, fmt.Sprintf(format, args...), kind, p.pos())
}

// expect checks if the current token has a certain kind and writes an error
// message if it doesn't.
func (p *Parser) expect(kind int) bool {
	if p.token.Kind == kind {
		return true
	}

	p.errorf(logging.LMKSyntax, "expected %s, but read %s",
		tokenKindStrings[kind], tokenKindStrings[p.token.Kind])
	return false
}

// recover tries to recover after an error: skip everything until the next ')'.
func (p *Parser) recover() {
	for p.token.Kind != RPAREN && p.token.Kind != EOF {
		p.next()
	}
	p.warnf(logging.LMKSyntax, "ignored everything until ')'")
}

// -----------------------------------------------------------------------------

// topTheory returns the theory currently being filled.
func (p *Parser) topTheory() *sem.Theory {
	return p.theoryStack[len(p.theoryStack)-1]
}

// topPos returns the insertion position in the top theory.
func (p *Parser) topPos() *list.Element {
	return p.posStack[len(p.posStack)-1]
}

// addObject adds an object to the top theory at the current position.
func (p *Parser) addObject(object sem.Object) *list.Element {
	pos, err := p.topTheory().Add(object, p.topPos())
	if err != nil {
		p.errorf(logging.LMKName, "%s", err.Error())
		return p.topPos()
	}

	p.posStack[len(p.posStack)-1] = pos
	return pos
}

// getNode returns the object denoted by the current token, or the undefined
// sentinel if nothing was found.
func (p *Parser) getNode() sem.Object {
	pos := p.topTheory().Get(p.token.Value)
	if pos == nil {
		p.errorf(logging.LMKName, "undeclared identifier %s", p.token.Value)
		return p.undefinedNode
	}

	return pos.Value.(sem.Object)
}

// -----------------------------------------------------------------------------

// ParseTheory parses a complete input stream into a root theory.
func (p *Parser) ParseTheory() *sem.Theory {
	return p.parseTheory(true)
}

// parseTheory parses a sequence of objects into a fresh theory, stopping at a
// closing parenthesis or the end of the input.  Unless standalone, the new
// theory is parented to the theory currently on top of the stack.
func (p *Parser) parseTheory(standalone bool) *sem.Theory {
	var theory *sem.Theory
	if !standalone && len(p.theoryStack) > 0 {
		theory = sem.NewTheory(p.topTheory(), p.topPos())
	} else {
		theory = sem.NewTheory(nil, nil)
	}

	p.parseInto(theory)
	return theory
}

// parseInto parses a sequence of objects into the given theory.
func (p *Parser) parseInto(theory *sem.Theory) {
	p.theoryStack = append(p.theoryStack, theory)
	p.posStack = append(p.posStack, nil)

	for p.token.Kind != RPAREN && p.token.Kind != EOF {
		p.parseObject()
	}

	p.theoryStack = p.theoryStack[:len(p.theoryStack)-1]
	p.posStack = p.posStack[:len(p.posStack)-1]
}

// parseObject parses one object and adds it to the top theory.  On entry the
// current token is the beginning of an object; afterwards it is the token
// right after the closing parenthesis.
func (p *Parser) parseObject() {
	if !p.expect(LPAREN) {
		p.next()
		return
	}
	p.next()

	if p.token.Kind == WORD {
		switch p.token.Value {
		case "axiom", "lemma":
			p.parseStatement()
		case "tautology":
			p.parseTautology()
		case "equivrule":
			p.parseEquivalenceRule()
		case "deductionrule":
			p.parseDeductionRule()
		default:
			p.parseDeclaration()
		}
	} else {
		p.parseDeclaration()
	}

	if p.expect(RPAREN) {
		p.next()
	} else {
		p.recover()
		p.next()
	}
}

// parseDeclaration parses `(<type> <name> [<definition>])` without the outer
// parentheses.
func (p *Parser) parseDeclaration() {
	typ := p.parseType()

	if !p.expect(WORD) {
		return
	}
	node, err := sem.NewNode(typ, p.token.Value)
	if err != nil {
		p.errorf(logging.LMKTyping, "%s", err.Error())
		return
	}
	p.next()

	// Definition, if there is one
	if p.token.Kind != RPAREN {
		def := p.parseExpression()
		if err := node.SetDefinition(def); err != nil && !undefined(def) {
			p.errorf(logging.LMKTyping, "%s", err.Error())
		}
	}

	p.addObject(node)
}

// parseType parses a type expression: a built-in type, a reference to a
// declared type, or a lambda type.
func (p *Parser) parseType() sem.Expression {
	switch p.token.Kind {
	case WORD:
		var typ sem.Expression
		switch p.token.Value {
		case "type":
			typ = sem.TypeType
		case "statement":
			typ = sem.StatementType
		default:
			typ = sem.NewAtomic(p.getNode())
		}
		p.next()
		return typ

	case LPAREN:
		return p.parseLambdaType()

	default:
		p.errorf(logging.LMKSyntax, "expected beginning of type expression")
		return sem.UndefinedType
	}
}

// parseLambdaType parses `(lambda-type <type> (list <type>*))`.  On entry the
// current token is the opening parenthesis.
func (p *Parser) parseLambdaType() sem.Expression {
	p.next()
	if p.token.Kind != WORD || p.token.Value != "lambda-type" {
		p.errorf(logging.LMKSyntax, "expected 'lambda-type'")
	}
	p.next()

	// Read return type
	returnType := p.parseType()

	// Read argument list
	var args []sem.Expression
	if p.expect(LPAREN) {
		p.next()

		if p.expect(WORD) && p.token.Value == "list" {
			p.next()
		}

		for p.token.Kind != RPAREN && p.token.Kind != EOF {
			args = append(args, p.parseType())
		}
		p.next()
	} else {
		p.recover()
	}

	if p.expect(RPAREN) {
		p.next()
	}

	typ, err := sem.NewLambdaType(args, returnType)
	if err != nil {
		p.errorf(logging.LMKTyping, "%s", err.Error())
		return sem.UndefinedType
	}
	return typ
}

// -----------------------------------------------------------------------------

// parseExpression dispatches on the beginning of an expression.
func (p *Parser) parseExpression() sem.Expression {
	switch p.token.Kind {
	case LPAREN:
		// A compound expression
		p.next()

		if !p.expect(WORD) {
			p.recover()
			p.next()
			return p.undefinedExpr
		}

		switch p.token.Value {
		case "not":
			return p.parseNegationExpr()
		case "and", "or", "impl", "equiv":
			return p.parseConnectiveExpr()
		case "forall", "exists":
			return p.parseQuantifierExpr()
		case "lambda":
			return p.parseLambda()
		default:
			return p.parseLambdaCallExpr()
		}

	case WORD:
		return p.parseAtomicExpr()

	default:
		p.errorf(logging.LMKSyntax, "expected beginning of expression")
		return p.undefinedExpr
	}
}

// parseAtomicExpr parses a bare identifier expression.
func (p *Parser) parseAtomicExpr() sem.Expression {
	node := p.getNode()
	p.next()
	return sem.NewAtomic(node)
}

// parseLambdaCallExpr parses `(<lambda-name> <expression>*)`; the current
// token is the name of the called lambda.
func (p *Parser) parseLambdaCallExpr() sem.Expression {
	node := p.getNode()
	p.next()

	var args []sem.Expression
	for p.token.Kind != RPAREN && p.token.Kind != EOF {
		args = append(args, p.parseExpression())
	}
	// skip ')'
	p.next()

	call, err := sem.NewLambdaCall(node, args)
	if err != nil {
		if node.TypeOf() != sem.Expression(sem.UndefinedType) && !undefined(args...) {
			p.logBuildError(err)
		}
		return p.undefinedExpr
	}
	return call
}

// parseNegationExpr parses `(not <expression>)` after the `not` token.
func (p *Parser) parseNegationExpr() sem.Expression {
	p.next()
	expr := p.parseExpression()

	if p.expect(RPAREN) {
		p.next()
	} else {
		p.recover()
		p.next()
	}

	neg, err := sem.NewNegation(expr)
	if err != nil {
		if !undefined(expr) {
			p.logBuildError(err)
		}
		return p.undefinedExpr
	}
	return neg
}

// connectiveVariants maps connective keywords to their variants
var connectiveVariants = map[string]int{
	"and":   sem.ConnAnd,
	"or":    sem.ConnOr,
	"impl":  sem.ConnImpl,
	"equiv": sem.ConnEquiv,
}

// parseConnectiveExpr parses a binary connective; the current token is the
// connective keyword.
func (p *Parser) parseConnectiveExpr() sem.Expression {
	variant := connectiveVariants[p.token.Value]
	p.next()

	first := p.parseExpression()
	second := p.parseExpression()

	if p.expect(RPAREN) {
		p.next()
	} else {
		p.recover()
		p.next()
	}

	conn, err := sem.NewConnective(variant, first, second)
	if err != nil {
		if !undefined(first, second) {
			p.logBuildError(err)
		}
		return p.undefinedExpr
	}
	return conn
}

// parseQuantifierExpr parses a quantifier expression; the current token is
// either `forall` or `exists`.
func (p *Parser) parseQuantifierExpr() sem.Expression {
	variant := sem.QuantForall
	if p.token.Value == "exists" {
		variant = sem.QuantExists
	}
	p.next()

	predicate := p.parseExpression()

	if p.expect(RPAREN) {
		p.next()
	} else {
		p.recover()
		p.next()
	}

	quant, err := sem.NewQuantifier(variant, predicate)
	if err != nil {
		if !undefined(predicate) {
			p.logBuildError(err)
		}
		return p.undefinedExpr
	}
	return quant
}

// parseLambda parses `(lambda (list <declaration>*) <expression>)` after the
// `lambda` token.
func (p *Parser) parseLambda() sem.Expression {
	p.next()

	// Parameter list
	if p.expect(LPAREN) {
		p.next()
		if !p.expect(WORD) || p.token.Value != "list" {
			p.recover()
			p.next()
			return p.undefinedExpr
		}
		p.next()
	} else {
		return p.undefinedExpr
	}

	params := p.parseTheory(false)
	// skip ')'
	p.next()

	// Body is parsed with the parameters in scope
	p.theoryStack = append(p.theoryStack, params)
	p.posStack = append(p.posStack, params.Back())
	body := p.parseExpression()
	p.theoryStack = p.theoryStack[:len(p.theoryStack)-1]
	p.posStack = p.posStack[:len(p.posStack)-1]

	if p.expect(RPAREN) {
		p.next()
	} else {
		p.recover()
		p.next()
	}

	lambda, err := sem.NewLambda(params, body)
	if err != nil {
		if !undefined(body) {
			p.logBuildError(err)
		}
		return p.undefinedExpr
	}
	return lambda
}

// -----------------------------------------------------------------------------

// parseRuleHead parses the name and parameter list common to all rule forms.
// It returns the empty string if the head was malformed.
func (p *Parser) parseRuleHead() (string, *sem.Theory) {
	p.next()

	if !p.expect(WORD) {
		p.recover()
		return "", nil
	}
	name := p.token.Value
	p.next()

	// Parameter list
	if !p.expect(LPAREN) {
		return "", nil
	}
	p.next()
	if !p.expect(WORD) || p.token.Value != "list" {
		p.recover()
		return "", nil
	}
	p.next()

	params := p.parseTheory(true)
	// skip ')'
	p.next()

	return name, params
}

// parseTautology parses a tautology rule and adds it to the top theory.
func (p *Parser) parseTautology() {
	name, params := p.parseRuleHead()
	if params == nil {
		return
	}

	p.theoryStack = append(p.theoryStack, params)
	p.posStack = append(p.posStack, params.Back())
	taut := p.parseExpression()
	p.theoryStack = p.theoryStack[:len(p.theoryStack)-1]
	p.posStack = p.posStack[:len(p.posStack)-1]

	rule, err := rules.NewTautology(name, params, taut)
	if err != nil {
		if !undefined(taut) {
			p.logBuildError(err)
		}
		return
	}
	p.addObject(rule)
}

// parseEquivalenceRule parses an equivalence rule and adds it to the top
// theory.
func (p *Parser) parseEquivalenceRule() {
	name, params := p.parseRuleHead()
	if params == nil {
		return
	}

	p.theoryStack = append(p.theoryStack, params)
	p.posStack = append(p.posStack, params.Back())
	first := p.parseExpression()
	second := p.parseExpression()
	p.theoryStack = p.theoryStack[:len(p.theoryStack)-1]
	p.posStack = p.posStack[:len(p.posStack)-1]

	rule, err := rules.NewEquivalenceRule(name, params, first, second)
	if err != nil {
		if !undefined(first, second) {
			p.logBuildError(err)
		}
		return
	}
	p.addObject(rule)
}

// parseDeductionRule parses a deduction rule and adds it to the top theory.
func (p *Parser) parseDeductionRule() {
	name, params := p.parseRuleHead()
	if params == nil {
		return
	}

	p.theoryStack = append(p.theoryStack, params)
	p.posStack = append(p.posStack, params.Back())

	// Premises
	var premises []sem.Expression
	if p.expect(LPAREN) {
		p.next()
		if p.expect(WORD) && p.token.Value == "list" {
			p.next()
			for p.token.Kind != RPAREN && p.token.Kind != EOF {
				premises = append(premises, p.parseExpression())
			}
			p.next()
		} else {
			p.recover()
		}
	}

	// Conclusion
	conclusion := p.parseExpression()

	p.theoryStack = p.theoryStack[:len(p.theoryStack)-1]
	p.posStack = p.posStack[:len(p.posStack)-1]

	rule, err := rules.NewDeductionRule(name, params, premises, conclusion)
	if err != nil {
		if !undefined(append(premises[:len(premises):len(premises)], conclusion)...) {
			p.logBuildError(err)
		}
		return
	}
	p.addObject(rule)
}

// -----------------------------------------------------------------------------

// parseStatement parses an axiom or lemma; the current token is either
// `axiom` or `lemma`.
func (p *Parser) parseStatement() {
	expectProof := p.token.Value != "axiom"
	p.next()

	// Optional name
	var name string
	if p.token.Kind == WORD {
		name = p.token.Value
		p.next()
	}

	expr := p.parseExpression()
	stmt, err := sem.NewStatement(name, expr)
	if err != nil {
		if !undefined(expr) {
			p.logBuildError(err)
		}
	} else {
		p.addObject(stmt)
	}

	if expectProof {
		proof := p.parseProof()
		if stmt != nil && proof != nil {
			stmt.AddProof(proof)
		}
	}
}

// parseProof parses either a single proof step or a long proof.
func (p *Parser) parseProof() sem.Proof {
	if !p.expect(LPAREN) {
		return nil
	}
	p.next()

	if !p.expect(WORD) {
		p.recover()
		return nil
	}

	if p.token.Value == "proof" {
		return p.parseLongProof()
	}
	return p.parseProofStep()
}

// parseProofStep parses `(<rule-name> (list <expression>*) (list
// <reference>*))`; the current token is the rule name.
func (p *Parser) parseProofStep() sem.Proof {
	ruleName := p.token.Value
	p.next()

	// Argument expression list
	var args []sem.Expression
	if p.expect(LPAREN) {
		p.next()
		if p.expect(WORD) && p.token.Value == "list" {
			p.next()
			for p.token.Kind != RPAREN && p.token.Kind != EOF {
				args = append(args, p.parseExpression())
			}
			p.next()
		} else {
			p.recover()
		}
	}

	// Reference list
	var refs []sem.Reference
	if p.expect(LPAREN) {
		p.next()
		if p.expect(WORD) && p.token.Value == "list" {
			p.next()
			for p.token.Kind != RPAREN && p.token.Kind != EOF {
				refs = append(refs, p.parseReference())
			}
			p.next()
		} else {
			p.recover()
		}
	}

	if p.expect(RPAREN) {
		p.next()
	} else {
		p.recover()
		p.next()
	}

	if p.Rules == nil {
		p.errorf(logging.LMKRule, "no rules theory loaded for proof step %s", ruleName)
		return nil
	}

	step, err := rules.NewProofStep(p.Rules, ruleName, args, refs)
	if err != nil {
		if !undefined(args...) {
			p.logBuildError(err)
		}
		return nil
	}
	return step
}

// parseLongProof parses `(proof <object>*)`; the current token is the word
// `proof`.  The sub-theory is bound under the statement the proof belongs to.
func (p *Parser) parseLongProof() sem.Proof {
	p.next()

	proof := rules.NewLongProof(p.topTheory(), p.topPos())
	p.parseInto(proof.SubTheory())

	if p.expect(RPAREN) {
		p.next()
	} else {
		p.recover()
		p.next()
	}

	return proof
}

// parseReference parses a reference descriptor relative to the current
// position.
func (p *Parser) parseReference() sem.Reference {
	if !p.expect(WORD) {
		p.next()
		return sem.Reference{}
	}

	ref, err := sem.ParseReference(p.topTheory(), p.topPos(), p.token.Value)
	if err != nil {
		p.errorf(logging.LMKName, "%s", err.Error())
	}
	p.next()
	return ref
}

// -----------------------------------------------------------------------------

// undefined reports whether any of the expressions carries the undefined
// sentinel, meaning an error has already been reported for it.  Construction
// errors caused by the sentinel are suppressed to avoid error cascades.
func undefined(exprs ...sem.Expression) bool {
	for _, e := range exprs {
		if e == sem.Expression(sem.UndefinedType) ||
			(e != nil && e.TypeOf() == sem.Expression(sem.UndefinedType)) {
			return true
		}
	}
	return false
}

// logBuildError logs a construction error from the sem or rules package under
// the right message kind.
func (p *Parser) logBuildError(err error) {
	kind := logging.LMKTyping
	switch err.(type) {
	case *sem.NameError:
		kind = logging.LMKName
	case *sem.ArityError:
		kind = logging.LMKArity
	case *sem.RuleError:
		kind = logging.LMKRule
	}

	p.errorf(kind, "%s", err.Error())
}
