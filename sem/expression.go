package sem

// Expression is the parent interface for all expressions of the logic
// language.  Types are expressions as well: the type of a type expression is
// the built-in type `type`.
type Expression interface {
	// TypeOf returns the type of the expression, which is itself an
	// expression of type `type`.
	TypeOf() Expression
}

// -----------------------------------------------------------------------------

// BuiltInType is one of the four types built into the language.  The built-in
// types exist as package-level singletons; they are compared by identity.
type BuiltInType struct {
	Variant int
}

// Enumeration of built-in type variants
const (
	KindUndefined = iota // placeholder used during error recovery
	KindType             // the type of types
	KindStatement        // the type of statements
	KindRule             // the type of rules
)

// The built-in type singletons.  All code compares against these by identity.
var (
	TypeType      = &BuiltInType{KindType}
	StatementType = &BuiltInType{KindStatement}
	RuleType      = &BuiltInType{KindRule}
	UndefinedType = &BuiltInType{KindUndefined}
)

func (b *BuiltInType) TypeOf() Expression {
	return TypeType
}

// IsType indicates whether an expression is a type expression.
func IsType(e Expression) bool {
	return e.TypeOf() == Expression(TypeType)
}

// -----------------------------------------------------------------------------

// LambdaType is the type of a lambda expression: a return type together with
// an ordered sequence of argument types.
type LambdaType struct {
	returnType Expression
	args       []Expression
}

// NewLambdaType creates a lambda type from argument types and a return type.
// All of them must themselves be types.
func NewLambdaType(args []Expression, returnType Expression) (*LambdaType, error) {
	if !IsType(returnType) {
		return nil, &TypeError{Got: returnType.TypeOf(), Want: TypeType, Where: "return type"}
	}

	for n, arg := range args {
		if !IsType(arg) {
			return nil, &TypeError{Got: arg.TypeOf(), Want: TypeType, Where: ordinal("argument", n)}
		}
	}

	return &LambdaType{returnType: returnType, args: args}, nil
}

func (l *LambdaType) TypeOf() Expression {
	return TypeType
}

// ReturnType returns the return type of the lambda type.
func (l *LambdaType) ReturnType() Expression {
	return l.returnType
}

// Args returns the ordered argument types.  The returned slice must not be
// mutated.
func (l *LambdaType) Args() []Expression {
	return l.args
}

// -----------------------------------------------------------------------------

// AtomicExpr is an expression referring to a named object: an individual, a
// predicate, a statement variable, or a declared type.
type AtomicExpr struct {
	node Object
}

// NewAtomic creates an atomic expression pointing at the given object.
func NewAtomic(node Object) *AtomicExpr {
	return &AtomicExpr{node: node}
}

// Atom returns the object the expression refers to.
func (a *AtomicExpr) Atom() Object {
	return a.node
}

// TypeOf returns the declared type of the referenced object.
func (a *AtomicExpr) TypeOf() Expression {
	return a.node.TypeOf()
}

// -----------------------------------------------------------------------------

// LambdaCallExpr applies a named lambda object to a list of arguments.
type LambdaCallExpr struct {
	node Object
	args []Expression
}

// NewLambdaCall creates a lambda call expression.  The callee must be declared
// with a lambda type, and the arguments must match it in number and types.
func NewLambdaCall(node Object, args []Expression) (*LambdaCallExpr, error) {
	lambdaType, ok := node.TypeOf().(*LambdaType)
	if !ok {
		return nil, &TypeError{Got: node.TypeOf(), Want: nil, WantDesc: "lambda type", Where: node.Name()}
	}

	if len(args) != len(lambdaType.Args()) {
		return nil, &ArityError{Expected: len(lambdaType.Args()), Got: len(args), Where: node.Name()}
	}

	compare := NewTypeComparator(nil)
	for n, arg := range args {
		if !compare.Equal(lambdaType.Args()[n], arg.TypeOf()) {
			return nil, &TypeError{Got: arg.TypeOf(), Want: lambdaType.Args()[n], Where: ordinal("argument", n)}
		}
	}

	return &LambdaCallExpr{node: node, args: args}, nil
}

// Callee returns the lambda object that is called.
func (c *LambdaCallExpr) Callee() Object {
	return c.node
}

// Args returns the ordered argument expressions.  The returned slice must not
// be mutated.
func (c *LambdaCallExpr) Args() []Expression {
	return c.args
}

// TypeOf returns the return type of the called lambda.
func (c *LambdaCallExpr) TypeOf() Expression {
	return c.node.TypeOf().(*LambdaType).ReturnType()
}

// -----------------------------------------------------------------------------

// NegationExpr negates a statement.
type NegationExpr struct {
	expr Expression
}

// NewNegation creates a negation expression.  The operand must be a statement.
func NewNegation(expr Expression) (*NegationExpr, error) {
	if expr.TypeOf() != Expression(StatementType) {
		return nil, &TypeError{Got: expr.TypeOf(), Want: StatementType}
	}

	return &NegationExpr{expr: expr}, nil
}

// Inner returns the negated expression.
func (n *NegationExpr) Inner() Expression {
	return n.expr
}

func (n *NegationExpr) TypeOf() Expression {
	return StatementType
}

// -----------------------------------------------------------------------------

// ConnectiveExpr is one of the classical binary connectives: conjunction,
// disjunction, implication and equivalence.
type ConnectiveExpr struct {
	variant       int
	first, second Expression
}

// Enumeration of connective variants
const (
	ConnAnd = iota
	ConnOr
	ConnImpl
	ConnEquiv
)

// NewConnective creates a binary connective expression.  Both operands must be
// statements.
func NewConnective(variant int, first, second Expression) (*ConnectiveExpr, error) {
	if first.TypeOf() != Expression(StatementType) {
		return nil, &TypeError{Got: first.TypeOf(), Want: StatementType, Where: "first operand"}
	}
	if second.TypeOf() != Expression(StatementType) {
		return nil, &TypeError{Got: second.TypeOf(), Want: StatementType, Where: "second operand"}
	}

	return &ConnectiveExpr{variant: variant, first: first, second: second}, nil
}

// Variant returns one of the enumerated connective variants.
func (c *ConnectiveExpr) Variant() int {
	return c.variant
}

// First returns the first operand.
func (c *ConnectiveExpr) First() Expression {
	return c.first
}

// Second returns the second operand.
func (c *ConnectiveExpr) Second() Expression {
	return c.second
}

func (c *ConnectiveExpr) TypeOf() Expression {
	return StatementType
}

// -----------------------------------------------------------------------------

// QuantifierExpr quantifies a predicate expression universally or
// existentially.
type QuantifierExpr struct {
	variant   int
	predicate Expression
}

// Enumeration of quantifier variants
const (
	QuantForall = iota
	QuantExists
)

// NewQuantifier creates a quantifier expression.  The operand must have a
// lambda type returning a statement.
func NewQuantifier(variant int, predicate Expression) (*QuantifierExpr, error) {
	lambdaType, ok := predicate.TypeOf().(*LambdaType)
	if !ok {
		return nil, &TypeError{Got: predicate.TypeOf(), Want: nil, WantDesc: "predicate type", Where: "quantifier operand"}
	}
	if lambdaType.ReturnType() != Expression(StatementType) {
		return nil, &TypeError{Got: lambdaType.ReturnType(), Want: StatementType, Where: "quantified predicate"}
	}

	return &QuantifierExpr{variant: variant, predicate: predicate}, nil
}

// Variant returns one of the enumerated quantifier variants.
func (q *QuantifierExpr) Variant() int {
	return q.variant
}

// Predicate returns the predicate expression over which is quantified.
func (q *QuantifierExpr) Predicate() Expression {
	return q.predicate
}

func (q *QuantifierExpr) TypeOf() Expression {
	return StatementType
}

// -----------------------------------------------------------------------------

// LambdaExpr is an anonymous parameterised expression.  Its parameter list is
// a theory fragment in its own right, so that parameters are ordinary named
// objects that the body can refer to.
type LambdaExpr struct {
	params *Theory
	body   Expression
	typ    *LambdaType
}

// NewLambda creates a lambda expression from a parameter list and a body.
func NewLambda(params *Theory, body Expression) (*LambdaExpr, error) {
	args := make([]Expression, 0, params.Len())
	for el := params.Front(); el != nil; el = el.Next() {
		args = append(args, el.Value.(Object).TypeOf())
	}

	typ, err := NewLambdaType(args, body.TypeOf())
	if err != nil {
		return nil, err
	}

	return &LambdaExpr{params: params, body: body, typ: typ}, nil
}

// Params returns the parameter list of the lambda.
func (l *LambdaExpr) Params() *Theory {
	return l.params
}

// Body returns the body expression of the lambda.
func (l *LambdaExpr) Body() Expression {
	return l.body
}

func (l *LambdaExpr) TypeOf() Expression {
	return l.typ
}
