package sem

// Object is the interface for everything that can live in a theory:
// declarations of types, individuals and predicates, statements, and rules.
type Object interface {
	// Name returns the identifier of the object.  Anonymous objects (unnamed
	// axioms and lemmas) return the empty string.
	Name() string

	// TypeOf returns the declared type of the object.
	TypeOf() Expression

	// Definition returns the definition expression of the object, or nil if
	// it has none.
	Definition() Expression
}

// Node is a plain named declaration: a type, an individual, or a predicate.
// Statements and rules are separate Object implementations.
type Node struct {
	typ  Expression
	name string
	def  Expression
}

// NewNode creates a node with a declared type and a name.  The declared type
// must itself be a type expression.
func NewNode(typ Expression, name string) (*Node, error) {
	if !IsType(typ) {
		return nil, &TypeError{Got: typ.TypeOf(), Want: TypeType, Where: name}
	}

	return &Node{typ: typ, name: name}, nil
}

func (n *Node) Name() string {
	return n.name
}

func (n *Node) TypeOf() Expression {
	return n.typ
}

func (n *Node) Definition() Expression {
	return n.def
}

// SetDefinition attaches a definition expression to the node.  The definition
// must have the node's declared type, and a definition can only be attached
// once.
func (n *Node) SetDefinition(def Expression) error {
	if n.def != nil {
		return &NameError{Reason: ReasonRedefined, Name: n.name}
	}

	compare := NewTypeComparator(nil)
	if !compare.Equal(n.typ, def.TypeOf()) {
		return &TypeError{Got: def.TypeOf(), Want: n.typ, Where: n.name}
	}

	n.def = def
	return nil
}

// -----------------------------------------------------------------------------

// Proof is the interface for proofs of statements.  A proof validates itself
// against the statement it is attached to.
type Proof interface {
	// Proves reports whether the proof actually proves the given statement.
	Proves(stmt *Statement) bool
}

// Statement is a named or anonymous axiom or lemma.  Its declared type is
// always `statement`; the statement's content is stored as its definition.
type Statement struct {
	name  string
	expr  Expression
	proof Proof
}

// NewStatement creates a statement holding the given expression, which must
// have type `statement`.
func NewStatement(name string, expr Expression) (*Statement, error) {
	if expr.TypeOf() != Expression(StatementType) {
		return nil, &TypeError{Got: expr.TypeOf(), Want: StatementType, Where: name}
	}

	return &Statement{name: name, expr: expr}, nil
}

func (s *Statement) Name() string {
	return s.name
}

func (s *Statement) TypeOf() Expression {
	return StatementType
}

func (s *Statement) Definition() Expression {
	return s.expr
}

// HasProof reports whether a proof has been attached to the statement.
func (s *Statement) HasProof() bool {
	return s.proof != nil
}

// Proof returns the attached proof, which is not necessarily valid.
func (s *Statement) Proof() Proof {
	return s.proof
}

// AddProof attaches a proof to the statement.  Statements without a proof are
// axioms and verify trivially.
func (s *Statement) AddProof(proof Proof) {
	s.proof = proof
}
