package sem

// Tag kinds used in flattened type descriptions
const (
	tagBuiltIn = iota
	tagOpen
	tagClose
	tagNode
)

// typeTag is one entry of a flattened type description.
type typeTag struct {
	kind    int
	variant int    // for tagBuiltIn
	node    Object // for tagNode
}

// TypeComparator decides structural equality of two type expressions.  When
// constructed with a context, atomic type references that are keys of the
// context are resolved to their substitutes before comparison; this lets
// parameter types like `(T y)` match their instantiations during rule
// application.
//
// The comparator carries a serialisation buffer between calls, so a single
// instance must not be used from more than one comparison at a time.
type TypeComparator struct {
	ctx  Context
	desc [2][]typeTag
}

// NewTypeComparator creates a type comparator.  The context may be nil, in
// which case the comparator performs plain structural equality.
func NewTypeComparator(ctx Context) *TypeComparator {
	return &TypeComparator{ctx: ctx}
}

// Equal reports whether two type expressions denote the same type.  Both
// arguments must be type expressions; passing anything else is a programming
// error.
func (c *TypeComparator) Equal(a, b Expression) bool {
	if !IsType(a) || !IsType(b) {
		panic("sem: comparing non-types in TypeComparator")
	}

	// Identical references denote the same type.
	if a == b {
		return true
	}

	c.desc[0] = c.desc[0][:0]
	c.desc[1] = c.desc[1][:0]
	c.flatten(0, a)
	c.flatten(1, b)

	if len(c.desc[0]) != len(c.desc[1]) {
		return false
	}
	for n := range c.desc[0] {
		if c.desc[0][n] != c.desc[1][n] {
			return false
		}
	}
	return true
}

// flatten appends the tag sequence of a type expression to one of the two
// description buffers.
func (c *TypeComparator) flatten(side int, e Expression) {
	switch v := e.(type) {
	case *BuiltInType:
		c.desc[side] = append(c.desc[side], typeTag{kind: tagBuiltIn, variant: v.Variant})

	case *LambdaType:
		c.desc[side] = append(c.desc[side], typeTag{kind: tagOpen})
		c.flatten(side, v.ReturnType())
		for _, arg := range v.Args() {
			c.flatten(side, arg)
		}
		c.desc[side] = append(c.desc[side], typeTag{kind: tagClose})

	case *AtomicExpr:
		// A substituted parameter type is compared through its substitute.
		if c.ctx != nil {
			if sub, ok := c.ctx[v.Atom()]; ok {
				c.flatten(side, sub)
				return
			}
		}
		c.desc[side] = append(c.desc[side], typeTag{kind: tagNode, node: v.Atom()})

	default:
		panic("sem: unexpected expression variant in type description")
	}
}
