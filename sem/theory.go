package sem

import "container/list"

// Theory is an ordered collection of objects with a secondary index by name.
// Objects are arranged in a doubly linked list; positions into the list stay
// stable across insertions, so references can hold on to them.  A theory may
// have a parent theory together with the position in the parent under which
// this theory is bound (the parameter list of a lambda, or the sub-theory of a
// long proof).
type Theory struct {
	objects *list.List
	names   map[string]*list.Element

	parent       *Theory
	parentObject *list.Element
}

// NewTheory creates an empty theory.  For a root theory both arguments are
// nil; a sub-theory passes its parent and the position in the parent it is
// bound under.
func NewTheory(parent *Theory, parentObject *list.Element) *Theory {
	return &Theory{
		objects:      list.New(),
		names:        make(map[string]*list.Element),
		parent:       parent,
		parentObject: parentObject,
	}
}

// NewTheoryOf creates a root theory from a list of objects, inserting them in
// order.  It panics on duplicate names; it is meant for statically known
// object lists.
func NewTheoryOf(objects ...Object) *Theory {
	theory := NewTheory(nil, nil)

	var pos *list.Element
	for _, object := range objects {
		var err error
		if pos, err = theory.Add(object, pos); err != nil {
			panic(err)
		}
	}

	return theory
}

// Parent returns the parent theory, or nil for a root theory.
func (t *Theory) Parent() *Theory {
	return t.parent
}

// ParentObject returns the position in the parent theory under which this
// theory is bound, or nil.
func (t *Theory) ParentObject() *list.Element {
	return t.parentObject
}

// Front returns the position of the first object, or nil if the theory is
// empty.  Iterate with Next on the returned element; element values are
// always of type Object.
func (t *Theory) Front() *list.Element {
	return t.objects.Front()
}

// Back returns the position of the last object, or nil.
func (t *Theory) Back() *list.Element {
	return t.objects.Back()
}

// Len returns the number of objects in the theory.
func (t *Theory) Len() int {
	return t.objects.Len()
}

// Add inserts an object immediately after the given position, or at the
// beginning if after is nil.  It returns the position of the new object.
// Non-empty names must be unique within the theory.
func (t *Theory) Add(object Object, after *list.Element) (*list.Element, error) {
	name := object.Name()
	if name != "" {
		if _, ok := t.names[name]; ok {
			return nil, &NameError{Reason: ReasonDuplicate, Name: name}
		}
	}

	var pos *list.Element
	if after == nil {
		pos = t.objects.PushFront(object)
	} else {
		pos = t.objects.InsertAfter(object, after)
	}

	if name != "" {
		t.names[name] = pos
	}

	return pos, nil
}

// Get looks up an object by name, walking up through parent theories.  It
// returns nil if no such object exists.
func (t *Theory) Get(name string) *list.Element {
	_, pos := t.Lookup(name)
	return pos
}

// Lookup looks up an object by name like Get, but also returns the theory the
// object actually lives in.
func (t *Theory) Lookup(name string) (*Theory, *list.Element) {
	for theory := t; theory != nil; theory = theory.parent {
		if pos, ok := theory.names[name]; ok {
			return theory, pos
		}
	}

	return nil, nil
}

// Verify checks every statement of the theory that carries a proof.  It
// returns true iff all attached proofs prove their statements.  Statements
// without a proof are axioms and contribute true.
func (t *Theory) Verify() bool {
	for el := t.Front(); el != nil; el = el.Next() {
		object := el.Value.(Object)
		if object.TypeOf() != Expression(StatementType) {
			continue
		}

		if stmt, ok := object.(*Statement); ok && stmt.HasProof() {
			if !stmt.Proof().Proves(stmt) {
				return false
			}
		}
	}

	return true
}
