package sem

import (
	"container/list"
	"fmt"
	"strconv"
	"strings"
)

// Reference points at an object inside a theory: a theory together with a
// position into its sequence.  References are used by proof steps to name the
// premise statements a rule application consumes.
type Reference struct {
	theory *Theory
	pos    *list.Element
}

// NewReference creates a reference from a theory and a position within it.
func NewReference(theory *Theory, pos *list.Element) Reference {
	return Reference{theory: theory, pos: pos}
}

// Theory returns the theory the reference points into.
func (r Reference) Theory() *Theory {
	return r.theory
}

// Pos returns the referenced position.
func (r Reference) Pos() *list.Element {
	return r.pos
}

// Valid reports whether the reference points at an object at all.
func (r Reference) Valid() bool {
	return r.pos != nil
}

// Resolve returns the object the reference points to, or nil for an invalid
// reference.
func (r Reference) Resolve() Object {
	if r.pos == nil {
		return nil
	}
	return r.pos.Value.(Object)
}

// Minus returns the reference to the object k positions before this one in
// the same theory.  A negative k walks forward instead.  Stepping past either
// end yields an invalid reference.
func (r Reference) Minus(k int) Reference {
	pos := r.pos
	for ; k > 0 && pos != nil; k-- {
		pos = pos.Prev()
	}
	for ; k < 0 && pos != nil; k++ {
		pos = pos.Next()
	}
	return Reference{theory: r.theory, pos: pos}
}

// Distance computes the non-negative number of steps from a forward to b.  It
// returns -1 if the references lie in different theories or b does not follow
// a.
func Distance(a, b Reference) int {
	if a.theory != b.theory {
		return -1
	}

	diff := 0
	for pos := a.pos; pos != b.pos; pos = pos.Next() {
		if pos == nil {
			return -1
		}
		diff++
	}
	return diff
}

// -----------------------------------------------------------------------------

// ParseReference resolves a textual reference descriptor relative to a
// position in a theory.  Supported forms: a bare identifier, `this`,
// `parent`, `parent^k`, each optionally followed by `~n` to step n objects
// backward from the base.
func ParseReference(thisTheory *Theory, thisPos *list.Element, desc string) (Reference, error) {
	base := desc
	diff := 0

	if tilde := strings.IndexByte(desc, '~'); tilde >= 0 {
		base = desc[:tilde]
		n, err := strconv.Atoi(desc[tilde+1:])
		if err != nil || n < 0 {
			return Reference{}, fmt.Errorf("malformed reference offset in %q", desc)
		}
		diff = n
	}

	var ref Reference
	switch {
	case base == "this":
		ref = Reference{theory: thisTheory, pos: thisPos}

	case base == "parent":
		if thisTheory.Parent() == nil {
			return Reference{}, &NameError{Reason: ReasonNotFound, Name: base}
		}
		ref = Reference{theory: thisTheory.Parent(), pos: thisTheory.ParentObject()}

	case strings.HasPrefix(base, "parent^"):
		level, err := strconv.Atoi(base[len("parent^"):])
		if err != nil || level < 1 {
			return Reference{}, fmt.Errorf("malformed ancestor level in %q", desc)
		}

		theory, pos := thisTheory, thisPos
		for ; level > 0; level-- {
			if theory.Parent() == nil {
				return Reference{}, &NameError{Reason: ReasonNotFound, Name: base}
			}
			pos = theory.ParentObject()
			theory = theory.Parent()
		}
		ref = Reference{theory: theory, pos: pos}

	default:
		theory, pos := thisTheory.Lookup(base)
		if pos == nil {
			return Reference{}, &NameError{Reason: ReasonNotFound, Name: base}
		}
		ref = Reference{theory: theory, pos: pos}
	}

	ref = ref.Minus(diff)
	if !ref.Valid() {
		return Reference{}, fmt.Errorf("reference %q steps past the beginning of its theory", desc)
	}
	return ref, nil
}

// Description renders the reference as a textual descriptor, relative to a
// position in a theory.  A named object is rendered by its name; otherwise
// the object is searched backwards from the given position, ascending through
// parent theories, producing `this~k`, `parent~k` or `parent^j~k`.  If the
// object is not reachable that way, an error is returned.
func (r Reference) Description(thisTheory *Theory, thisPos *list.Element) (string, error) {
	if object := r.Resolve(); object != nil && object.Name() != "" {
		return object.Name(), nil
	}

	levelHead := thisPos
	levelVal := 0
	diff := 0

	for level := thisTheory; level != nil; level = level.Parent() {
		for diff = 0; levelHead != nil && levelHead != r.pos; diff++ {
			levelHead = levelHead.Prev()
		}

		if levelHead == r.pos && levelHead != nil {
			var base string
			switch {
			case levelVal == 0:
				base = "this"
			case levelVal == 1:
				base = "parent"
			default:
				base = "parent^" + strconv.Itoa(levelVal)
			}
			return base + "~" + strconv.Itoa(diff), nil
		}

		levelHead = level.ParentObject()
		levelVal++
	}

	return "", fmt.Errorf("reference is not backwards-reachable from here")
}
