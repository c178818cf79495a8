package walk

// The Substitution matcher decides whether a target expression is the result
// of substituting context entries into a template expression, without ever
// materialising the substituted template.
//
// The visitor methods traverse the target expression, while a stack keeps
// track of where we are in the template (or in substitute expressions).  The
// visit functions only compare the variant on the highest level and then push
// the children of the template while letting the target's children accept the
// visitor.
//
// The real work of substituting happens when a template expression is pushed
// on the stack: if it refers to an object with an entry in the context, the
// entry is pushed instead.  A lambda call whose callee has a lambda entry is
// beta-reduced lazily: the lambda's parameters are bound to the call's
// arguments and the body is pushed.  A parallel stack of parameter frames
// records which bindings to remove again on pop.

import "github.com/aaronpuchert/logic/sem"

// Mismatch is a pair of template and target subexpressions that failed to
// match.  Target is nil when the template itself could not be substituted.
type Mismatch struct {
	Template sem.Expression
	Target   sem.Expression
}

// Substitution checks targets against a fixed template expression under a
// context of substitutes.  A Substitution holds walk state between calls and
// must not be used concurrently.
type Substitution struct {
	BaseVisitor

	template sem.Expression
	ctx      sem.Context

	templates []sem.Expression
	frames    []*sem.Theory
	offender  *Mismatch
}

// NewSubstitution creates a matcher for the given template expression.
func NewSubstitution(template sem.Expression) *Substitution {
	return &Substitution{template: template}
}

// Template returns the template expression the matcher was built around.
func (s *Substitution) Template() sem.Expression {
	return s.template
}

// Check reports whether the target equals the template with each context
// entry substituted.  The context is extended and restored while walking
// under binders, but is otherwise unchanged on return.  A nil context is
// treated as empty.
func (s *Substitution) Check(target sem.Expression, ctx sem.Context) bool {
	s.offender = nil
	if ctx == nil {
		ctx = sem.Context{}
	}
	s.ctx = ctx

	s.push(s.template)
	Accept(target, s)
	s.pop()

	return s.offender == nil
}

// Mismatch returns the template/target pair recorded by the last failing
// Check, or nil if the last Check succeeded.
func (s *Substitution) Mismatch() *Mismatch {
	return s.offender
}

// -----------------------------------------------------------------------------

// VisitAtomic compares an atomic expression in the target; it must refer to
// the same object as the template.
func (s *Substitution) VisitAtomic(target *sem.AtomicExpr) {
	templ := s.top()
	if atomic, ok := templ.(*sem.AtomicExpr); ok {
		if atomic.Atom() == target.Atom() {
			return
		}
	}

	s.fail(templ, target)
}

// VisitLambdaCall compares a lambda call in the target: the same lambda must
// be called and the arguments must match pairwise.
func (s *Substitution) VisitLambdaCall(target *sem.LambdaCallExpr) {
	templ := s.top()
	if call, ok := templ.(*sem.LambdaCallExpr); ok {
		if call.Callee() == target.Callee() {
			for n, arg := range target.Args() {
				s.push(call.Args()[n])
				Accept(arg, s)
				s.pop()
			}
			return
		}
	}

	s.fail(templ, target)
}

// VisitNegation compares a negation in the target.
func (s *Substitution) VisitNegation(target *sem.NegationExpr) {
	templ := s.top()
	if neg, ok := templ.(*sem.NegationExpr); ok {
		s.push(neg.Inner())
		Accept(target.Inner(), s)
		s.pop()
		return
	}

	s.fail(templ, target)
}

// VisitConnective compares a connective in the target: same variant, then
// both operands.
func (s *Substitution) VisitConnective(target *sem.ConnectiveExpr) {
	templ := s.top()
	if conn, ok := templ.(*sem.ConnectiveExpr); ok {
		if conn.Variant() == target.Variant() {
			s.push(conn.First())
			Accept(target.First(), s)
			s.pop()

			s.push(conn.Second())
			Accept(target.Second(), s)
			s.pop()
			return
		}
	}

	s.fail(templ, target)
}

// VisitQuantifier compares a quantifier in the target: same variant, then the
// quantified predicate.
func (s *Substitution) VisitQuantifier(target *sem.QuantifierExpr) {
	templ := s.top()
	if quant, ok := templ.(*sem.QuantifierExpr); ok {
		if quant.Variant() == target.Variant() {
			s.push(quant.Predicate())
			Accept(target.Predicate(), s)
			s.pop()
			return
		}
	}

	s.fail(templ, target)
}

// VisitLambda compares a lambda expression in the target.  The type
// signatures must be equal under the current context; then each template
// parameter is bound to the corresponding target parameter as an atomic
// expression and the bodies are compared.
func (s *Substitution) VisitLambda(target *sem.LambdaExpr) {
	templ := s.top()
	if lambda, ok := templ.(*sem.LambdaExpr); ok {
		compare := sem.NewTypeComparator(s.ctx)
		if compare.Equal(lambda.TypeOf(), target.TypeOf()) {
			// Translate the parameter names of the template lambda into
			// those of the target.  The frame is popped together with the
			// body below.
			s.frames = append(s.frames, lambda.Params())

			templParam := lambda.Params().Front()
			targetParam := target.Params().Front()
			for ; templParam != nil; templParam, targetParam = templParam.Next(), targetParam.Next() {
				s.bind(templParam.Value.(sem.Object),
					sem.NewAtomic(targetParam.Value.(sem.Object)))
			}

			s.push(lambda.Body())
			Accept(target.Body(), s)
			s.pop()
			return
		}
	}

	s.fail(templ, target)
}

// -----------------------------------------------------------------------------

// push puts a template subexpression on the stack, performing substitution on
// the fly where the context has an entry for it.
func (s *Substitution) push(e sem.Expression) {
	switch v := e.(type) {
	case *sem.AtomicExpr:
		if def, ok := s.ctx[v.Atom()]; ok {
			s.frames = append(s.frames, nil)
			s.templates = append(s.templates, def)
			return
		}

	case *sem.LambdaCallExpr:
		if def, ok := s.ctx[v.Callee()]; ok {
			lambda, isLambda := def.(*sem.LambdaExpr)
			if !isLambda {
				// Substituting a plain atom into call position has no
				// defined semantics yet; reject the match.
				s.fail(e, nil)
				s.frames = append(s.frames, nil)
				s.templates = append(s.templates, e)
				return
			}

			// Beta reduction: bind the formal parameters to the call's
			// arguments, then descend into the body.
			s.frames = append(s.frames, lambda.Params())
			param := lambda.Params().Front()
			for n := 0; param != nil; param, n = param.Next(), n+1 {
				s.bind(param.Value.(sem.Object), v.Args()[n])
			}

			s.push(lambda.Body())
			return
		}
	}

	// Nothing to substitute: push the expression unchanged.  A nil entry on
	// the frame stack marks that this push bound nothing.
	s.frames = append(s.frames, nil)
	s.templates = append(s.templates, e)
}

// pop removes the topmost template frame and unbinds every parameter list
// recorded since the matching push.
func (s *Substitution) pop() {
	if n := len(s.frames); n == 0 || s.frames[n-1] != nil {
		panic("walk: unbalanced substitution stack")
	}
	s.frames = s.frames[:len(s.frames)-1]

	for len(s.frames) > 0 && s.frames[len(s.frames)-1] != nil {
		s.unbind(s.frames[len(s.frames)-1])
		s.frames = s.frames[:len(s.frames)-1]
	}

	s.templates = s.templates[:len(s.templates)-1]
}

// top returns the current template subexpression.
func (s *Substitution) top() sem.Expression {
	return s.templates[len(s.templates)-1]
}

// bind records a substitute for an object.  If the substitute is an atomic
// expression that is itself substituted, the chain is shortcut immediately.
func (s *Substitution) bind(node sem.Object, expr sem.Expression) {
	if atomic, ok := expr.(*sem.AtomicExpr); ok {
		if def, ok := s.ctx[atomic.Atom()]; ok {
			expr = def
		}
	}

	s.ctx[node] = expr
}

// unbind removes the bindings of a parameter list from the context.
func (s *Substitution) unbind(params *sem.Theory) {
	for el := params.Front(); el != nil; el = el.Next() {
		delete(s.ctx, el.Value.(sem.Object))
	}
}

// fail records a mismatch; the first mismatch of a walk is kept.
func (s *Substitution) fail(templ, target sem.Expression) {
	if s.offender == nil {
		s.offender = &Mismatch{Template: templ, Target: target}
	}
}
