package walk

import "github.com/aaronpuchert/logic/sem"

// Visitor is the traversal hook over the expression tree, with one method per
// concrete variant.  Embed BaseVisitor to get no-op defaults and override the
// variants of interest.
type Visitor interface {
	VisitBuiltInType(e *sem.BuiltInType)
	VisitLambdaType(e *sem.LambdaType)
	VisitAtomic(e *sem.AtomicExpr)
	VisitLambdaCall(e *sem.LambdaCallExpr)
	VisitNegation(e *sem.NegationExpr)
	VisitConnective(e *sem.ConnectiveExpr)
	VisitQuantifier(e *sem.QuantifierExpr)
	VisitLambda(e *sem.LambdaExpr)
}

// Accept dispatches an expression to the matching visitor method.
func Accept(e sem.Expression, v Visitor) {
	switch expr := e.(type) {
	case *sem.BuiltInType:
		v.VisitBuiltInType(expr)
	case *sem.LambdaType:
		v.VisitLambdaType(expr)
	case *sem.AtomicExpr:
		v.VisitAtomic(expr)
	case *sem.LambdaCallExpr:
		v.VisitLambdaCall(expr)
	case *sem.NegationExpr:
		v.VisitNegation(expr)
	case *sem.ConnectiveExpr:
		v.VisitConnective(expr)
	case *sem.QuantifierExpr:
		v.VisitQuantifier(expr)
	case *sem.LambdaExpr:
		v.VisitLambda(expr)
	}
}

// BaseVisitor provides no-op implementations for every variant.
type BaseVisitor struct{}

func (BaseVisitor) VisitBuiltInType(*sem.BuiltInType)   {}
func (BaseVisitor) VisitLambdaType(*sem.LambdaType)     {}
func (BaseVisitor) VisitAtomic(*sem.AtomicExpr)         {}
func (BaseVisitor) VisitLambdaCall(*sem.LambdaCallExpr) {}
func (BaseVisitor) VisitNegation(*sem.NegationExpr)     {}
func (BaseVisitor) VisitConnective(*sem.ConnectiveExpr) {}
func (BaseVisitor) VisitQuantifier(*sem.QuantifierExpr) {}
func (BaseVisitor) VisitLambda(*sem.LambdaExpr)         {}
