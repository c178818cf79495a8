package syntax

import (
	"bufio"
	"container/list"
	"errors"
	"io"

	"github.com/aaronpuchert/logic/rules"
	"github.com/aaronpuchert/logic/sem"
)

// Writer renders theories back into the S-expression surface syntax.  Tokens
// are buffered in a queue; once a full top-level object (or enough material
// for a line) has accumulated, lines are emitted, breaking a list onto its
// own lines when a single-line rendering would exceed the configured width.
// The closing parenthesis goes on its own line only if the list was broken.
type Writer struct {
	out   *bufio.Writer
	queue []Token
	depth int

	// For pretty printing
	maxLineLength int
	lineLength    int
	tabSize       int
	tabs          bool
	writeDepth    int

	// Keeping track of where we are, for reference descriptors
	theoryStack []*sem.Theory
	posStack    []*list.Element
}

// NewWriter creates a writer with the given line length and indentation
// settings.  When tabs is true, lines are indented with one tab per level,
// otherwise with tabSize spaces per level.
func NewWriter(out io.Writer, lineLength, tabSize int, tabs bool) *Writer {
	return &Writer{
		out:           bufio.NewWriter(out),
		maxLineLength: lineLength,
		tabSize:       tabSize,
		tabs:          tabs,
	}
}

// DefaultWriter creates a writer with the conventional settings: 80 columns,
// tab indentation.
func DefaultWriter(out io.Writer) *Writer {
	return NewWriter(out, 80, 4, true)
}

// Flush writes any buffered output.  It fails if the emitted parentheses
// were unbalanced, which indicates a bug in the caller.
func (w *Writer) Flush() error {
	w.writeQueue()

	if w.depth != 0 {
		return errors.New("unbalanced parentheses in writer")
	}
	return w.out.Flush()
}

// -----------------------------------------------------------------------------

// WriteTheory renders all objects of a theory in insertion order.
func (w *Writer) WriteTheory(theory *sem.Theory) {
	w.theoryStack = append(w.theoryStack, theory)

	for pos := theory.Front(); pos != nil; pos = pos.Next() {
		w.posStack = append(w.posStack, pos)
		w.writeObject(pos.Value.(sem.Object))
		w.posStack = w.posStack[:len(w.posStack)-1]
	}

	w.theoryStack = w.theoryStack[:len(w.theoryStack)-1]
}

// WriteObject renders a single object.  References inside proofs can only be
// rendered relative to a containing theory, so statements with proofs should
// be written through WriteTheory.
func (w *Writer) WriteObject(object sem.Object) {
	w.writeObject(object)
}

func (w *Writer) writeObject(object sem.Object) {
	switch obj := object.(type) {
	case *sem.Statement:
		w.writeStatement(obj)
	case *rules.Tautology:
		w.addParen(opening)
		w.addToken("tautology")
		w.addToken(obj.Name())
		w.writeVarList(obj)
		w.writeExpr(obj.Statement())
		w.addParen(closing)
	case *rules.EquivalenceRule:
		w.addParen(opening)
		w.addToken("equivrule")
		w.addToken(obj.Name())
		w.writeVarList(obj)
		w.writeExpr(obj.First())
		w.writeExpr(obj.Second())
		w.addParen(closing)
	case *rules.DeductionRule:
		w.addParen(opening)
		w.addToken("deductionrule")
		w.addToken(obj.Name())
		w.writeVarList(obj)
		w.addParen(opening)
		w.addToken("list")
		for _, premise := range obj.Premises() {
			w.writeExpr(premise)
		}
		w.addParen(closing)
		w.writeExpr(obj.Conclusion())
		w.addParen(closing)
	default:
		// A plain declaration: (<type> <name> [<definition>])
		w.addParen(opening)
		w.writeExpr(object.TypeOf())
		w.addToken(object.Name())
		if def := object.Definition(); def != nil {
			w.writeExpr(def)
		}
		w.addParen(closing)
	}
}

// writeVarList renders the parameter list of a rule.
func (w *Writer) writeVarList(rule rules.Rule) {
	w.addParen(opening)
	w.addToken("list")
	w.WriteTheory(rule.Params())
	w.addParen(closing)
}

func (w *Writer) writeStatement(stmt *sem.Statement) {
	w.addParen(opening)
	if stmt.HasProof() {
		w.addToken("lemma")
	} else {
		w.addToken("axiom")
	}
	if stmt.Name() != "" {
		w.addToken(stmt.Name())
	}
	w.writeExpr(stmt.Definition())
	if stmt.HasProof() {
		w.writeProof(stmt.Proof())
	}
	w.addParen(closing)
}

func (w *Writer) writeProof(proof sem.Proof) {
	switch pf := proof.(type) {
	case *rules.ProofStep:
		w.addParen(opening)
		w.addToken(pf.Rule().Name())
		w.addParen(opening)
		w.addToken("list")
		for _, arg := range pf.Args() {
			w.writeExpr(arg)
		}
		w.addParen(closing)
		w.addParen(opening)
		w.addToken("list")
		for _, ref := range pf.References() {
			w.writeReference(ref)
		}
		w.addParen(closing)
		w.addParen(closing)

	case *rules.LongProof:
		w.addParen(opening)
		w.addToken("proof")
		w.WriteTheory(pf.SubTheory())
		w.addParen(closing)
	}
}

func (w *Writer) writeReference(ref sem.Reference) {
	var theory *sem.Theory
	var pos *list.Element
	if len(w.theoryStack) > 0 {
		theory = w.theoryStack[len(w.theoryStack)-1]
		pos = w.posStack[len(w.posStack)-1]
	}

	desc, err := ref.Description(theory, pos)
	if err != nil {
		desc = "?"
	}
	w.addToken(desc)
}

func (w *Writer) writeExpr(e sem.Expression) {
	switch expr := e.(type) {
	case *sem.BuiltInType:
		switch expr.Variant {
		case sem.KindType:
			w.addToken("type")
		case sem.KindStatement:
			w.addToken("statement")
		case sem.KindRule:
			w.addToken("rule")
		default:
			w.addToken("undefined")
		}

	case *sem.LambdaType:
		w.addParen(opening)
		w.addToken("lambda-type")
		w.writeExpr(expr.ReturnType())
		w.addParen(opening)
		w.addToken("list")
		for _, arg := range expr.Args() {
			w.writeExpr(arg)
		}
		w.addParen(closing)
		w.addParen(closing)

	case *sem.AtomicExpr:
		w.addToken(expr.Atom().Name())

	case *sem.LambdaCallExpr:
		w.addParen(opening)
		w.addToken(expr.Callee().Name())
		for _, arg := range expr.Args() {
			w.writeExpr(arg)
		}
		w.addParen(closing)

	case *sem.NegationExpr:
		w.addParen(opening)
		w.addToken("not")
		w.writeExpr(expr.Inner())
		w.addParen(closing)

	case *sem.ConnectiveExpr:
		w.addParen(opening)
		switch expr.Variant() {
		case sem.ConnAnd:
			w.addToken("and")
		case sem.ConnOr:
			w.addToken("or")
		case sem.ConnImpl:
			w.addToken("impl")
		case sem.ConnEquiv:
			w.addToken("equiv")
		}
		w.writeExpr(expr.First())
		w.writeExpr(expr.Second())
		w.addParen(closing)

	case *sem.QuantifierExpr:
		w.addParen(opening)
		if expr.Variant() == sem.QuantForall {
			w.addToken("forall")
		} else {
			w.addToken("exists")
		}
		w.writeExpr(expr.Predicate())
		w.addParen(closing)

	case *sem.LambdaExpr:
		w.addParen(opening)
		w.addToken("lambda")
		w.addParen(opening)
		w.addToken("list")
		w.WriteTheory(expr.Params())
		w.addParen(closing)
		w.writeExpr(expr.Body())
		w.addParen(closing)
	}
}

// -----------------------------------------------------------------------------

// Depth changes for addParen
const (
	opening = +1
	closing = -1
)

// addParen adds a parenthesis token and flushes the queue at depth zero or
// when enough material has accumulated.
func (w *Writer) addParen(change int) {
	w.depth += change

	if change == opening {
		w.push(Token{Kind: LPAREN})
	} else {
		w.push(Token{Kind: RPAREN})
	}

	if w.depth == 0 || w.lineLength > 2*w.maxLineLength {
		w.writeQueue()
	}
}

// addToken adds a word token.
func (w *Writer) addToken(token string) {
	w.push(Token{Kind: WORD, Value: token})
}

// push appends a token to the queue, accounting for the length of the
// preceding token.  The last token of the queue is never accounted for: it is
// only flushed at depth zero, so it is a closing parenthesis, and writeQueue
// does not count it either.
func (w *Writer) push(token Token) {
	w.queue = append(w.queue, token)

	if len(w.queue) >= 2 {
		w.lineLength += w.tokenLength(len(w.queue) - 2)
	}
}

// writeQueue writes lines from the queue.  It stops at depth zero when the
// queue is empty; in between it keeps at least a line's worth of material
// buffered, since line-break decisions need a full line of lookahead.
func (w *Writer) writeQueue() {
	for (w.depth == 0 && len(w.queue) > 0) ||
		(w.depth != 0 && w.lineLength > w.maxLineLength) {
		switch w.queue[0].Kind {
		case LPAREN:
			// Count characters until the matching ')'
			length := w.tabSize * w.writeDepth
			index := 1
			for curDepth := 1; curDepth != 0 && length <= w.maxLineLength && index < len(w.queue); index++ {
				switch w.queue[index].Kind {
				case LPAREN:
					curDepth++
				case RPAREN:
					curDepth--
				}

				length += w.tokenLength(index)
			}

			// Does it fit on the line? Then write.
			if length <= w.maxLineLength {
				w.writeLine(index)
			} else {
				if w.queue[1].Kind == LPAREN {
					w.writeLine(1)
				} else {
					w.writeLine(2)
				}

				// The closing parenthesis will be on an extra line, hence we
				// don't have to account for it. (*)
				w.lineLength--
				w.writeDepth++
			}

		case RPAREN:
			w.lineLength++ // compensate for forgetting in (*)
			w.writeDepth--
			w.writeLine(1)

		case WORD:
			w.writeLine(1)
		}
	}
}

// writeLine writes a complete line using the first numTokens tokens of the
// queue, indented according to the current write depth.
func (w *Writer) writeLine(numTokens int) {
	if w.tabs {
		for indent := 0; indent < w.writeDepth; indent++ {
			w.out.WriteByte('\t')
		}
	} else {
		for indent := 0; indent < w.tabSize*w.writeDepth; indent++ {
			w.out.WriteByte(' ')
		}
	}

	for i := numTokens; i > 0; i-- {
		token := w.queue[0]

		w.writeToken(token)
		// We don't account for the last token in the queue, see push.
		if len(w.queue) > 1 {
			w.lineLength -= w.tokenLength(0)
		}

		w.queue = w.queue[1:]

		// Space after the token if it isn't '(' and the next token isn't
		// ')'.  Also, no space after the last token of a line.
		if token.Kind != LPAREN && len(w.queue) > 0 &&
			w.queue[0].Kind != RPAREN && i > 2 {
			w.out.WriteByte(' ')
		}
	}

	w.out.WriteByte('\n')
}

// writeToken writes a single token.
func (w *Writer) writeToken(token Token) {
	switch token.Kind {
	case WORD:
		w.out.WriteString(token.Value)
	case LPAREN:
		w.out.WriteByte('(')
	case RPAREN:
		w.out.WriteByte(')')
	}
}

// tokenLength computes the length of a token in the queue, accounting for
// the space after it.  The token at the very end of the queue gets no space:
// it is only flushed at depth zero, where it is a closing parenthesis.
func (w *Writer) tokenLength(index int) int {
	length := 1
	if w.queue[index].Kind == WORD {
		length = len(w.queue[index].Value)
	}

	if w.queue[index].Kind != LPAREN &&
		index+1 < len(w.queue) && w.queue[index+1].Kind != RPAREN {
		length++
	}

	return length
}
