// Package parse implements the predictive parser for the regex dialect. The
// grammar is fixed:
//
//	expr    -> concat expr'
//	expr'   -> '|' concat expr' | ε
//	concat  -> star concat'
//	concat' -> star concat' | ε
//	star    -> primary star'
//	star'   -> '*' | ε
//	primary -> literal | '(' expr ')'
//
// The parser is a table-driven LL(1) driver that builds the syntax tree
// while it parses: the production stack carries reduction markers
// interleaved with the grammar symbols, and a second stack of tree-node
// indices holds the values the markers reduce. An ε-expansion pushes the
// sentinel -1 so that every reduction pops a fixed number of operands no
// matter which alternative was taken.
package parse

import (
	"fmt"

	"github.com/tiberiu1204/regex-lfa/internal/reerrors"
	"github.com/tiberiu1204/regex-lfa/internal/syntree"
	"github.com/tiberiu1204/regex-lfa/internal/util"
)

type symbol int

const (
	ntExpr symbol = iota
	ntExprPr
	ntConcat
	ntConcatPr
	ntStar
	ntStarPr
	ntPrimary

	tStar
	tOr
	tLParen
	tRParen
	tLiteral
	tEnd

	mExpr
	mExprPr
	mConcat
	mConcatPr
	mStar
	mStarPr
	mEnd
)

func (s symbol) isTerminal() bool {
	return s >= tStar && s <= tEnd
}

func (s symbol) isMarker() bool {
	return s >= mExpr
}

func (s symbol) String() string {
	switch s {
	case tStar:
		return "'*'"
	case tOr:
		return "'|'"
	case tLParen:
		return "'('"
	case tRParen:
		return "')'"
	case tLiteral:
		return "literal"
	case tEnd:
		return "end of expression"
	default:
		return fmt.Sprintf("symbol(%d)", int(s))
	}
}

// noValue is the value-stack sentinel pushed by ε-expansions.
const noValue = -1

// prodTable is the LL(1) parse table. Rows are nonterminals, columns are the
// lookahead terminal. Each cell holds the RHS to expand to, in grammar
// order, inclusive of the reduction markers; a present-but-empty cell is an
// ε-expansion and a missing cell is a syntax error.
var prodTable = map[symbol]map[symbol][]symbol{
	ntExpr: {
		tLParen:  {ntConcat, ntExprPr, mExpr},
		tLiteral: {ntConcat, ntExprPr, mExpr},
	},
	ntExprPr: {
		tOr:     {tOr, ntConcat, ntExprPr, mExprPr},
		tRParen: {},
		tEnd:    {},
	},
	ntConcat: {
		tLParen:  {ntStar, ntConcatPr, mConcat},
		tLiteral: {ntStar, ntConcatPr, mConcat},
	},
	ntConcatPr: {
		tOr:      {},
		tLParen:  {ntStar, ntConcatPr, mConcatPr},
		tRParen:  {},
		tLiteral: {ntStar, ntConcatPr, mConcatPr},
		tEnd:     {},
	},
	ntStar: {
		tLParen:  {ntPrimary, ntStarPr, mStar},
		tLiteral: {ntPrimary, ntStarPr, mStar},
	},
	ntStarPr: {
		tStar:    {tStar, mStarPr},
		tOr:      {},
		tLParen:  {},
		tRParen:  {},
		tLiteral: {},
		tEnd:     {},
	},
	ntPrimary: {
		tLParen:  {tLParen, ntExpr, tRParen},
		tLiteral: {tLiteral},
	},
}

func classify(ch byte) symbol {
	switch ch {
	case '*':
		return tStar
	case '|':
		return tOr
	case '(':
		return tLParen
	case ')':
		return tRParen
	default:
		return tLiteral
	}
}

// Parse parses the given expression and returns its syntax tree. The
// returned error, if any, is a reerrors.SyntaxError wrapping
// reerrors.ErrNotRegex. The empty expression is not a valid regex.
func Parse(expr string) (syntree.Tree, error) {
	tree := syntree.Tree{}

	syms := util.Stack[symbol]{Of: []symbol{ntExpr, mEnd}}
	values := util.Stack[int]{}

	pos := 0
	lookahead := func() symbol {
		if pos >= len(expr) {
			return tEnd
		}
		return classify(expr[pos])
	}

	for syms.Len() > 0 {
		x := syms.Pop()

		if x.isMarker() {
			if x == mEnd {
				if la := lookahead(); la != tEnd {
					return tree, reerrors.Syntaxf(expr, pos, "expected end of expression, found %q", string(expr[pos]))
				}
				// the value stack now holds exactly the root
				values.Pop()
				return tree, nil
			}
			reduce(&tree, &values, x)
			continue
		}

		if x.isTerminal() {
			la := lookahead()
			if x != la {
				if la == tEnd {
					return tree, reerrors.Syntaxf(expr, pos, "expected %s, found end of expression", x)
				}
				return tree, reerrors.Syntaxf(expr, pos, "expected %s, found %q", x, string(expr[pos]))
			}

			if x == tLiteral {
				values.Push(tree.Emplace(syntree.Literal, expr[pos]))
			}
			pos++
			continue
		}

		// x is a nonterminal; expand it via the parse table
		la := lookahead()
		rhs, ok := prodTable[x][la]
		if !ok {
			if la == tEnd {
				return tree, reerrors.Syntaxf(expr, pos, "unexpected end of expression")
			}
			return tree, reerrors.Syntaxf(expr, pos, "it doesn't make sense to put %q here", string(expr[pos]))
		}

		if len(rhs) == 0 {
			// ε-expansion; the reduction that owns this slot gets the
			// sentinel instead of a node
			values.Push(noValue)
			continue
		}

		for i := len(rhs) - 1; i >= 0; i-- {
			syms.Push(rhs[i])
		}
	}

	// mEnd is always beneath everything else on the stack, so the loop can
	// only be left through it
	panic("production stack exhausted without end marker")
}

// reduce applies the reduction for marker m to the top of the value stack.
//
// mExpr/mExprPr and mConcat/mConcatPr pop two operands: the tail value on
// top and the head value beneath it. If both are the ε sentinel the
// reduction is the identity; otherwise a node is emplaced with every
// non-sentinel operand attached in source order. A node can therefore end up
// with a single child, which downstream compilation treats as a
// pass-through.
//
// mStarPr emplaces a childless STAR node when '*' was matched, and mStar
// then pops that node (or the sentinel, when star' went to ε) together with
// the primary's value, attaching the latter beneath the former.
func reduce(tree *syntree.Tree, values *util.Stack[int], m symbol) {
	switch m {
	case mExpr, mExprPr:
		reduceBinary(tree, values, syntree.Or, '|')
	case mConcat, mConcatPr:
		reduceBinary(tree, values, syntree.Concat, '.')
	case mStarPr:
		values.Push(tree.Emplace(syntree.Star, '*'))
	case mStar:
		starred := values.Pop()
		operand := values.Pop()

		if starred == noValue {
			values.Push(operand)
			break
		}

		tree.AddChild(starred, operand)
		values.Push(starred)
	default:
		panic(fmt.Sprintf("reduce called with non-reduction symbol %d", int(m)))
	}
}

func reduceBinary(tree *syntree.Tree, values *util.Stack[int], nt syntree.NodeType, value byte) {
	tail := values.Pop()
	head := values.Pop()

	if tail == noValue && head == noValue {
		values.Push(noValue)
		return
	}

	n := tree.Emplace(nt, value)
	if head != noValue {
		tree.AddChild(n, head)
	}
	if tail != noValue {
		tree.AddChild(n, tail)
	}
	values.Push(n)
}
