// Package relfa is a regular-expression engine built on lambda-NFAs. An
// expression is parsed into a syntax tree, the tree is compiled into a
// nondeterministic finite automaton with lambda-transitions by Thompson's
// construction, and words are tested for full-match acceptance against that
// automaton.
//
// The dialect is deliberately small: literals, grouping with parentheses,
// alternation with '|', and the Kleene star. Concatenation is implicit
// juxtaposition. The dash '-' is reserved as the lambda-marker at the
// automaton layer and should not appear in expressions.
package relfa

import (
	"github.com/tiberiu1204/regex-lfa/automaton"
	"github.com/tiberiu1204/regex-lfa/internal/parse"
	"github.com/tiberiu1204/regex-lfa/internal/reerrors"
	"github.com/tiberiu1204/regex-lfa/internal/syntree"
	"github.com/tiberiu1204/regex-lfa/internal/util"
)

// ErrNotRegex is the kind of all errors reported for input that is not a
// valid regular expression. Errors returned by New and SetExpression match
// it under errors.Is.
var ErrNotRegex = reerrors.ErrNotRegex

// Regex is a compiled regular expression. It owns the expression string, the
// syntax tree the parser produced for it, and the lambda-NFA compiled from
// that tree. A Regex is immutable after construction except through
// SetExpression, so it may be shared by concurrent readers as long as no
// writer is active.
type Regex struct {
	expr string
	tree syntree.Tree
	nfa  automaton.Automaton
}

// New compiles the given expression and returns a ready-to-use Regex. The
// returned error matches ErrNotRegex if the expression does not conform to
// the regex grammar; the empty expression is not valid.
func New(expr string) (*Regex, error) {
	r := &Regex{}
	if err := r.SetExpression(expr); err != nil {
		return nil, err
	}
	return r, nil
}

// SetExpression replaces the regex's expression, rebuilding both the syntax
// tree and the automaton. On error the receiver is left unchanged.
func (r *Regex) SetExpression(expr string) error {
	tree, err := parse.Parse(expr)
	if err != nil {
		return err
	}

	r.expr = expr
	r.tree = tree
	r.nfa = buildNFA(tree)
	return nil
}

// Expression returns the expression the regex was compiled from.
func (r *Regex) Expression() string {
	return r.expr
}

// Eval reports whether the regex accepts the given word. Matching is
// full-match: the entire word must be consumed. Eval cannot fail; a word the
// automaton does not accept simply yields false.
func (r *Regex) Eval(word string) bool {
	return r.nfa.Accept(word)
}

// NFA returns the compiled lambda-NFA. The returned value shares no mutable
// state guarantees with the Regex; treat it as read-only or Copy it first.
func (r *Regex) NFA() automaton.Automaton {
	return r.nfa
}

// buildNFA compiles a syntax tree to a lambda-NFA by a post-order walk,
// applying the Thompson combinator for each node to the automata already
// built for its children. The walk uses an explicit stack with a
// visit-again flag rather than recursion, so deeply nested expressions
// cannot exhaust the goroutine stack.
func buildNFA(t syntree.Tree) automaton.Automaton {
	root := t.Root()
	if root < 0 {
		return automaton.New()
	}

	type frame struct {
		node int
		emit bool
	}

	work := util.Stack[frame]{}
	work.Push(frame{node: root})

	built := util.Stack[automaton.Automaton]{}

	for work.Len() > 0 {
		f := work.Pop()
		n := t.Node(f.node)

		if !f.emit {
			// visit again to emit once the children are done
			work.Push(frame{node: f.node, emit: true})
			for i := len(n.Children) - 1; i >= 0; i-- {
				work.Push(frame{node: n.Children[i]})
			}
			continue
		}

		switch n.Type {
		case syntree.Literal:
			built.Push(automaton.NewLiteral(n.Value))
		case syntree.Star:
			built.Push(built.Pop().Star())
		case syntree.Concat:
			built.Push(fold(&built, len(n.Children), automaton.Automaton.Concat))
		case syntree.Or:
			built.Push(fold(&built, len(n.Children), automaton.Automaton.Union))
		}
	}

	return built.Pop()
}

// fold pops the automata built for a node's count children (the rightmost
// child is on top) and combines them left to right with the given
// combinator. A single-child node folds to that child's automaton unchanged,
// which is how the pass-through nodes the parser emits compile away.
func fold(built *util.Stack[automaton.Automaton], count int, combine func(automaton.Automaton, automaton.Automaton) automaton.Automaton) automaton.Automaton {
	parts := make([]automaton.Automaton, count)
	for i := count - 1; i >= 0; i-- {
		parts[i] = built.Pop()
	}

	acc := parts[0]
	for _, p := range parts[1:] {
		acc = combine(acc, p)
	}
	return acc
}
