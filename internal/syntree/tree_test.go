package syntree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Tree_emplaceAndRoot(t *testing.T) {
	assert := assert.New(t)

	tree := Tree{}
	assert.Equal(-1, tree.Root())
	assert.Equal(0, tree.Len())

	lit := tree.Emplace(Literal, 'a')
	assert.Equal(0, lit)
	assert.Equal(lit, tree.Root())

	star := tree.Emplace(Star, '*')
	tree.AddChild(star, lit)

	assert.Equal(star, tree.Root())
	assert.Equal(2, tree.Len())

	n := tree.Node(star)
	assert.Equal(Star, n.Type)
	assert.Equal([]int{lit}, n.Children)
}

func Test_Tree_AddChild_panicsOnBadIndex(t *testing.T) {
	assert := assert.New(t)

	tree := Tree{}
	n := tree.Emplace(Concat, '.')

	assert.Panics(func() {
		tree.AddChild(n, 8)
	})
	assert.Panics(func() {
		tree.AddChild(8, n)
	})
}

func Test_Tree_String(t *testing.T) {
	assert := assert.New(t)

	// or(cat(a, b)) built by hand
	tree := Tree{}
	a := tree.Emplace(Literal, 'a')
	b := tree.Emplace(Literal, 'b')
	cat := tree.Emplace(Concat, '.')
	tree.AddChild(cat, a)
	tree.AddChild(cat, b)
	or := tree.Emplace(Or, '|')
	tree.AddChild(or, cat)

	expect := "( OR )\n" +
		`  \---: ( CONCAT )` + "\n" +
		`          |---: (LITERAL "a")` + "\n" +
		`          \---: (LITERAL "b")`

	assert.Equal(expect, tree.String())
}

func Test_Tree_Equal(t *testing.T) {
	buildStarA := func() Tree {
		tree := Tree{}
		a := tree.Emplace(Literal, 'a')
		star := tree.Emplace(Star, '*')
		tree.AddChild(star, a)
		return tree
	}

	// same structure but different insertion order of unrelated nodes, so
	// the indices differ
	buildStarAShifted := func() Tree {
		tree := Tree{}
		tree.Emplace(Literal, 'z') // orphan, not reachable from the root
		a := tree.Emplace(Literal, 'a')
		star := tree.Emplace(Star, '*')
		tree.AddChild(star, a)
		return tree
	}

	buildStarB := func() Tree {
		tree := Tree{}
		b := tree.Emplace(Literal, 'b')
		star := tree.Emplace(Star, '*')
		tree.AddChild(star, b)
		return tree
	}

	testCases := []struct {
		name   string
		left   Tree
		right  Tree
		expect bool
	}{
		{name: "identical build", left: buildStarA(), right: buildStarA(), expect: true},
		{name: "equal up to node indices", left: buildStarA(), right: buildStarAShifted(), expect: true},
		{name: "different literal", left: buildStarA(), right: buildStarB(), expect: false},
		{name: "empty vs non-empty", left: Tree{}, right: buildStarA(), expect: false},
		{name: "both empty", left: Tree{}, right: Tree{}, expect: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// setup
			assert := assert.New(t)

			// execute
			actual := tc.left.Equal(tc.right)

			// assert
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Tree_Equal_nonTree(t *testing.T) {
	assert := assert.New(t)

	tree := Tree{}
	tree.Emplace(Literal, 'a')

	assert.False(tree.Equal("not a tree"))
	assert.False(tree.Equal(nil))
	assert.True(tree.Equal(&tree))
}
