package inmem

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tiberiu1204/regex-lfa/automaton"
	"github.com/tiberiu1204/regex-lfa/server/dao"
)

func Test_PatternsRepository_CreateAndGet(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	repo := NewPatternsRepository()

	created, err := repo.Create(ctx, dao.Pattern{
		Name:     "single-a",
		Expr:     "a",
		Compiled: automaton.NewLiteral('a'),
	})
	if !assert.NoError(err) {
		return
	}
	assert.NotZero(created.ID)
	assert.False(created.Created.IsZero())

	byID, err := repo.GetByID(ctx, created.ID)
	assert.NoError(err)
	assert.Equal("single-a", byID.Name)
	assert.True(byID.Compiled.Accept("a"))

	byName, err := repo.GetByName(ctx, "single-a")
	assert.NoError(err)
	assert.Equal(created.ID, byName.ID)
}

func Test_PatternsRepository_duplicateNameRejected(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	repo := NewPatternsRepository()

	_, err := repo.Create(ctx, dao.Pattern{Name: "p", Expr: "a", Compiled: automaton.NewLiteral('a')})
	if !assert.NoError(err) {
		return
	}

	_, err = repo.Create(ctx, dao.Pattern{Name: "p", Expr: "b", Compiled: automaton.NewLiteral('b')})
	assert.ErrorIs(err, dao.ErrConstraintViolation)
}

func Test_PatternsRepository_Delete(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	repo := NewPatternsRepository()

	created, err := repo.Create(ctx, dao.Pattern{Name: "p", Expr: "a", Compiled: automaton.NewLiteral('a')})
	if !assert.NoError(err) {
		return
	}

	deleted, err := repo.Delete(ctx, created.ID)
	assert.NoError(err)
	assert.Equal(created.ID, deleted.ID)

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(err, dao.ErrNotFound)

	// the name is free again
	_, err = repo.Create(ctx, dao.Pattern{Name: "p", Expr: "b", Compiled: automaton.NewLiteral('b')})
	assert.NoError(err)
}

func Test_PatternsRepository_GetAllSortedByName(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	repo := NewPatternsRepository()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := repo.Create(ctx, dao.Pattern{Name: name, Expr: "a", Compiled: automaton.NewLiteral('a')})
		if !assert.NoError(err) {
			return
		}
	}

	all, err := repo.GetAll(ctx)
	if !assert.NoError(err) {
		return
	}

	names := make([]string, len(all))
	for i := range all {
		names[i] = all[i].Name
	}
	assert.Equal([]string{"alpha", "mid", "zeta"}, names)
}
