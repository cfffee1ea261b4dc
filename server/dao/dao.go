// Package dao provides data access objects for use in the pattern server.
package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tiberiu1204/regex-lfa/automaton"
)

var (
	ErrConstraintViolation = errors.New("a uniqueness constraint was violated")
	ErrNotFound            = errors.New("the requested resource was not found")
	ErrDecodingFailure     = errors.New("field could not be decoded from DB storage format to model format")
)

// Store holds all the repositories.
type Store interface {
	Patterns() PatternRepository
	Close() error
}

// PatternRepository holds named patterns together with their compiled
// automata, so a stored pattern can be matched against without re-parsing
// its expression.
type PatternRepository interface {
	Create(ctx context.Context, p Pattern) (Pattern, error)
	GetByID(ctx context.Context, id uuid.UUID) (Pattern, error)
	GetByName(ctx context.Context, name string) (Pattern, error)
	GetAll(ctx context.Context) ([]Pattern, error)
	Delete(ctx context.Context, id uuid.UUID) (Pattern, error)
	Close() error
}

// Pattern is a named regular expression and its compiled lambda-NFA.
type Pattern struct {
	ID       uuid.UUID
	Name     string
	Expr     string
	Compiled automaton.Automaton
	Created  time.Time
}
