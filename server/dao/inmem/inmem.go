// Package inmem provides an in-memory implementation of the pattern server's
// data store, suitable for testing and for running without any state on
// disk.
package inmem

import (
	"github.com/tiberiu1204/regex-lfa/server/dao"
)

type store struct {
	patterns *PatternsRepository
}

// NewDatastore creates a new in-memory Store. Everything in it is lost when
// the process exits.
func NewDatastore() dao.Store {
	return &store{
		patterns: NewPatternsRepository(),
	}
}

func (s *store) Patterns() dao.PatternRepository {
	return s.patterns
}

func (s *store) Close() error {
	return s.patterns.Close()
}
