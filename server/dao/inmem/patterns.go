package inmem

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tiberiu1204/regex-lfa/server/dao"
)

func NewPatternsRepository() *PatternsRepository {
	return &PatternsRepository{
		patterns:    make(map[uuid.UUID]dao.Pattern),
		byNameIndex: make(map[string]uuid.UUID),
	}
}

// PatternsRepository is an in-memory implementation of
// dao.PatternRepository. It is safe for concurrent use.
type PatternsRepository struct {
	mtx         sync.RWMutex
	patterns    map[uuid.UUID]dao.Pattern
	byNameIndex map[string]uuid.UUID
}

func (pr *PatternsRepository) Close() error {
	return nil
}

func (pr *PatternsRepository) Create(ctx context.Context, p dao.Pattern) (dao.Pattern, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Pattern{}, fmt.Errorf("could not generate ID: %w", err)
	}

	pr.mtx.Lock()
	defer pr.mtx.Unlock()

	// make sure the name is not already taken
	if _, ok := pr.byNameIndex[p.Name]; ok {
		return dao.Pattern{}, dao.ErrConstraintViolation
	}

	p.ID = newUUID
	p.Created = time.Now()

	pr.patterns[p.ID] = p
	pr.byNameIndex[p.Name] = p.ID

	return p, nil
}

func (pr *PatternsRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.Pattern, error) {
	pr.mtx.RLock()
	defer pr.mtx.RUnlock()

	p, ok := pr.patterns[id]
	if !ok {
		return dao.Pattern{}, dao.ErrNotFound
	}

	return p, nil
}

func (pr *PatternsRepository) GetByName(ctx context.Context, name string) (dao.Pattern, error) {
	pr.mtx.RLock()
	defer pr.mtx.RUnlock()

	id, ok := pr.byNameIndex[name]
	if !ok {
		return dao.Pattern{}, dao.ErrNotFound
	}

	return pr.patterns[id], nil
}

func (pr *PatternsRepository) GetAll(ctx context.Context) ([]dao.Pattern, error) {
	pr.mtx.RLock()
	defer pr.mtx.RUnlock()

	all := make([]dao.Pattern, 0, len(pr.patterns))
	for k := range pr.patterns {
		all = append(all, pr.patterns[k])
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Name < all[j].Name
	})

	return all, nil
}

func (pr *PatternsRepository) Delete(ctx context.Context, id uuid.UUID) (dao.Pattern, error) {
	pr.mtx.Lock()
	defer pr.mtx.Unlock()

	p, ok := pr.patterns[id]
	if !ok {
		return dao.Pattern{}, dao.ErrNotFound
	}

	delete(pr.patterns, id)
	delete(pr.byNameIndex, p.Name)

	return p, nil
}
