// Package server provides an HTTP pattern-library service over the regex
// engine: named patterns are stored with their compiled automata and words
// can be matched against them, or against one-off expressions, via a small
// JSON REST API.
//
//   - POST   /patterns        - store a named pattern (compiling it first)
//   - GET    /patterns        - list all stored patterns
//   - GET    /patterns/{id}   - get info on a stored pattern
//   - DELETE /patterns/{id}   - delete a stored pattern
//   - POST   /patterns/{id}/match - match a word against a stored pattern
//   - POST   /match           - match a word against a one-off expression
//   - GET    /info            - get version info on the server
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	relfa "github.com/tiberiu1204/regex-lfa"
	"github.com/tiberiu1204/regex-lfa/server/dao"
	"github.com/tiberiu1204/regex-lfa/server/dao/inmem"
	"github.com/tiberiu1204/regex-lfa/server/dao/sqlite"
	"github.com/tiberiu1204/regex-lfa/server/serr"
)

// Config holds parameters for creating a PatternServer.
type Config struct {
	// DBPath is the directory the SQLite pattern database lives in. If
	// empty, an in-memory store is used and nothing is persisted.
	DBPath string
}

// PatternServer is an HTTP server exposing the pattern-library API backed by
// a dao.Store. Create one with New, then call ServeForever.
type PatternServer struct {
	router chi.Router
	db     dao.Store
}

// New creates a new PatternServer with the given config. If cfg.DBPath is
// empty the server runs on an in-memory store.
func New(cfg Config) (*PatternServer, error) {
	var db dao.Store
	var err error

	if cfg.DBPath == "" {
		db = inmem.NewDatastore()
	} else {
		db, err = sqlite.NewDatastore(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("initializing datastore: %w", err)
		}
	}

	ps := &PatternServer{db: db}
	ps.router = ps.newRouter()

	return ps, nil
}

// ServeForever begins listening on the given address and port and serves
// requests until the process is killed or the listener fails. If address is
// empty, localhost is used; if port is 0, port 8080 is used.
func (ps *PatternServer) ServeForever(address string, port int) error {
	if address == "" {
		address = "localhost"
	}
	if port == 0 {
		port = 8080
	}

	listenOn := fmt.Sprintf("%s:%d", address, port)
	log.Printf("INFO:  listening on %s", listenOn)
	return http.ListenAndServe(listenOn, ps.router)
}

// Close releases the server's data store.
func (ps *PatternServer) Close() error {
	return ps.db.Close()
}

// CreatePattern compiles the given expression and stores it under the given
// name. The returned error wraps serr.ErrBadArgument if the expression is
// not a valid regex, and serr.ErrAlreadyExists if the name is taken.
func (ps *PatternServer) CreatePattern(ctx context.Context, name, expr string) (dao.Pattern, error) {
	if name == "" {
		return dao.Pattern{}, serr.New("name must not be empty", serr.ErrBadArgument)
	}

	rx, err := relfa.New(expr)
	if err != nil {
		return dao.Pattern{}, serr.New(err.Error(), err, serr.ErrBadArgument)
	}

	p := dao.Pattern{
		Name:     name,
		Expr:     expr,
		Compiled: rx.NFA(),
	}

	created, err := ps.db.Patterns().Create(ctx, p)
	if err != nil {
		if errors.Is(err, dao.ErrConstraintViolation) {
			return dao.Pattern{}, serr.New(fmt.Sprintf("a pattern named %q already exists", name), serr.ErrAlreadyExists)
		}
		return dao.Pattern{}, fmt.Errorf("create pattern: %w", err)
	}

	return created, nil
}

// GetPattern retrieves a stored pattern by ID. The returned error wraps
// serr.ErrNotFound if there is no such pattern.
func (ps *PatternServer) GetPattern(ctx context.Context, id uuid.UUID) (dao.Pattern, error) {
	p, err := ps.db.Patterns().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Pattern{}, serr.New("", serr.ErrNotFound)
		}
		return dao.Pattern{}, fmt.Errorf("get pattern: %w", err)
	}
	return p, nil
}

// GetAllPatterns retrieves every stored pattern.
func (ps *PatternServer) GetAllPatterns(ctx context.Context) ([]dao.Pattern, error) {
	all, err := ps.db.Patterns().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all patterns: %w", err)
	}
	return all, nil
}

// DeletePattern removes a stored pattern by ID and returns it. The returned
// error wraps serr.ErrNotFound if there is no such pattern.
func (ps *PatternServer) DeletePattern(ctx context.Context, id uuid.UUID) (dao.Pattern, error) {
	p, err := ps.db.Patterns().Delete(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Pattern{}, serr.New("", serr.ErrNotFound)
		}
		return dao.Pattern{}, fmt.Errorf("delete pattern: %w", err)
	}
	return p, nil
}

// Match evaluates the stored pattern with the given ID against a word, using
// the automaton compiled when the pattern was stored. The returned error
// wraps serr.ErrNotFound if there is no such pattern.
func (ps *PatternServer) Match(ctx context.Context, id uuid.UUID, word string) (bool, error) {
	p, err := ps.GetPattern(ctx, id)
	if err != nil {
		return false, err
	}

	return p.Compiled.Accept(word), nil
}

// MatchExpr compiles a one-off expression and evaluates it against a word.
// The returned error wraps serr.ErrBadArgument if the expression is not a
// valid regex.
func (ps *PatternServer) MatchExpr(expr, word string) (bool, error) {
	rx, err := relfa.New(expr)
	if err != nil {
		return false, serr.New(err.Error(), err, serr.ErrBadArgument)
	}
	return rx.Eval(word), nil
}
