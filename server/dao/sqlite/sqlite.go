// Package sqlite provides an implementation of the pattern server's data
// store backed by a SQLite database file.
package sqlite

import (
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
	"modernc.org/sqlite"

	"github.com/tiberiu1204/regex-lfa/automaton"
	"github.com/tiberiu1204/regex-lfa/server/dao"
	"github.com/tiberiu1204/regex-lfa/server/serr"
)

type store struct {
	dbFilename string

	db *sql.DB

	patterns *PatternsDB
}

// NewDatastore opens (creating if needed) the pattern database in the given
// storage directory and returns a Store backed by it.
func NewDatastore(storageDir string) (dao.Store, error) {
	st := &store{
		dbFilename: "patterns.db",
	}

	fileName := filepath.Join(storageDir, st.dbFilename)

	var err error
	st.db, err = sql.Open("sqlite", fileName)
	if err != nil {
		return nil, wrapDBError(err)
	}

	st.patterns = &PatternsDB{db: st.db}
	if err := st.patterns.init(); err != nil {
		return nil, wrapDBError(err)
	}

	return st, nil
}

func (s *store) Patterns() dao.PatternRepository {
	return s.patterns
}

func (s *store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("%s: %w", s.dbFilename, err)
	}
	return nil
}

// wrapDBError maps driver-level errors onto the dao error values callers
// check for.
func wrapDBError(err error) error {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		primaryCode := sqliteErr.Code() & 0xff
		if primaryCode == 19 {
			// SQLITE_CONSTRAINT
			return dao.ErrConstraintViolation
		}
		return serr.New(fmt.Sprintf("DB error %d", sqliteErr.Code()), err, serr.ErrDB)
	} else if errors.Is(err, sql.ErrNoRows) {
		return dao.ErrNotFound
	}
	return err
}

// convertToDB_UUID converts a uuid.UUID to storage DB format.
func convertToDB_UUID(u uuid.UUID) string {
	return u.String()
}

// convertFromDB_UUID converts storage DB format value to a uuid.UUID and
// stores it at the address pointed to by target. If there is a problem with
// the decoding, the returned error will be of type serr.Error, and will wrap
// dao.ErrDecodingFailure. If this function returns a non-nil error, target
// will not have been modified.
func convertFromDB_UUID(s string, target *uuid.UUID) error {
	u, err := uuid.Parse(s)
	if err != nil {
		return serr.New("", err, dao.ErrDecodingFailure)
	}
	*target = u
	return nil
}

// convertToDB_Time converts a time.Time to storage DB format.
func convertToDB_Time(t time.Time) int64 {
	return t.Unix()
}

// convertFromDB_Time converts storage DB format value to a time.Time and
// stores it at the address pointed to by target.
func convertFromDB_Time(i int64, target *time.Time) error {
	*target = time.Unix(i, 0)
	return nil
}

// convertToDB_Automaton converts a compiled automaton to storage DB format:
// the rezi-encoded bytes, further encoded as base64 so they survive TEXT
// column storage.
func convertToDB_Automaton(a automaton.Automaton) string {
	data := rezi.EncBinary(a)
	return base64.StdEncoding.EncodeToString(data)
}

// convertFromDB_Automaton converts a storage DB format string to an actual
// automaton and stores it at the address pointed to by target. If there is a
// problem with the decoding, the returned error will be of type serr.Error,
// and will wrap dao.ErrDecodingFailure. If this function returns a non-nil
// error, target will not have been modified.
func convertFromDB_Automaton(s string, target *automaton.Automaton) error {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return serr.New("", err, dao.ErrDecodingFailure)
	}

	var a automaton.Automaton
	n, err := rezi.DecBinary(data, &a)
	if err != nil {
		return serr.New("REZI decode", err, dao.ErrDecodingFailure)
	}
	if n != len(data) {
		return serr.New(fmt.Sprintf("REZI decoded byte count mismatch; only consumed %d/%d bytes", n, len(data)), dao.ErrDecodingFailure)
	}

	*target = a
	return nil
}
