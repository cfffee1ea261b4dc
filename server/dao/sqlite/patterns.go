package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tiberiu1204/regex-lfa/server/dao"
)

// PatternsDB is a SQLite-backed implementation of dao.PatternRepository.
type PatternsDB struct {
	db *sql.DB
}

func (repo *PatternsDB) init() error {
	_, err := repo.db.Exec(`CREATE TABLE IF NOT EXISTS patterns (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		expr TEXT NOT NULL,
		compiled TEXT NOT NULL,
		created INTEGER NOT NULL
	);`)
	return err
}

func (repo *PatternsDB) Close() error {
	return nil
}

func (repo *PatternsDB) Create(ctx context.Context, p dao.Pattern) (dao.Pattern, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Pattern{}, fmt.Errorf("could not generate ID: %w", err)
	}

	p.ID = newUUID
	p.Created = time.Now()

	_, err = repo.db.ExecContext(
		ctx,
		`INSERT INTO patterns (id, name, expr, compiled, created) VALUES (?, ?, ?, ?, ?)`,
		convertToDB_UUID(p.ID),
		p.Name,
		p.Expr,
		convertToDB_Automaton(p.Compiled),
		convertToDB_Time(p.Created),
	)
	if err != nil {
		return dao.Pattern{}, wrapDBError(err)
	}

	return p, nil
}

func (repo *PatternsDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Pattern, error) {
	row := repo.db.QueryRowContext(
		ctx,
		`SELECT id, name, expr, compiled, created FROM patterns WHERE id = ?`,
		convertToDB_UUID(id),
	)
	return scanPattern(row)
}

func (repo *PatternsDB) GetByName(ctx context.Context, name string) (dao.Pattern, error) {
	row := repo.db.QueryRowContext(
		ctx,
		`SELECT id, name, expr, compiled, created FROM patterns WHERE name = ?`,
		name,
	)
	return scanPattern(row)
}

func (repo *PatternsDB) GetAll(ctx context.Context) ([]dao.Pattern, error) {
	rows, err := repo.db.QueryContext(
		ctx,
		`SELECT id, name, expr, compiled, created FROM patterns ORDER BY name`,
	)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.Pattern
	for rows.Next() {
		p, err := scanPattern(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err)
	}

	return all, nil
}

func (repo *PatternsDB) Delete(ctx context.Context, id uuid.UUID) (dao.Pattern, error) {
	p, err := repo.GetByID(ctx, id)
	if err != nil {
		return dao.Pattern{}, err
	}

	_, err = repo.db.ExecContext(
		ctx,
		`DELETE FROM patterns WHERE id = ?`,
		convertToDB_UUID(id),
	)
	if err != nil {
		return dao.Pattern{}, wrapDBError(err)
	}

	return p, nil
}

// scanner is the subset of sql.Row/sql.Rows needed to scan one record.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPattern(row scanner) (dao.Pattern, error) {
	var p dao.Pattern
	var idStr string
	var compiledStr string
	var createdInt int64

	err := row.Scan(&idStr, &p.Name, &p.Expr, &compiledStr, &createdInt)
	if err != nil {
		return dao.Pattern{}, wrapDBError(err)
	}

	if err := convertFromDB_UUID(idStr, &p.ID); err != nil {
		return dao.Pattern{}, err
	}
	if err := convertFromDB_Automaton(compiledStr, &p.Compiled); err != nil {
		return dao.Pattern{}, err
	}
	if err := convertFromDB_Time(createdInt, &p.Created); err != nil {
		return dao.Pattern{}, err
	}

	return p, nil
}
