// Package store persists resolved tables in DuckDB so downstream report
// steps can query them.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/sampletab/sampletab/internal/table"
)

// Store manages a DuckDB connection holding saved tables.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Save writes a table under the given name, replacing any previous version.
// Every column is stored as a nullable VARCHAR; null cells round-trip as
// SQL NULL.
func (s *Store) Save(name string, t *table.Table) error {
	columns := t.Columns()
	if len(columns) == 0 {
		return fmt.Errorf("table has no columns")
	}

	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = quoteIdent(c) + " VARCHAR"
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DROP TABLE IF EXISTS " + quoteIdent(name)); err != nil {
		return fmt.Errorf("drop previous table: %w", err)
	}
	if _, err := tx.Exec(fmt.Sprintf("CREATE TABLE %s (%s)",
		quoteIdent(name), strings.Join(defs, ", "))); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s VALUES (%s)",
		quoteIdent(name), placeholders))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(columns))
	for i := 0; i < t.NumRows(); i++ {
		row := t.Row(i)
		for j, c := range row {
			if c.Null {
				args[j] = nil
			} else {
				args[j] = c.Value
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// Load reads a previously saved table back into memory.
func (s *Store) Load(name string) (*table.Table, error) {
	rows, err := s.db.Query("SELECT * FROM " + quoteIdent(name))
	if err != nil {
		return nil, fmt.Errorf("query table %s: %w", name, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	t, err := table.New(columns...)
	if err != nil {
		return nil, err
	}

	values := make([]sql.NullString, len(columns))
	scan := make([]any, len(columns))
	for i := range values {
		scan[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scan...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		cells := make([]table.Cell, len(columns))
		for i, v := range values {
			if v.Valid {
				cells[i] = table.String(v.String)
			} else {
				cells[i] = table.Null
			}
		}
		if err := t.AppendRow(cells...); err != nil {
			return nil, err
		}
	}
	return t, rows.Err()
}

// Tables lists the saved table names.
func (s *Store) Tables() ([]string, error) {
	rows, err := s.db.Query("SELECT table_name FROM information_schema.tables WHERE table_schema = 'main' ORDER BY table_name")
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
