// Package storage maintains an ephemeral SQLite index over written result
// files, so match records can be queried during manual review. The JSON
// result files remain the durable output; the database is rebuildable at
// any time.
package storage

import (
	"database/sql"
	"fmt"

	"wikinames/internal/result"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// Open opens or creates the match index at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			article TEXT NOT NULL,
			revision_id INTEGER NOT NULL,
			pipeline TEXT NOT NULL,
			text TEXT NOT NULL,
			start_offset INTEGER NOT NULL,
			end_offset INTEGER NOT NULL,
			classification TEXT NOT NULL,
			source_field TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_matches_text ON matches(text);
		CREATE INDEX IF NOT EXISTS idx_matches_class ON matches(classification);
	`
	_, err := db.Exec(schema)
	return err
}

// Rebuild clears the index and reloads it from result documents. Returns
// the number of match rows inserted.
func (d *DB) Rebuild(docs []*result.Document) (int, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM matches"); err != nil {
		return 0, fmt.Errorf("clearing matches table: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO matches (
			article, revision_id, pipeline,
			text, start_offset, end_offset,
			classification, source_field
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	count := 0
	for _, doc := range docs {
		for _, m := range doc.Matches {
			if _, err := stmt.Exec(
				doc.Article, doc.RevisionID, doc.Pipeline,
				m.Text, m.Start, m.End,
				m.Classification, m.SourceField,
			); err != nil {
				return 0, fmt.Errorf("inserting match: %w", err)
			}
			count++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	return count, nil
}

// Row is one indexed match record.
type Row struct {
	Article        string `json:"article"`
	RevisionID     uint64 `json:"revision_id"`
	Pipeline       string `json:"pipeline"`
	Text           string `json:"text"`
	Start          int    `json:"start"`
	End            int    `json:"end"`
	Classification string `json:"classification"`
	SourceField    string `json:"source_field,omitempty"`
}

// Query returns match rows filtered by name substring and/or
// classification; empty filters match everything. Ordered by article,
// revision, then start offset for stable review output.
func (d *DB) Query(nameFilter, classification string) ([]Row, error) {
	query := `
		SELECT article, revision_id, pipeline, text,
			start_offset, end_offset, classification,
			COALESCE(source_field, '')
		FROM matches WHERE 1=1`
	var args []any
	if nameFilter != "" {
		query += " AND text LIKE ?"
		args = append(args, "%"+nameFilter+"%")
	}
	if classification != "" {
		query += " AND classification = ?"
		args = append(args, classification)
	}
	query += " ORDER BY article, revision_id, start_offset"

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying matches: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(
			&r.Article, &r.RevisionID, &r.Pipeline, &r.Text,
			&r.Start, &r.End, &r.Classification, &r.SourceField,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
