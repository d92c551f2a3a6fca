// Package storage caches parsed RIS datasets in SQLite so repeated
// comparisons and searches skip reparsing the source files.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/refsift/refsift/internal/record"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite dataset store.
type DB struct {
	db *sql.DB
}

// DatasetInfo describes one stored dataset.
type DatasetInfo struct {
	Name        string `json:"name"`
	SourcePath  string `json:"source_path"`
	RecordCount int    `json:"record_count"`
	AddedAt     string `json:"added_at"`
}

// Open opens or creates the dataset store at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the store.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS datasets (
			name TEXT PRIMARY KEY,
			source_path TEXT NOT NULL,
			record_count INTEGER NOT NULL,
			added_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS records (
			dataset TEXT NOT NULL,
			seq INTEGER NOT NULL,
			ref_type TEXT,
			title TEXT,
			authors_json TEXT,
			pub_year TEXT,
			journal TEXT,
			doi TEXT,
			abstract TEXT,
			keywords_json TEXT,
			PRIMARY KEY (dataset, seq)
		);

		CREATE INDEX IF NOT EXISTS idx_records_doi ON records(doi);
	`
	_, err := db.Exec(schema)
	return err
}

// AddDataset stores a named dataset, replacing any previous dataset with the
// same name. Record order is preserved via the seq column.
func (d *DB) AddDataset(name, sourcePath string, recs []record.Record) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM records WHERE dataset = ?`, name); err != nil {
		return fmt.Errorf("clearing old records: %w", err)
	}
	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO datasets (name, source_path, record_count, added_at) VALUES (?, ?, ?, ?)`,
		name, sourcePath, len(recs), time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("inserting dataset: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO records (dataset, seq, ref_type, title, authors_json, pub_year, journal, doi, abstract, keywords_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range recs {
		authorsJSON, err := json.Marshal(rec.Authors)
		if err != nil {
			return fmt.Errorf("encoding authors: %w", err)
		}
		keywordsJSON, err := json.Marshal(rec.Keywords)
		if err != nil {
			return fmt.Errorf("encoding keywords: %w", err)
		}
		if _, err := stmt.Exec(
			name, i, rec.Type, rec.Title, string(authorsJSON),
			rec.Year, rec.Journal, rec.DOI, rec.Abstract, string(keywordsJSON),
		); err != nil {
			return fmt.Errorf("inserting record %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// LoadDataset returns the records of a stored dataset in original order.
func (d *DB) LoadDataset(name string) ([]record.Record, error) {
	var exists int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM datasets WHERE name = ?`, name).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking dataset: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("dataset %q not found in store", name)
	}

	rows, err := d.db.Query(`
		SELECT ref_type, title, authors_json, pub_year, journal, doi, abstract, keywords_json
		FROM records WHERE dataset = ? ORDER BY seq
	`, name)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var recs []record.Record
	for rows.Next() {
		var rec record.Record
		var authorsJSON, keywordsJSON string
		if err := rows.Scan(
			&rec.Type, &rec.Title, &authorsJSON, &rec.Year,
			&rec.Journal, &rec.DOI, &rec.Abstract, &keywordsJSON,
		); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		if err := json.Unmarshal([]byte(authorsJSON), &rec.Authors); err != nil {
			return nil, fmt.Errorf("decoding authors: %w", err)
		}
		if err := json.Unmarshal([]byte(keywordsJSON), &rec.Keywords); err != nil {
			return nil, fmt.Errorf("decoding keywords: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}
	return recs, nil
}

// ListDatasets returns all stored datasets ordered by name.
func (d *DB) ListDatasets() ([]DatasetInfo, error) {
	rows, err := d.db.Query(`SELECT name, source_path, record_count, added_at FROM datasets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying datasets: %w", err)
	}
	defer rows.Close()

	var infos []DatasetInfo
	for rows.Next() {
		var info DatasetInfo
		if err := rows.Scan(&info.Name, &info.SourcePath, &info.RecordCount, &info.AddedAt); err != nil {
			return nil, fmt.Errorf("scanning dataset: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading datasets: %w", err)
	}
	return infos, nil
}

// RemoveDataset deletes a stored dataset and its records.
func (d *DB) RemoveDataset(name string) error {
	res, err := d.db.Exec(`DELETE FROM datasets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting dataset: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("dataset %q not found in store", name)
	}
	if _, err := d.db.Exec(`DELETE FROM records WHERE dataset = ?`, name); err != nil {
		return fmt.Errorf("deleting records: %w", err)
	}
	return nil
}
