package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Run is one rendered fingerprint.
type Run struct {
	RunID          int64
	InputPath      string
	OutputPath     string
	ContentHash    string
	Tokenizer      string
	LineCount      int
	DistinctTokens int
	TotalTokens    int
	Dimension      int
	Step           float64
	CreatedAt      time.Time
}

// ErrRunNotFound is returned when a run id does not exist.
var ErrRunNotFound = errors.New("run not found")

// InsertRun stores a run together with its aggregated token counts in a
// single transaction and returns the run_id.
func (db *DB) InsertRun(run Run, counts map[string]int) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	result, err := tx.Exec(`
		INSERT INTO runs (input_path, output_path, content_hash, tokenizer, line_count,
			distinct_tokens, total_tokens, dimension, step)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.InputPath, run.OutputPath, NewNullString(run.ContentHash), run.Tokenizer, run.LineCount,
		run.DistinctTokens, run.TotalTokens, run.Dimension, run.Step)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO token_counts (run_id, token, count) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare token insert: %w", err)
	}
	defer stmt.Close()

	for token, count := range counts {
		if _, err := stmt.Exec(runID, token, count); err != nil {
			return 0, fmt.Errorf("failed to insert token %q: %w", token, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// GetRun returns the run with runID.
func (db *DB) GetRun(runID int64) (*Run, error) {
	var run Run
	var hash sql.NullString
	err := db.QueryRow(`
		SELECT run_id, input_path, output_path, content_hash, tokenizer, line_count,
			distinct_tokens, total_tokens, dimension, step, created_at
		FROM runs WHERE run_id = ?
	`, runID).Scan(&run.RunID, &run.InputPath, &run.OutputPath, &hash, &run.Tokenizer, &run.LineCount,
		&run.DistinctTokens, &run.TotalTokens, &run.Dimension, &run.Step, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	run.ContentHash = hash.String
	return &run, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	rows, err := db.Query(`
		SELECT run_id, input_path, output_path, content_hash, tokenizer, line_count,
			distinct_tokens, total_tokens, dimension, step, created_at
		FROM runs ORDER BY run_id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var hash sql.NullString
		if err := rows.Scan(&run.RunID, &run.InputPath, &run.OutputPath, &hash, &run.Tokenizer, &run.LineCount,
			&run.DistinctTokens, &run.TotalTokens, &run.Dimension, &run.Step, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.ContentHash = hash.String
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRunCounts returns the aggregated token counts stored for runID.
func (db *DB) GetRunCounts(runID int64) (map[string]int, error) {
	rows, err := db.Query(`SELECT token, count FROM token_counts WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get token counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var token string
		var count int
		if err := rows.Scan(&token, &count); err != nil {
			return nil, fmt.Errorf("failed to scan token count: %w", err)
		}
		counts[token] = count
	}
	return counts, rows.Err()
}

// NewNullString maps "" to NULL.
func NewNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
