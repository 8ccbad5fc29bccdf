// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runstore persists completed pipeline runs in SQLite. The pipeline
// core never touches it; the CLI saves the returned run aggregate and reads
// past runs back for listing and display.
package runstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hassanmzia/AI-Research-Agent/pkg/types"
)

const defaultDBPath = "runs/research.db"

// Store manages the run database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the SQLite database at cfg.Path, creating the
// schema if needed.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = defaultDBPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			objective TEXT NOT NULL,
			phase TEXT NOT NULL,
			phases_completed TEXT,
			plan TEXT,
			report TEXT,
			statistics TEXT,
			errors TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS papers (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			id TEXT NOT NULL,
			title TEXT,
			abstract TEXT,
			authors TEXT,
			categories TEXT,
			published TEXT,
			source_url TEXT,
			source TEXT,
			PRIMARY KEY (run_id, id)
		)`,
		`CREATE TABLE IF NOT EXISTS evaluations (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			paper_id TEXT NOT NULL,
			score REAL NOT NULL,
			classification TEXT NOT NULL,
			payload TEXT,
			PRIMARY KEY (run_id, paper_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save writes one run and its papers and evaluations in a single
// transaction. Saving the same run ID again replaces the previous record.
func (s *Store) Save(ctx context.Context, run *types.PipelineRun) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	phasesJSON, _ := json.Marshal(run.PhasesCompleted)
	planJSON, _ := json.Marshal(run.Plan)
	statsJSON, _ := json.Marshal(run.Stats)
	errorsJSON, _ := json.Marshal(run.Errors)

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, objective, phase, phases_completed, plan, report, statistics, errors, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			objective=excluded.objective, phase=excluded.phase,
			phases_completed=excluded.phases_completed, plan=excluded.plan,
			report=excluded.report, statistics=excluded.statistics,
			errors=excluded.errors`,
		run.ID, run.Objective, string(run.Phase), string(phasesJSON),
		string(planJSON), run.Report, string(statsJSON), string(errorsJSON),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting run: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM papers WHERE run_id = ?`, run.ID); err != nil {
		return fmt.Errorf("clearing papers: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM evaluations WHERE run_id = ?`, run.ID); err != nil {
		return fmt.Errorf("clearing evaluations: %w", err)
	}

	paperStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO papers (run_id, id, title, abstract, authors, categories, published, source_url, source)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing paper insert: %w", err)
	}
	defer paperStmt.Close()

	for _, p := range run.Discovered {
		authorsJSON, _ := json.Marshal(p.Authors)
		categoriesJSON, _ := json.Marshal(p.Categories)
		published := ""
		if !p.Published.IsZero() {
			published = p.Published.Format(time.RFC3339)
		}
		if _, err := paperStmt.ExecContext(ctx,
			run.ID, p.ID, p.Title, p.Abstract, string(authorsJSON),
			string(categoriesJSON), published, p.SourceURL, p.Source,
		); err != nil {
			return fmt.Errorf("inserting paper %s: %w", p.ID, err)
		}
	}

	evalStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO evaluations (run_id, paper_id, score, classification, payload)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing evaluation insert: %w", err)
	}
	defer evalStmt.Close()

	for _, ev := range run.Evaluations {
		payloadJSON, _ := json.Marshal(ev)
		if _, err := evalStmt.ExecContext(ctx,
			run.ID, ev.PaperID, ev.Score, string(ev.Classification), string(payloadJSON),
		); err != nil {
			return fmt.Errorf("inserting evaluation %s: %w", ev.PaperID, err)
		}
	}

	return tx.Commit()
}

// RunSummary is one row of the run listing.
type RunSummary struct {
	ID         string
	Objective  string
	Phase      string
	PaperCount int
	CreatedAt  time.Time
}

// List returns run summaries, most recent first.
func (s *Store) List(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.objective, r.phase, r.created_at,
			(SELECT COUNT(*) FROM papers p WHERE p.run_id = r.id)
		 FROM runs r ORDER BY r.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var rs RunSummary
		var createdAt string
		if err := rows.Scan(&rs.ID, &rs.Objective, &rs.Phase, &createdAt, &rs.PaperCount); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, createdAt); parseErr == nil {
			rs.CreatedAt = t
		}
		summaries = append(summaries, rs)
	}
	return summaries, rows.Err()
}

// Get loads one run aggregate by ID.
func (s *Store) Get(ctx context.Context, id string) (*types.PipelineRun, error) {
	run := &types.PipelineRun{ID: id}

	var phase, phasesJSON, planJSON, statsJSON, errorsJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT objective, phase, phases_completed, plan, report, statistics, errors
		 FROM runs WHERE id = ?`, id,
	).Scan(&run.Objective, &phase, &phasesJSON, &planJSON, &run.Report, &statsJSON, &errorsJSON)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying run: %w", err)
	}

	run.Phase = types.Phase(phase)
	json.Unmarshal([]byte(phasesJSON), &run.PhasesCompleted)
	json.Unmarshal([]byte(planJSON), &run.Plan)
	json.Unmarshal([]byte(statsJSON), &run.Stats)
	json.Unmarshal([]byte(errorsJSON), &run.Errors)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, abstract, authors, categories, published, source_url, source
		 FROM papers WHERE run_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("querying papers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p types.CandidatePaper
		var authorsJSON, categoriesJSON, published string
		if err := rows.Scan(&p.ID, &p.Title, &p.Abstract, &authorsJSON,
			&categoriesJSON, &published, &p.SourceURL, &p.Source); err != nil {
			return nil, fmt.Errorf("scanning paper row: %w", err)
		}
		json.Unmarshal([]byte(authorsJSON), &p.Authors)
		json.Unmarshal([]byte(categoriesJSON), &p.Categories)
		if t, parseErr := time.Parse(time.RFC3339, published); parseErr == nil {
			p.Published = t
		}
		run.Discovered = append(run.Discovered, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	evalRows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM evaluations WHERE run_id = ? ORDER BY score DESC`, id)
	if err != nil {
		return nil, fmt.Errorf("querying evaluations: %w", err)
	}
	defer evalRows.Close()

	for evalRows.Next() {
		var payload string
		if err := evalRows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning evaluation row: %w", err)
		}
		var ev types.EvaluationResult
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			continue
		}
		run.Evaluations = append(run.Evaluations, ev)
	}
	return run, evalRows.Err()
}
