package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"codejudge/internal/feedback"
	"codejudge/internal/scoring"
)

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			problem_id TEXT,
			framework TEXT,
			difficulty TEXT,
			language TEXT,
			verdict TEXT,
			score REAL,
			tier TEXT,
			parser_used TEXT,
			parse_success INTEGER,
			attempt INTEGER,
			feedback JSON,
			breakdown JSON,
			duration_ms INTEGER,
			created_at TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_problem ON runs(problem_id, created_at);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	if run.Attempt == 0 {
		prior, err := s.CountAttempts(ctx, run.ProblemID)
		if err != nil {
			return err
		}
		run.Attempt = prior + 1
	}

	fb, _ := json.Marshal(run.Feedback)
	bd, _ := json.Marshal(run.Breakdown)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, problem_id, framework, difficulty, language, verdict, score, tier, parser_used, parse_success, attempt, feedback, breakdown, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.ProblemID, run.Framework, run.Difficulty, run.Language, string(run.Verdict), run.Score,
		run.Tier, run.ParserUsed, run.ParseSuccess, run.Attempt, fb, bd, run.Duration.Milliseconds(), run.CreatedAt)

	return err
}

const runColumns = "id, problem_id, framework, difficulty, language, verdict, score, tier, parser_used, parse_success, attempt, feedback, breakdown, duration_ms, created_at"

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM runs WHERE id = ?", id)
	return scanRun(row)
}

func (s *SQLiteStore) ListRuns(ctx context.Context, problemID string, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}

	query := "SELECT " + runColumns + " FROM runs"
	args := []any{}
	if problemID != "" {
		query += " WHERE problem_id = ?"
		args = append(args, problemID)
	}
	query += " ORDER BY created_at DESC, attempt DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *SQLiteStore) CountAttempts(ctx context.Context, problemID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs WHERE problem_id = ?", problemID).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var (
		run        Run
		verdict    string
		fb, bd     []byte
		durationMS int64
	)
	if err := row.Scan(&run.ID, &run.ProblemID, &run.Framework, &run.Difficulty, &run.Language,
		&verdict, &run.Score, &run.Tier, &run.ParserUsed, &run.ParseSuccess, &run.Attempt,
		&fb, &bd, &durationMS, &run.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	run.Verdict = scoring.Verdict(verdict)
	run.Duration = time.Duration(durationMS) * time.Millisecond
	if len(fb) > 0 {
		var items []feedback.Item
		if err := json.Unmarshal(fb, &items); err == nil {
			run.Feedback = items
		}
	}
	if len(bd) > 0 {
		_ = json.Unmarshal(bd, &run.Breakdown)
	}
	return &run, nil
}
