package store

import (
	"context"
	"time"

	"codejudge/internal/feedback"
	"codejudge/internal/scoring"
)

// Run is one recorded grading of a submission.
type Run struct {
	ID           string
	ProblemID    string
	Framework    string
	Difficulty   string
	Language     string
	Verdict      scoring.Verdict
	Score        float64
	Tier         string
	ParserUsed   string
	ParseSuccess bool
	Attempt      int
	Feedback     []feedback.Item
	Breakdown    scoring.Breakdown
	Duration     time.Duration
	CreatedAt    time.Time
}

// RunStore persists grading history.
type RunStore interface {
	// SaveRun records a run. The run's Attempt is assigned from the
	// count of prior runs for the same problem.
	SaveRun(ctx context.Context, run *Run) error

	// GetRun retrieves a run by its ID.
	GetRun(ctx context.Context, id string) (*Run, error)

	// ListRuns returns the most recent runs for a problem, newest first.
	// An empty problemID lists across all problems.
	ListRuns(ctx context.Context, problemID string, limit int) ([]*Run, error)

	// CountAttempts returns how many runs exist for a problem.
	CountAttempts(ctx context.Context, problemID string) (int, error)

	Close() error
}
