package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/HoangNamHai/pmquest/internal/content"
	"github.com/HoangNamHai/pmquest/internal/player"
)

// AttemptRecord is one persisted lesson attempt.
type AttemptRecord struct {
	ID           string
	LessonID     string
	StartedAt    time.Time
	FinishedAt   time.Time // zero for an abandoned attempt
	TotalScore   int
	MaxScore     int
	ScorePercent int
	Passed       bool
	XPEarned     int
}

// LessonStats aggregates a lesson's attempt history.
type LessonStats struct {
	LessonID    string
	Attempts    int
	Completed   int
	BestPercent int
	LastAttempt time.Time
	TotalXP     int
}

// AttemptRepo reads and writes lesson attempts.
type AttemptRepo struct {
	db *sql.DB
}

// Start inserts the attempt row as soon as the learner enters the lesson, so
// an abandoned run still shows the lesson as started.
func (r *AttemptRepo) Start(ctx context.Context, a *player.Attempt) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO attempts (id, lesson_id, started_at, max_score)
		 VALUES (?, ?, ?, ?)`,
		a.ID, a.Lesson.ID, a.StartedAt.UTC(), a.Lesson.TotalPoints,
	)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

// AppendAnswer records one submitted answer. The unique constraint mirrors
// the in-memory ledger's write-once rule.
func (r *AttemptRepo) AppendAnswer(ctx context.Context, attemptID string, e player.Entry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO answer_events (attempt_id, question_id, raw_answer, correct, points, answered_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		attemptID, e.QuestionID, e.RawAnswer, e.Correct, e.Points, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("append answer: %w", err)
	}
	return nil
}

// Complete finalizes the attempt row with the aggregated summary.
func (r *AttemptRepo) Complete(ctx context.Context, attemptID string, s player.Summary, finishedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE attempts
		 SET finished_at = ?, total_score = ?, score_percent = ?, passed = ?, xp_earned = ?
		 WHERE id = ?`,
		finishedAt.UTC(), s.TotalScore, s.ScorePercent, s.Passed, s.XPEarned, attemptID,
	)
	if err != nil {
		return fmt.Errorf("complete attempt: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("complete attempt: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("complete attempt: unknown attempt %s", attemptID)
	}
	return nil
}

// ForLesson returns the lesson's attempts, most recent first.
func (r *AttemptRepo) ForLesson(ctx context.Context, lessonID string) ([]AttemptRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, lesson_id, started_at, finished_at, total_score, max_score, score_percent, passed, xp_earned
		 FROM attempts WHERE lesson_id = ? ORDER BY started_at DESC`,
		lessonID,
	)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()
	return scanAttempts(rows)
}

// Stats aggregates the attempt history for one lesson.
func (r *AttemptRepo) Stats(ctx context.Context, lessonID string) (LessonStats, error) {
	stats := LessonStats{LessonID: lessonID}
	var last sql.NullTime
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN finished_at IS NOT NULL THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(CASE WHEN finished_at IS NOT NULL THEN score_percent END), 0),
		        COALESCE(SUM(xp_earned), 0),
		        MAX(started_at)
		 FROM attempts WHERE lesson_id = ?`,
		lessonID,
	).Scan(&stats.Attempts, &stats.Completed, &stats.BestPercent, &stats.TotalXP, &last)
	if err != nil {
		return LessonStats{}, fmt.Errorf("lesson stats: %w", err)
	}
	if last.Valid {
		stats.LastAttempt = last.Time
	}
	return stats, nil
}

// TotalXP sums the XP earned across every completed attempt.
func (r *AttemptRepo) TotalXP(ctx context.Context) (int, error) {
	var xp int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(xp_earned), 0) FROM attempts`,
	).Scan(&xp)
	if err != nil {
		return 0, fmt.Errorf("total xp: %w", err)
	}
	return xp, nil
}

// LessonProgress implements content.ProgressSource. A lesson counts as
// completed once any attempt passed, and as started once any attempt exists.
func (r *AttemptRepo) LessonProgress() (content.Progress, error) {
	p := content.Progress{
		Completed:   make(map[string]bool),
		Started:     make(map[string]bool),
		BestPercent: make(map[string]int),
	}
	rows, err := r.db.Query(
		`SELECT lesson_id,
		        COALESCE(MAX(passed), 0),
		        COALESCE(MAX(CASE WHEN finished_at IS NOT NULL THEN score_percent END), 0)
		 FROM attempts GROUP BY lesson_id`,
	)
	if err != nil {
		return content.Progress{}, fmt.Errorf("lesson progress: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var lessonID string
		var passed bool
		var best int
		if err := rows.Scan(&lessonID, &passed, &best); err != nil {
			return content.Progress{}, fmt.Errorf("scan progress: %w", err)
		}
		p.Started[lessonID] = true
		if passed {
			p.Completed[lessonID] = true
		}
		p.BestPercent[lessonID] = best
	}
	if err := rows.Err(); err != nil {
		return content.Progress{}, fmt.Errorf("lesson progress: %w", err)
	}
	return p, nil
}

// Reset deletes all attempt history. Answer events cascade.
func (r *AttemptRepo) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM attempts`); err != nil {
		return fmt.Errorf("reset attempts: %w", err)
	}
	return nil
}

func scanAttempts(rows *sql.Rows) ([]AttemptRecord, error) {
	var out []AttemptRecord
	for rows.Next() {
		var a AttemptRecord
		var finished sql.NullTime
		if err := rows.Scan(
			&a.ID, &a.LessonID, &a.StartedAt, &finished,
			&a.TotalScore, &a.MaxScore, &a.ScorePercent, &a.Passed, &a.XPEarned,
		); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		if finished.Valid {
			a.FinishedAt = finished.Time
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan attempts: %w", err)
	}
	return out, nil
}
