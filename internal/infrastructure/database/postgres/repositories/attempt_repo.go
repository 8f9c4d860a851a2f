// Package repositories contains the pgx implementations of the attempt and
// mastery repositories.
package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/askchem/askchem/internal/domain/attempt"
	"github.com/askchem/askchem/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/askchem/askchem/pkg/errors"
)

// AttemptRepository is the postgres implementation of attempt.Repository.
type AttemptRepository struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

func NewAttemptRepository(pool *pgxpool.Pool, logger logging.Logger) *AttemptRepository {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &AttemptRepository{pool: pool, logger: logger.Named("repo.attempt")}
}

const attemptColumns = `id, student_id, question, question_type, solver_name,
	topic_tags, explain_tags, status, error_kind, exam_mode, subject,
	confidence, created_at`

func (r *AttemptRepository) Save(ctx context.Context, a *attempt.Attempt) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO attempts (`+attemptColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		a.ID, a.StudentID, a.Question, a.QuestionType, a.SolverName,
		a.TopicTags, a.ExplainTags, string(a.Status), a.ErrorKind,
		string(a.Mode), a.Subject, a.Confidence, a.CreatedAt,
	)
	if err != nil {
		r.logger.Error("failed to insert attempt",
			logging.String("attempt_id", a.ID.String()), logging.Err(err))
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeDatabaseError, "failed to insert attempt")
	}
	return nil
}

func (r *AttemptRepository) FindByID(ctx context.Context, id uuid.UUID) (*attempt.Attempt, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+attemptColumns+`
		FROM attempts WHERE id = $1`, id)

	a, err := scanAttempt(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, pkgerrors.Newf(pkgerrors.ErrCodeAttemptNotFound, "attempt %s not found", id)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeDatabaseError, "failed to query attempt")
	}
	return a, nil
}

func (r *AttemptRepository) ListByStudent(ctx context.Context, studentID string, limit, offset int) ([]*attempt.Attempt, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+attemptColumns+`
		FROM attempts
		WHERE student_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, studentID, limit, offset)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeDatabaseError, "failed to list attempts")
	}
	defer rows.Close()

	var attempts []*attempt.Attempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeDatabaseError, "failed to scan attempt")
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeDatabaseError, "failed to iterate attempts")
	}
	return attempts, nil
}

// ErrorKindHistogram groups a student's non-empty error kinds by frequency,
// most common first.
func (r *AttemptRepository) ErrorKindHistogram(ctx context.Context, studentID string) ([]attempt.ErrorKindCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT error_kind, COUNT(*) AS n
		FROM attempts
		WHERE student_id = $1 AND error_kind <> ''
		GROUP BY error_kind
		ORDER BY n DESC, error_kind`, studentID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeDatabaseError, "failed to query error histogram")
	}
	defer rows.Close()

	var counts []attempt.ErrorKindCount
	for rows.Next() {
		var c attempt.ErrorKindCount
		if err := rows.Scan(&c.ErrorKind, &c.Count); err != nil {
			return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeDatabaseError, "failed to scan error histogram")
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeDatabaseError, "failed to iterate error histogram")
	}
	return counts, nil
}

func scanAttempt(row pgx.Row) (*attempt.Attempt, error) {
	var (
		a      attempt.Attempt
		status string
		mode   string
	)
	err := row.Scan(&a.ID, &a.StudentID, &a.Question, &a.QuestionType,
		&a.SolverName, &a.TopicTags, &a.ExplainTags, &status, &a.ErrorKind,
		&mode, &a.Subject, &a.Confidence, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	a.Status = attempt.Status(status)
	a.Mode = attempt.ExamMode(mode)
	return &a, nil
}
