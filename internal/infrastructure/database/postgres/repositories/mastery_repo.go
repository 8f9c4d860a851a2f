package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/askchem/askchem/internal/domain/attempt"
	"github.com/askchem/askchem/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/askchem/askchem/pkg/errors"
)

// MasteryRepository is the postgres implementation of
// attempt.MasteryRepository. One row per (student, topic); outcomes are
// folded in atomically with an upsert so concurrent attempts never lose
// counts.
type MasteryRepository struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

func NewMasteryRepository(pool *pgxpool.Pool, logger logging.Logger) *MasteryRepository {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &MasteryRepository{pool: pool, logger: logger.Named("repo.mastery")}
}

func (r *MasteryRepository) Record(ctx context.Context, studentID, topic string, status attempt.Status) error {
	if studentID == "" || topic == "" {
		return pkgerrors.New(pkgerrors.ErrCodeValidation, "student id and topic are required")
	}

	answered := btoi(status == attempt.StatusAnswered)
	clarified := btoi(status == attempt.StatusClarification)
	noMatch := btoi(status == attempt.StatusNoMatch)

	_, err := r.pool.Exec(ctx, `
		INSERT INTO mastery (student_id, topic, attempts, answered, clarifications, no_matches, score, updated_at)
		VALUES ($1, $2, 1, $3, $4, $5, $3, now())
		ON CONFLICT (student_id, topic) DO UPDATE SET
			attempts       = mastery.attempts + 1,
			answered       = mastery.answered + $3,
			clarifications = mastery.clarifications + $4,
			no_matches     = mastery.no_matches + $5,
			score          = (mastery.answered + $3)::float8 / (mastery.attempts + 1),
			updated_at     = now()`,
		studentID, topic, answered, clarified, noMatch,
	)
	if err != nil {
		r.logger.Error("failed to record mastery",
			logging.String("student_id", studentID),
			logging.String("topic", topic),
			logging.Err(err))
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeMasteryStoreFail, "failed to record mastery")
	}
	return nil
}

const masteryColumns = `student_id, topic, attempts, answered, clarifications,
	no_matches, score, updated_at`

func (r *MasteryRepository) Get(ctx context.Context, studentID, topic string) (*attempt.Mastery, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+masteryColumns+`
		FROM mastery WHERE student_id = $1 AND topic = $2`, studentID, topic)

	m, err := scanMastery(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, pkgerrors.Newf(pkgerrors.ErrCodeStudentNotFound, "no mastery for student %q topic %q", studentID, topic)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeDatabaseError, "failed to query mastery")
	}
	return m, nil
}

func (r *MasteryRepository) ListByStudent(ctx context.Context, studentID string) ([]*attempt.Mastery, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+masteryColumns+`
		FROM mastery
		WHERE student_id = $1
		ORDER BY score ASC, topic`, studentID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeDatabaseError, "failed to list mastery")
	}
	defer rows.Close()

	var result []*attempt.Mastery
	for rows.Next() {
		m, err := scanMastery(rows)
		if err != nil {
			return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeDatabaseError, "failed to scan mastery")
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeDatabaseError, "failed to iterate mastery")
	}
	return result, nil
}

func scanMastery(row pgx.Row) (*attempt.Mastery, error) {
	var m attempt.Mastery
	err := row.Scan(&m.StudentID, &m.Topic, &m.Attempts, &m.Answered,
		&m.Clarifications, &m.NoMatches, &m.Score, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
