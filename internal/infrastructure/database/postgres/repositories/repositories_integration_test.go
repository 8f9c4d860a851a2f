package repositories

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/askchem/askchem/internal/domain/attempt"
	"github.com/askchem/askchem/internal/infrastructure/database/postgres"
	pkgerrors "github.com/askchem/askchem/pkg/errors"
)

// RepositoriesIntegrationSuite runs both repositories against a disposable
// postgres container. Enable with ASKCHEM_INTEGRATION=1.
type RepositoriesIntegrationSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	attempts  *AttemptRepository
	mastery   *MasteryRepository
}

func (s *RepositoriesIntegrationSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		tcpostgres.WithDatabase("askchem_test"),
		tcpostgres.WithUsername("askchem"),
		tcpostgres.WithPassword("askchem"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.Require().NoError(postgres.RunMigrations(connStr, "file://../../../../../migrations"))

	s.pool, err = pgxpool.New(ctx, connStr)
	s.Require().NoError(err)

	s.attempts = NewAttemptRepository(s.pool, nil)
	s.mastery = NewMasteryRepository(s.pool, nil)
}

func (s *RepositoriesIntegrationSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *RepositoriesIntegrationSuite) TestSaveAndFindAttempt() {
	ctx := context.Background()
	a := &attempt.Attempt{
		StudentID:    "student-1",
		Question:     "What happens when propene reacts with HBr?",
		QuestionType: "predict_product",
		SolverName:   "markovnikov",
		TopicTags:    []string{"alkenes"},
		ExplainTags:  []string{"markovnikov"},
		Status:       attempt.StatusAnswered,
		Mode:         attempt.ModeNEET,
		Subject:      "chemistry",
		Confidence:   0.98,
	}
	s.Require().NoError(s.attempts.Save(ctx, a))
	s.Require().NotEqual(uuid.Nil, a.ID)

	got, err := s.attempts.FindByID(ctx, a.ID)
	s.Require().NoError(err)
	s.Equal(a.Question, got.Question)
	s.Equal("markovnikov", got.SolverName)
	s.Equal([]string{"alkenes"}, got.TopicTags)
	s.Equal(attempt.StatusAnswered, got.Status)
	s.Equal(attempt.ModeNEET, got.Mode)
	s.InDelta(0.98, got.Confidence, 1e-9)
	s.False(got.CreatedAt.IsZero())
}

func (s *RepositoriesIntegrationSuite) TestFindByIDNotFound() {
	_, err := s.attempts.FindByID(context.Background(), uuid.New())
	s.Require().Error(err)
	s.True(pkgerrors.IsCode(err, pkgerrors.ErrCodeAttemptNotFound))
}

func (s *RepositoriesIntegrationSuite) TestListByStudentOrdersNewestFirst() {
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.attempts.Save(ctx, &attempt.Attempt{
			StudentID: "student-list",
			Question:  "q",
			Status:    attempt.StatusAnswered,
			Mode:      attempt.ModeBoard,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	got, err := s.attempts.ListByStudent(ctx, "student-list", 2, 0)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.True(got[0].CreatedAt.After(got[1].CreatedAt))
}

func (s *RepositoriesIntegrationSuite) TestErrorKindHistogram() {
	ctx := context.Background()
	kinds := []string{"NO_MATCH", "NO_MATCH", "OUT_OF_DOMAIN"}
	for _, k := range kinds {
		s.Require().NoError(s.attempts.Save(ctx, &attempt.Attempt{
			StudentID: "student-hist",
			Question:  "q",
			Status:    attempt.StatusNoMatch,
			ErrorKind: k,
			Mode:      attempt.ModeBoard,
		}))
	}

	counts, err := s.attempts.ErrorKindHistogram(ctx, "student-hist")
	s.Require().NoError(err)
	s.Require().Len(counts, 2)
	s.Equal("NO_MATCH", counts[0].ErrorKind)
	s.Equal(int64(2), counts[0].Count)
	s.Equal("OUT_OF_DOMAIN", counts[1].ErrorKind)
	s.Equal(int64(1), counts[1].Count)
}

func (s *RepositoriesIntegrationSuite) TestMasteryRecordAccumulates() {
	ctx := context.Background()
	student := "student-mastery"

	s.Require().NoError(s.mastery.Record(ctx, student, "amines", attempt.StatusAnswered))
	s.Require().NoError(s.mastery.Record(ctx, student, "amines", attempt.StatusAnswered))
	s.Require().NoError(s.mastery.Record(ctx, student, "amines", attempt.StatusClarification))
	s.Require().NoError(s.mastery.Record(ctx, student, "alkenes", attempt.StatusNoMatch))

	m, err := s.mastery.Get(ctx, student, "amines")
	s.Require().NoError(err)
	s.Equal(int64(3), m.Attempts)
	s.Equal(int64(2), m.Answered)
	s.Equal(int64(1), m.Clarifications)
	s.InDelta(2.0/3.0, m.Score, 1e-9)

	// Weakest topic first.
	all, err := s.mastery.ListByStudent(ctx, student)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("alkenes", all[0].Topic)
}

func (s *RepositoriesIntegrationSuite) TestMasteryGetUnknownStudent() {
	_, err := s.mastery.Get(context.Background(), "nobody", "amines")
	s.Require().Error(err)
	s.True(pkgerrors.IsCode(err, pkgerrors.ErrCodeStudentNotFound))
}

func (s *RepositoriesIntegrationSuite) TestMasteryRecordValidation() {
	err := s.mastery.Record(context.Background(), "", "amines", attempt.StatusAnswered)
	s.Require().Error(err)
	s.True(pkgerrors.IsCode(err, pkgerrors.ErrCodeValidation))
}

func TestRepositoriesIntegration(t *testing.T) {
	if os.Getenv("ASKCHEM_INTEGRATION") != "1" {
		t.Skip("set ASKCHEM_INTEGRATION=1 to run container-backed repository tests")
	}
	suite.Run(t, new(RepositoriesIntegrationSuite))
}

func TestBtoi(t *testing.T) {
	assert.Equal(t, 1, btoi(true))
	assert.Equal(t, 0, btoi(false))
}
