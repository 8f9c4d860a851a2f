package mastery

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askchem/askchem/internal/domain/attempt"
	pkgerrors "github.com/askchem/askchem/pkg/errors"
)

type stubMasteryRepo struct {
	records   []string
	failTopic string
	rows      []*attempt.Mastery
}

func (r *stubMasteryRepo) Record(_ context.Context, studentID, topic string, status attempt.Status) error {
	if topic == r.failTopic {
		return pkgerrors.New(pkgerrors.ErrCodeMasteryStoreFail, "store failed")
	}
	r.records = append(r.records, studentID+"/"+topic+"/"+string(status))
	return nil
}

func (r *stubMasteryRepo) Get(context.Context, string, string) (*attempt.Mastery, error) {
	return nil, pkgerrors.NotFound("not implemented")
}

func (r *stubMasteryRepo) ListByStudent(context.Context, string) ([]*attempt.Mastery, error) {
	return r.rows, nil
}

type stubAttemptRepo struct {
	histogram []attempt.ErrorKindCount
}

func (r *stubAttemptRepo) Save(context.Context, *attempt.Attempt) error { return nil }

func (r *stubAttemptRepo) FindByID(context.Context, uuid.UUID) (*attempt.Attempt, error) {
	return nil, pkgerrors.NotFound("not implemented")
}

func (r *stubAttemptRepo) ListByStudent(context.Context, string, int, int) ([]*attempt.Attempt, error) {
	return nil, nil
}

func (r *stubAttemptRepo) ErrorKindHistogram(context.Context, string) ([]attempt.ErrorKindCount, error) {
	return r.histogram, nil
}

func TestRecordFansOutToEveryTopic(t *testing.T) {
	repo := &stubMasteryRepo{}
	svc := NewService(repo, &stubAttemptRepo{}, nil)

	err := svc.Record(context.Background(), "s1", []string{"amines", "arenes"}, attempt.StatusAnswered)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1/amines/answered", "s1/arenes/answered"}, repo.records)
}

func TestRecordSkipsEmptyInput(t *testing.T) {
	repo := &stubMasteryRepo{}
	svc := NewService(repo, &stubAttemptRepo{}, nil)

	require.NoError(t, svc.Record(context.Background(), "", []string{"amines"}, attempt.StatusAnswered))
	require.NoError(t, svc.Record(context.Background(), "s1", nil, attempt.StatusAnswered))
	require.NoError(t, svc.Record(context.Background(), "s1", []string{""}, attempt.StatusAnswered))
	assert.Empty(t, repo.records)
}

func TestRecordContinuesPastFailedTopic(t *testing.T) {
	repo := &stubMasteryRepo{failTopic: "amines"}
	svc := NewService(repo, &stubAttemptRepo{}, nil)

	err := svc.Record(context.Background(), "s1", []string{"amines", "arenes"}, attempt.StatusNoMatch)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeMasteryStoreFail))
	assert.Equal(t, []string{"s1/arenes/no_match"}, repo.records, "remaining topics still recorded")
}

func TestOverview(t *testing.T) {
	repo := &stubMasteryRepo{rows: []*attempt.Mastery{
		{StudentID: "s1", Topic: "alkenes", Attempts: 4, Answered: 1, Score: 0.25},
		{StudentID: "s1", Topic: "amines", Attempts: 3, Answered: 3, Score: 1},
	}}
	attempts := &stubAttemptRepo{histogram: []attempt.ErrorKindCount{
		{ErrorKind: "NO_MATCH", Count: 2},
	}}
	svc := NewService(repo, attempts, nil)

	got, err := svc.Overview(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", got.StudentID)
	require.Len(t, got.Topics, 2)
	assert.Equal(t, "alkenes", got.Topics[0].Topic)
	require.Len(t, got.ErrorKinds, 1)
	assert.Equal(t, int64(2), got.ErrorKinds[0].Count)
}

func TestOverviewRequiresStudentID(t *testing.T) {
	svc := NewService(&stubMasteryRepo{}, &stubAttemptRepo{}, nil)

	_, err := svc.Overview(context.Background(), "")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeValidation))
}

func TestOverviewEmptyStudentHasEmptySlices(t *testing.T) {
	svc := NewService(&stubMasteryRepo{}, &stubAttemptRepo{}, nil)

	got, err := svc.Overview(context.Background(), "s-new")
	require.NoError(t, err)
	assert.NotNil(t, got.Topics)
	assert.Empty(t, got.Topics)
	assert.NotNil(t, got.ErrorKinds)
}
