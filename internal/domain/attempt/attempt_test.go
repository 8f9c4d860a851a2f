package attempt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/askchem/askchem/pkg/errors"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ExamMode
		wantErr bool
	}{
		{"", ModeBoard, false},
		{"BOARD", ModeBoard, false},
		{"NEET", ModeNEET, false},
		{"JEE", ModeJEE, false},
		{"neet", "", true},
		{"IIT", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeInvalidExamMode))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMasteryApply(t *testing.T) {
	var m Mastery

	m.Apply(StatusAnswered)
	m.Apply(StatusAnswered)
	m.Apply(StatusClarification)
	m.Apply(StatusNoMatch)

	assert.Equal(t, int64(4), m.Attempts)
	assert.Equal(t, int64(2), m.Answered)
	assert.Equal(t, int64(1), m.Clarifications)
	assert.Equal(t, int64(1), m.NoMatches)
	assert.InDelta(t, 0.5, m.Score, 1e-9)
}

func TestMasteryApplyOutOfDomainCountsAttemptOnly(t *testing.T) {
	var m Mastery
	m.Apply(StatusOutOfDomain)

	assert.Equal(t, int64(1), m.Attempts)
	assert.Zero(t, m.Answered)
	assert.Zero(t, m.Score)
}
