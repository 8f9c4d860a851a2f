package question

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyType(t *testing.T) {
	tests := []struct {
		in   string
		want QuestionType
	}{
		{"Arrange the following in increasing order of acidity", TypeOrderRanking},
		{"What is the IUPAC name of CH3CHO?", TypeIUPAC},
		{"How will you distinguish between ethanol and phenol?", TypeTestIdentification},
		{"Explain the mechanism of SN2 substitution", TypeMechanism},
		{"Why is aniline a weaker base than methylamine?", TypeConcept},
		{"Propene reacts with HBr", TypeReaction},
		{"CH4 → CH3Cl", TypeReaction},
		{"", TypeUnknown},
		{"random words only", TypeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyType(Normalize(tt.in)))
		})
	}
}

func TestClassifyOrderIsFirstMatchWins(t *testing.T) {
	// Contains both ranking and reaction cues; ranking rules sit earlier.
	n := Normalize("Arrange the products of the reaction in increasing order")
	assert.Equal(t, TypeOrderRanking, ClassifyType(n))
}

func TestClassifyIsDeterministic(t *testing.T) {
	n := Normalize("Explain why phenol gives a violet colour with FeCl3")
	first := ClassifyType(n)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, ClassifyType(n))
	}
}
