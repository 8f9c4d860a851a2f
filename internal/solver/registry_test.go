package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askchem/askchem/internal/domain/question"
)

func TestRegistryNamesAreUnique(t *testing.T) {
	reg := NewRegistry()
	seen := make(map[string]bool)
	for _, s := range reg.Ordered() {
		assert.False(t, seen[s.Name()], "duplicate solver name %s", s.Name())
		seen[s.Name()] = true
		assert.NotEmpty(t, s.Topic())
	}
	assert.GreaterOrEqual(t, reg.Len(), 40)
}

func TestRegistryOrderIsStable(t *testing.T) {
	first := NewRegistry().Ordered()
	for i := 0; i < 5; i++ {
		again := NewRegistry().Ordered()
		require.Len(t, again, len(first))
		for j := range first {
			assert.Equal(t, first[j].Name(), again[j].Name())
		}
	}
}

func TestOrderedReturnsACopy(t *testing.T) {
	reg := NewRegistry()
	got := reg.Ordered()
	got[0] = markovnikovSolver{}
	assert.NotEqual(t, got[0].Name(), reg.Ordered()[0].Name())
}

func TestLookup(t *testing.T) {
	reg := NewRegistry()
	require.NotNil(t, reg.Lookup("diazotization"))
	assert.Equal(t, "diazotization", reg.Lookup("diazotization").Name())
	assert.Nil(t, reg.Lookup("no_such_solver"))
}

// Priority stability: inputs crafted to satisfy two detectors must be won by
// the solver earlier in the table.
func TestPairwiseOverlapPriority(t *testing.T) {
	tests := []struct {
		name       string
		question   string
		both       [2]string // both detectors must match
		wantWinner string
	}{
		{
			name:       "sandmeyer beats diazotization",
			question:   "The diazonium salt from aniline and NaNO2/HCl is treated with CuCl",
			both:       [2]string{"sandmeyer", "diazotization"},
			wantWinner: "sandmeyer",
		},
		{
			name:       "azo coupling beats diazotization",
			question:   "Aniline treated with NaNO2/HCl gives a diazonium salt which couples with phenol",
			both:       [2]string{"azo_coupling", "diazotization"},
			wantWinner: "azo_coupling",
		},
		{
			name:       "acylation beats alkylation on the shared Friedel-Crafts keyword",
			question:   "In the Friedel-Crafts reaction of benzene with acetyl chloride and anhydrous AlCl3",
			both:       [2]string{"friedel_crafts_acylation", "friedel_crafts_alkylation"},
			wantWinner: "friedel_crafts_acylation",
		},
		{
			name:       "cannizzaro beats aldol when both keywords appear",
			question:   "Compare the Cannizzaro reaction with aldol condensation",
			both:       [2]string{"cannizzaro", "aldol"},
			wantWinner: "cannizzaro",
		},
		{
			name:       "halogenation beats the broad markovnikov fallback",
			question:   "Propene reacts with Br2 in CCl4 and separately with HBr",
			both:       [2]string{"alkene_halogenation", "markovnikov"},
			wantWinner: "alkene_halogenation",
		},
		{
			name:       "iodoform test beats the aldol transformation",
			question:   "Acetaldehyde is warmed with iodine and dilute NaOH",
			both:       [2]string{"iodoform", "aldol"},
			wantWinner: "iodoform",
		},
	}

	reg := NewRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nt := question.Normalize(tt.question)
			for _, name := range tt.both {
				s := reg.Lookup(name)
				require.NotNil(t, s)
				assert.True(t, s.Detect(nt), "detector %s must match %q", name, tt.question)
			}
			winner, res := firstMatch(reg, tt.question)
			require.NotNil(t, winner)
			require.NotNil(t, res)
			assert.Equal(t, tt.wantWinner, winner.Name())
		})
	}
}

// Broad fallbacks must sit below every named rule that overlaps them.
func TestBroadFallbacksAreLast(t *testing.T) {
	reg := NewRegistry()
	pos := make(map[string]int)
	for i, s := range reg.Ordered() {
		pos[s.Name()] = i
	}
	assert.Equal(t, reg.Len()-1, pos["markovnikov"])
	assert.Greater(t, pos["alkene_halogenation"], pos["hell_volhard_zelinsky"])
	assert.Greater(t, pos["diazotization"], pos["sandmeyer"])
	assert.Greater(t, pos["diazotization"], pos["azo_coupling"])
	assert.Greater(t, pos["aldol"], pos["cannizzaro"])
	assert.Greater(t, pos["aldol"], pos["iodoform"])
	assert.Greater(t, pos["friedel_crafts_alkylation"], pos["friedel_crafts_acylation"])
}
