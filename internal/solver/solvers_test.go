package solver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askchem/askchem/internal/domain/answer"
	"github.com/askchem/askchem/internal/domain/question"
)

// firstMatch replicates the dispatch trial loop over the registry order.
func firstMatch(r *Registry, text string) (Solver, *answer.ReactionResult) {
	t := question.Normalize(text)
	for _, s := range r.Ordered() {
		if res := s.Solve(t); res != nil {
			return s, res
		}
	}
	return nil, nil
}

// One canonical exam question per catalog entry; every solver must win its
// own question through the full registry order.
var canonicalQuestions = []struct {
	solver   string
	question string
	product  string
}{
	{"sandmeyer", "The benzene diazonium salt is treated with Cu2Cl2/HCl", "chlorobenzene"},
	{"azo_coupling", "Benzenediazonium chloride reacts with phenol in mildly alkaline medium", "azo dye"},
	{"diazotization", "Aniline is treated with NaNO2/HCl at 0–5°C", "benzene diazonium chloride"},
	{"hofmann_bromamide", "Benzamide is heated with Br2 and KOH", "aniline"},
	{"gabriel_phthalimide", "Describe the Gabriel phthalimide synthesis", "primary aliphatic amine"},
	{"carbylamine", "Aniline is heated with chloroform and alcoholic KOH", "phenyl isocyanide"},
	{"hinsberg", "How does the Hinsberg test distinguish the three classes of amines?", "no reaction"},
	{"benzyne", "Chlorobenzene + NaNH2 in liquid NH3", "aniline"},
	{"etard", "Toluene is oxidized with chromyl chloride CrO2Cl2", "benzaldehyde"},
	{"gattermann_koch", "Benzene is treated with CO + HCl in presence of anhydrous AlCl3", "benzaldehyde"},
	{"reimer_tiemann", "Phenol is treated with CHCl3 and aqueous NaOH", "salicylaldehyde"},
	{"kolbe", "Sodium phenoxide is heated with CO2 under pressure", "salicylic acid"},
	{"friedel_crafts_acylation", "Benzene reacts with acetyl chloride in presence of anhydrous AlCl3", "acetophenone"},
	{"friedel_crafts_alkylation", "Benzene reacts with CH3Cl in presence of anhydrous AlCl3", "toluene"},
	{"nitration", "Benzene is heated with conc. HNO3 and conc. H2SO4", "nitrobenzene"},
	{"sulfonation", "Benzene is treated with fuming H2SO4", "benzenesulfonic acid"},
	{"lucas", "An alcohol is shaken with Lucas reagent", "turbidity"},
	{"iodoform", "Acetone is warmed with I2 and NaOH", "iodoform"},
	{"tollens", "A compound gives a silver mirror with Tollens' reagent", "silver mirror"},
	{"fehling", "Which compounds reduce Fehling's solution?", "cu2o"},
	{"cannizzaro", "Benzaldehyde is treated with concentrated NaOH", "benzyl alcohol"},
	{"baeyer_villiger", "Acetophenone is oxidized with a peracid", "phenyl acetate"},
	{"clemmensen", "Acetophenone is reduced with Zn-Hg and conc. HCl", "ethylbenzene"},
	{"wolff_kishner", "The ketone is heated with hydrazine and KOH in ethylene glycol", "hydrocarbon"},
	{"rosenmund", "Benzoyl chloride + H2 over Pd-BaSO4", "benzaldehyde"},
	{"stephen", "A nitrile is treated with SnCl2 and HCl followed by hydrolysis", "aldehyde"},
	{"kucherov", "Ethyne is hydrated with dilute H2SO4 and HgSO4", "acetaldehyde"},
	{"grignard", "CH3MgBr reacts with acetone followed by aqueous workup", "tertiary alcohol"},
	{"aldol", "Acetaldehyde is warmed with dilute NaOH", "3-hydroxybutanal"},
	{"hell_volhard_zelinsky", "Ethanoic acid reacts with Br2 in presence of red phosphorus", "2-bromoethanoic acid"},
	{"decarboxylation", "Sodium acetate is heated with soda lime", "methane"},
	{"esterification", "Ethanoic acid is heated with ethanol and conc. H2SO4", "ethyl acetate"},
	{"saponification", "Ethyl acetate is boiled with aqueous NaOH", "sodium acetate"},
	{"williamson", "Sodium ethoxide reacts with methyl iodide", "ethyl methyl ether"},
	{"finkelstein", "An alkyl chloride is heated with NaI in dry acetone", "alkyl iodide"},
	{"swarts", "CH3Br is heated with AgF", "fluoromethane"},
	{"wurtz", "Ethyl bromide is treated with sodium metal in dry ether", "n-butane"},
	{"ozonolysis", "But-2-ene undergoes ozonolysis followed by Zn/H2O", "acetaldehyde"},
	{"hydroboration", "Propene is treated with B2H6 followed by H2O2/OH-", "propan-1-ol"},
	{"lindlar_birch", "2-Butyne is reduced with Na in liquid ammonia", "trans-alkene"},
	{"alkene_halogenation", "Propene reacts with Br2 in CCl4", "1,2-dibromopropane"},
	{"markovnikov", "Alkene reacts with HBr", "2-bromopropane"},
}

func TestEverySolverWinsItsCanonicalQuestion(t *testing.T) {
	reg := NewRegistry()
	for _, tt := range canonicalQuestions {
		t.Run(tt.solver, func(t *testing.T) {
			s, res := firstMatch(reg, tt.question)
			require.NotNil(t, s, "no solver fired for %q", tt.question)
			assert.Equal(t, tt.solver, s.Name())
			require.NotNil(t, res)
			assert.Contains(t, strings.ToLower(res.Product), tt.product)
		})
	}
}

func TestDiazotizationScenario(t *testing.T) {
	s, res := firstMatch(NewRegistry(), "Aniline is treated with NaNO2/HCl at 0–5°C")
	require.NotNil(t, res)
	assert.Equal(t, "diazotization", s.Name())
	assert.Contains(t, strings.ToLower(res.Product), "benzene diazonium chloride")
	assert.False(t, res.Clarify)
}

func TestBenzyneScenario(t *testing.T) {
	_, res := firstMatch(NewRegistry(), "Chlorobenzene + NaNH2 in liquid NH3")
	require.NotNil(t, res)
	assert.Contains(t, strings.ToLower(res.Product), "aniline")
}

func TestMarkovnikovScenario(t *testing.T) {
	_, res := firstMatch(NewRegistry(), "Alkene reacts with HBr")
	require.NotNil(t, res)
	assert.Contains(t, res.Flags, "markovnikov")
	assert.InDelta(t, 0.98, res.Confidence, 1e-9)

	_, res = firstMatch(NewRegistry(), "Propene reacts with HBr in presence of benzoyl peroxide")
	require.NotNil(t, res)
	assert.Contains(t, res.Flags, "anti_markovnikov")
	assert.Contains(t, strings.ToLower(res.Product), "1-bromopropane")
}

// Short reagent cues ("hi", "hx") must match whole tokens: as raw substrings
// they fire inside "which", "this" and "higher" and turn a conceptual
// stability question into an addition product.
func TestMarkovnikovReagentCueIsTokenBounded(t *testing.T) {
	s := markovnikovSolver{}
	assert.False(t, s.Detect(question.Normalize("Which alkene is the most stable isomer of butene?")))
	assert.False(t, s.Detect(question.Normalize("Why does this alkene shift to the higher-boiling form?")))
	assert.True(t, s.Detect(question.Normalize("Propene reacts with HI")))
	assert.True(t, s.Detect(question.Normalize("Propene + HX")))

	winner, res := firstMatch(NewRegistry(), "Which alkene is the most stable isomer of butene?")
	assert.Nil(t, winner)
	assert.Nil(t, res)
}

// "o3" occurs inside HNO3, SO3, AgNO3 and KClO3; only the standalone reagent
// may select ozonolysis.
func TestOzonolysisIgnoresOtherOxyFormulas(t *testing.T) {
	s := ozonolysisSolver{}
	assert.False(t, s.Detect(question.Normalize("Propene is treated with dilute HNO3")))
	assert.False(t, s.Detect(question.Normalize("Butene is mixed with AgNO3 solution")))
	assert.True(t, s.Detect(question.Normalize("Propene + O3 followed by Zn/H2O")))

	winner, res := firstMatch(NewRegistry(), "Propene is treated with dilute HNO3")
	assert.Nil(t, winner)
	assert.Nil(t, res)
}

// Acetic acid and acetate esters carry the ch3co- spelling but fail the
// iodoform test; only true methyl ketone formulas count as the substrate cue.
func TestIodoformRejectsAcidAndEsterFormulas(t *testing.T) {
	s := iodoformSolver{}
	assert.False(t, s.Detect(question.Normalize("CH3COOH is treated with I2 and NaOH")))
	assert.False(t, s.Detect(question.Normalize("CH3COOC2H5 is treated with I2 and NaOH")))
	assert.True(t, s.Detect(question.Normalize("CH3COCH3 is warmed with I2 and NaOH")))
	assert.True(t, s.Detect(question.Normalize("CH3COC6H5 + I2/NaOH")))

	winner, res := firstMatch(NewRegistry(), "CH3COOH is treated with I2 and NaOH")
	assert.Nil(t, winner)
	assert.Nil(t, res)
}

func TestHofmannBromamideAmideCueIsTokenBounded(t *testing.T) {
	s := hofmannBromamideSolver{}
	assert.False(t, s.Detect(question.Normalize("Sodamide is added to Br2 and KOH")))
	assert.True(t, s.Detect(question.Normalize("An amide is heated with Br2 and KOH")))
	assert.True(t, s.Detect(question.Normalize("Acetamide + Br2/KOH")))
}

func TestBromineWithoutSolventAsksForClarification(t *testing.T) {
	_, res := firstMatch(NewRegistry(), "Propene + Br2")
	require.NotNil(t, res)
	assert.True(t, res.Clarify)
	assert.Contains(t, strings.ToLower(res.Product), "please specify the solvent")
}

func TestCannizzaroLiteralKeywordOverride(t *testing.T) {
	// The named-reaction keyword matches even without any reagent cue.
	s := cannizzaroSolver{}
	assert.True(t, s.Detect(question.Normalize("Explain the Cannizzaro reaction")))
	assert.False(t, s.Detect(question.Normalize("Benzaldehyde is treated with dilute NaOH")))
}

func TestBaeyerVilligerSubstrateSpecificBranch(t *testing.T) {
	s := baeyerVilligerSolver{}
	named := s.Solve(question.Normalize("Acetophenone is oxidized with mCPBA"))
	require.NotNil(t, named)
	assert.Contains(t, strings.ToLower(named.Product), "phenyl acetate")

	generic := s.Solve(question.Normalize("A ketone is treated with a peracid"))
	require.NotNil(t, generic)
	assert.Contains(t, strings.ToLower(generic.Product), "ester")
	assert.NotContains(t, strings.ToLower(generic.Product), "phenyl acetate")
}

func TestUnicodePhrasingsAreEquivalentTriggers(t *testing.T) {
	s := diazotizationSolver{}
	assert.True(t, s.Detect(question.Normalize("Aniline + NaNO₂/HCl at 0–5°C")))
	assert.True(t, s.Detect(question.Normalize("aniline + sodium nitrite and HCl")))
	assert.True(t, s.Detect(question.Normalize("C6H5NH2 is treated with HNO2")))
}

func TestSolveReturnsNilWhenNotApplicable(t *testing.T) {
	for _, s := range NewRegistry().Ordered() {
		assert.Nil(t, s.Solve(question.Normalize("what is the capital of France?")),
			"solver %s answered a non-chemistry question", s.Name())
		assert.Nil(t, s.Solve(question.Normalize("")),
			"solver %s answered the empty question", s.Name())
	}
}

func TestDetectTotalOverAdversarialInput(t *testing.T) {
	inputs := []string{
		"",
		" ",
		strings.Repeat("a", 10000),
		"\x00\xff\xfe",
		"₂₃₄→⟶—>",
		"<script>alert(1)</script>",
	}
	reg := NewRegistry()
	for _, in := range inputs {
		nt := question.Normalize(in)
		for _, s := range reg.Ordered() {
			assert.NotPanics(t, func() { s.Detect(nt) })
			assert.NotPanics(t, func() { s.Solve(nt) })
		}
	}
}
