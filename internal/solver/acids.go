package solver

import (
	"github.com/askchem/askchem/internal/domain/answer"
	"github.com/askchem/askchem/internal/domain/question"
)

// Carboxylic-acid chapter solvers.

type hvzSolver struct{}

func (hvzSolver) Name() string  { return "hell_volhard_zelinsky" }
func (hvzSolver) Topic() string { return TopicAcids }

func (hvzSolver) Detect(t question.NormalizedText) bool {
	if t.ContainsAny("hell-volhard-zelinsky", "hell volhard zelinsky", "hvz") {
		return true
	}
	return t.ContainsAny("carboxylic acid", "acetic acid", "ethanoic acid", "propanoic acid") &&
		t.ContainsAny("red phosphorus", "red p", "p/br2", "phosphorus") &&
		t.ContainsAny("br2", "cl2", "bromine", "chlorine")
}

func (s hvzSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	product := "The alpha-halo carboxylic acid"
	if t.ContainsAny("acetic acid", "ethanoic acid") {
		product = "2-Bromoethanoic acid (alpha-bromoacetic acid)"
	}
	return &answer.ReactionResult{
		Reaction: "Hell-Volhard-Zelinsky reaction",
		Product:  product,
		Notes:    "Halogenation occurs exclusively at the alpha carbon; red phosphorus carries the halogen in as the acyl halide intermediate.",
		Tip:      "Only the alpha position is substituted, and only acids with an alpha-hydrogen react.",
		Mistake:  "Halogenating the carboxyl carbon or a beta position; HVZ is alpha-selective.",
		Steps: []string{
			"Red P + X2 convert the acid to the acyl halide",
			"Enolization and alpha-halogenation follow",
			"Halide exchange regenerates the alpha-halo acid",
		},
		TopicTags: []string{TopicAcids},
		NCERT:     ncertIn,
	}
}

type decarboxylationSolver struct{}

func (decarboxylationSolver) Name() string  { return "decarboxylation" }
func (decarboxylationSolver) Topic() string { return TopicAcids }

func (decarboxylationSolver) Detect(t question.NormalizedText) bool {
	if t.Contains("decarboxylation") {
		return true
	}
	return t.ContainsAny("soda lime", "sodalime", "naoh and cao", "naoh/cao", "naoh-cao") &&
		t.ContainsAny("sodium acetate", "sodium ethanoate", "carboxylic", "sodium salt", "acetate", "benzoate")
}

func (s decarboxylationSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	product := "The hydrocarbon with one carbon fewer (R-H) plus carbonate"
	if t.ContainsAny("sodium acetate", "sodium ethanoate") {
		product = "Methane (CH4)"
	} else if t.Contains("benzoate") {
		product = "Benzene (C6H6)"
	}
	return &answer.ReactionResult{
		Reaction: "Decarboxylation (soda lime)",
		Product:  product,
		Notes:    "Heating the sodium salt of the acid with soda lime (NaOH + CaO) expels the carboxyl group as carbonate.",
		Tip:      "The product hydrocarbon has one carbon fewer than the acid; count before answering.",
		Mistake:  "Decarboxylating the free acid; the sodium salt is what soda lime acts on.",
		Steps: []string{
			"Form the sodium carboxylate",
			"Heat with soda lime; -COONa leaves as Na2CO3",
		},
		TopicTags: []string{TopicAcids},
		NCERT:     ncertIn,
	}
}

type esterificationSolver struct{}

func (esterificationSolver) Name() string  { return "esterification" }
func (esterificationSolver) Topic() string { return TopicAcids }

func (esterificationSolver) Detect(t question.NormalizedText) bool {
	if t.ContainsAny("esterification", "fischer ester") {
		return true
	}
	return t.ContainsAny("carboxylic acid", "acetic acid", "ethanoic acid", "benzoic acid") &&
		t.ContainsAny("alcohol", "ethanol", "methanol", "c2h5oh", "ch3oh") &&
		t.ContainsAny("conc. h2so4", "conc h2so4", "concentrated h2so4", "concentrated sulfuric", "concentrated sulphuric", "acid catalyst", "h2so4")
}

func (s esterificationSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	product := "The ester (RCOOR') and water; fruity smell"
	if t.ContainsAny("acetic acid", "ethanoic acid") && t.ContainsAny("ethanol", "c2h5oh") {
		product = "Ethyl acetate (CH3COOC2H5), recognized by its fruity smell"
	}
	return &answer.ReactionResult{
		Reaction: "Fischer esterification",
		Product:  product,
		Notes:    "Conc. H2SO4 both catalyses and absorbs the water, pulling the equilibrium toward the ester.",
		Tip:      "The reaction is reversible; quote the role of conc. H2SO4 as catalyst and dehydrating agent for full marks.",
		Mistake:  "Losing the -OH from the alcohol instead of the acid; labelled-oxygen studies show the acid supplies the leaving -OH.",
		Steps: []string{
			"Protonation of the acid carbonyl",
			"The alcohol oxygen attacks; water leaves",
			"Deprotonation gives the ester",
		},
		TopicTags: []string{TopicAcids, TopicAlcohols},
		NCERT:     ncertIn,
	}
}

type saponificationSolver struct{}

func (saponificationSolver) Name() string  { return "saponification" }
func (saponificationSolver) Topic() string { return TopicAcids }

func (saponificationSolver) Detect(t question.NormalizedText) bool {
	if t.Contains("saponification") {
		return true
	}
	return (t.ContainsAny("ester", "ethyl acetate", "ch3cooc2h5", "triglyceride", "glyceride") ||
		t.HasAnyToken("fat", "fats")) &&
		t.ContainsAny("naoh", "koh", "alkaline hydrolysis", "aqueous alkali")
}

func (s saponificationSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	product := "The carboxylate salt and the alcohol (irreversible alkaline hydrolysis)"
	if t.ContainsAny("triglyceride", "glyceride") || t.HasAnyToken("fat", "fats") {
		product = "Soap (sodium salts of fatty acids) and glycerol"
	} else if t.ContainsAny("ethyl acetate", "ch3cooc2h5") {
		product = "Sodium acetate (CH3COONa) and ethanol"
	}
	return &answer.ReactionResult{
		Reaction: "Saponification",
		Product:  product,
		Notes:    "Hydroxide attacks the ester carbonyl; the carboxylate product cannot re-esterify, so the hydrolysis is essentially irreversible.",
		Tip:      "Irreversibility is what distinguishes alkaline from acidic ester hydrolysis in comparison questions.",
		Steps: []string{
			"OH- adds to the ester carbonyl",
			"The alkoxide leaves; proton transfer gives the carboxylate and alcohol",
		},
		TopicTags: []string{TopicAcids},
		NCERT:     ncertIn,
	}
}
