package solver

import (
	"github.com/askchem/askchem/internal/domain/answer"
	"github.com/askchem/askchem/internal/domain/question"
)

// Arene electrophilic-substitution and side-chain solvers. Etard and
// Gattermann-Koch precede the Friedel-Crafts pair in the registry because
// their questions also carry AlCl3/benzene cues.

type etardSolver struct{}

func (etardSolver) Name() string  { return "etard" }
func (etardSolver) Topic() string { return TopicArenes }

func (etardSolver) Detect(t question.NormalizedText) bool {
	if t.ContainsAny("etard", "étard") {
		return true
	}
	return t.ContainsAny("toluene", "methylbenzene", "c6h5ch3") &&
		t.ContainsAny("cro2cl2", "chromyl chloride")
}

func (s etardSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	return &answer.ReactionResult{
		Reaction: "Etard reaction",
		Product:  "Benzaldehyde (C6H5CHO)",
		Notes:    "Chromyl chloride oxidizes the methyl side chain; the chromium complex intermediate is hydrolysed to the aldehyde, which protects it from over-oxidation.",
		Tip:      "The stable chromium complex is why oxidation stops at -CHO instead of running to -COOH.",
		Mistake:  "Writing benzoic acid; CrO2Cl2 stops at the aldehyde, unlike KMnO4.",
		Steps: []string{
			"Toluene + CrO2Cl2 in CS2/CCl4 forms the chromium complex",
			"Hydrolysis of the complex releases benzaldehyde",
		},
		TopicTags: []string{TopicArenes, TopicCarbonyl},
		NCERT:     ncertIn,
	}
}

type gattermannKochSolver struct{}

func (gattermannKochSolver) Name() string  { return "gattermann_koch" }
func (gattermannKochSolver) Topic() string { return TopicArenes }

func (gattermannKochSolver) Detect(t question.NormalizedText) bool {
	if t.ContainsAny("gattermann-koch", "gattermann koch", "gatterman koch") {
		return true
	}
	return t.ContainsAny("benzene", "c6h6") &&
		t.ContainsAny("co + hcl", "co/hcl", "carbon monoxide") &&
		t.ContainsAny("alcl3", "aluminium chloride", "aluminum chloride")
}

func (s gattermannKochSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	return &answer.ReactionResult{
		Reaction: "Gattermann-Koch reaction",
		Product:  "Benzaldehyde (C6H5CHO)",
		Notes:    "CO + HCl behave as the formyl chloride equivalent under AlCl3/CuCl; formally a Friedel-Crafts formylation.",
		Tip:      "Remember the pairing: CO + HCl + anhydrous AlCl3 on benzene is the direct route to benzaldehyde.",
		Steps: []string{
			"CO + HCl generate the formyl cation equivalent with AlCl3/CuCl",
			"Electrophilic attack on benzene installs the -CHO group",
		},
		TopicTags: []string{TopicArenes, TopicCarbonyl},
		NCERT:     ncertIn,
	}
}

type friedelCraftsAcylationSolver struct{}

func (friedelCraftsAcylationSolver) Name() string  { return "friedel_crafts_acylation" }
func (friedelCraftsAcylationSolver) Topic() string { return TopicArenes }

func (friedelCraftsAcylationSolver) Detect(t question.NormalizedText) bool {
	if t.ContainsAny("friedel-crafts acylation", "friedel crafts acylation") {
		return true
	}
	return t.ContainsAny("benzene", "c6h6", "anisole", "toluene") &&
		t.ContainsAny("acetyl chloride", "ch3cocl", "acyl chloride", "acid chloride", "acetic anhydride", "(ch3co)2o", "benzoyl chloride", "c6h5cocl") &&
		t.ContainsAny("alcl3", "aluminium chloride", "aluminum chloride", "anhydrous")
}

func (s friedelCraftsAcylationSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	product := "Acetophenone (C6H5COCH3)"
	if t.ContainsAny("benzoyl chloride", "c6h5cocl") {
		product = "Benzophenone (C6H5COC6H5)"
	}
	return &answer.ReactionResult{
		Reaction: "Friedel-Crafts acylation",
		Product:  product,
		Notes:    "The acylium ion is the electrophile; the ketone product deactivates the ring, so the reaction cleanly stops after one substitution.",
		Tip:      "Acylation does not over-substitute or rearrange, which is why acylation-then-reduction beats direct alkylation for long chains.",
		Mistake:  "Using more than one equivalent expecting polysubstitution; the deactivated product resists a second acylation.",
		Steps: []string{
			"CH3COCl + AlCl3 -> CH3CO+ (acylium ion) + AlCl4-",
			"The acylium ion attacks benzene",
			"Loss of H+ restores aromaticity, giving the aryl ketone",
		},
		TopicTags: []string{TopicArenes, TopicCarbonyl},
		NCERT:     ncertIn,
	}
}

type friedelCraftsAlkylationSolver struct{}

func (friedelCraftsAlkylationSolver) Name() string  { return "friedel_crafts_alkylation" }
func (friedelCraftsAlkylationSolver) Topic() string { return TopicArenes }

func (friedelCraftsAlkylationSolver) Detect(t question.NormalizedText) bool {
	if t.ContainsAny("friedel-crafts alkylation", "friedel crafts alkylation", "friedel-crafts", "friedel crafts") {
		return true
	}
	return t.ContainsAny("benzene", "c6h6") &&
		t.ContainsAny("ch3cl", "methyl chloride", "ch3ch2cl", "ethyl chloride", "alkyl halide", "alkyl chloride") &&
		t.ContainsAny("alcl3", "aluminium chloride", "aluminum chloride", "anhydrous")
}

func (s friedelCraftsAlkylationSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	product := "Toluene (C6H5CH3)"
	if t.ContainsAny("ch3ch2cl", "ethyl chloride") {
		product = "Ethylbenzene (C6H5C2H5)"
	}
	return &answer.ReactionResult{
		Reaction: "Friedel-Crafts alkylation",
		Product:  product,
		Notes:    "Anhydrous AlCl3 polarizes the C-X bond to give a carbocation-like electrophile; watch for rearrangement with 1° halides longer than ethyl.",
		Tip:      "Polyalkylation and carbocation rearrangement are the two stock limitations examiners ask for.",
		Mistake:  "Forgetting 'anhydrous'; traces of water destroy the AlCl3 catalyst.",
		Steps: []string{
			"R-Cl + AlCl3 -> R+ ... AlCl4-",
			"The carbocation attacks benzene",
			"Loss of H+ gives the alkylbenzene",
		},
		TopicTags: []string{TopicArenes},
		NCERT:     ncertIn,
	}
}

type nitrationSolver struct{}

func (nitrationSolver) Name() string  { return "nitration" }
func (nitrationSolver) Topic() string { return TopicArenes }

func (nitrationSolver) Detect(t question.NormalizedText) bool {
	if t.Contains("nitration") {
		return true
	}
	return t.ContainsAny("benzene", "c6h6", "toluene", "phenol", "nitrobenzene") &&
		t.ContainsAny("hno3", "nitric acid", "nitrating mixture") &&
		t.ContainsAny("h2so4", "sulfuric acid", "sulphuric acid", "conc")
}

func (s nitrationSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	product := "Nitrobenzene (C6H5NO2)"
	notes := "The nitronium ion NO2+ generated by the acid mixture is the attacking electrophile."
	switch {
	case t.Contains("phenol"):
		product = "o- and p-nitrophenol (dilute HNO3); picric acid with the concentrated mixture"
		notes = "-OH activates the ring strongly; concentrated conditions push through to 2,4,6-trinitrophenol."
	case t.Contains("toluene"):
		product = "o- and p-nitrotoluene (the -CH3 group is ortho/para directing)"
	case t.Contains("nitrobenzene"):
		product = "m-Dinitrobenzene (the -NO2 group is meta directing, and the reaction needs harsher conditions)"
	}
	return &answer.ReactionResult{
		Reaction: "Nitration (electrophilic aromatic substitution)",
		Product:  product,
		Notes:    notes,
		Tip:      "Name the electrophile explicitly: HNO3 + 2 H2SO4 -> NO2+ + H3O+ + 2 HSO4-.",
		Mistake:  "Leaving out the H2SO4; without it NO2+ is not generated in useful amount.",
		Steps: []string{
			"Conc. HNO3 + conc. H2SO4 generate NO2+",
			"NO2+ attacks the ring to give the arenium ion",
			"Loss of H+ restores aromaticity",
		},
		TopicTags: []string{TopicArenes},
		NCERT:     ncertIn,
	}
}

type sulfonationSolver struct{}

func (sulfonationSolver) Name() string  { return "sulfonation" }
func (sulfonationSolver) Topic() string { return TopicArenes }

func (sulfonationSolver) Detect(t question.NormalizedText) bool {
	if t.ContainsAny("sulfonation", "sulphonation") {
		return true
	}
	return t.ContainsAny("benzene", "c6h6") &&
		(t.ContainsAny("fuming h2so4", "fuming sulfuric", "fuming sulphuric", "oleum") || t.HasToken("so3"))
}

func (s sulfonationSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	return &answer.ReactionResult{
		Reaction: "Sulfonation (electrophilic aromatic substitution)",
		Product:  "Benzenesulfonic acid (C6H5SO3H)",
		Notes:    "SO3 in oleum is the electrophile; the reaction is reversible, which distinguishes it from nitration.",
		Tip:      "Reversibility is the asked-for point: heating the sulfonic acid with dilute H2SO4/steam removes the -SO3H group.",
		Steps: []string{
			"Benzene + SO3 (from fuming H2SO4) -> arenium intermediate",
			"Proton loss gives benzenesulfonic acid",
		},
		TopicTags: []string{TopicArenes},
		NCERT:     ncertIn,
	}
}
