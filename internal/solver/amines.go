package solver

import (
	"github.com/askchem/askchem/internal/domain/answer"
	"github.com/askchem/askchem/internal/domain/question"
)

// Amines-chapter solvers. Sandmeyer and azo coupling sit above diazotization
// in the registry: their questions also mention the diazonium salt, and the
// broader diazotization rule would otherwise answer first.

type sandmeyerSolver struct{}

func (sandmeyerSolver) Name() string  { return "sandmeyer" }
func (sandmeyerSolver) Topic() string { return TopicAmines }

func (sandmeyerSolver) Detect(t question.NormalizedText) bool {
	if t.Contains("sandmeyer") {
		return true
	}
	return t.ContainsAny("diazonium", "benzenediazonium", "c6h5n2+", "c6h5n2cl") &&
		t.ContainsAny("cucl", "cubr", "cucn", "cu2cl2", "cu2br2", "cuprous", "copper(i)", "copper (i)")
}

func (s sandmeyerSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	product := "Chlorobenzene (C6H5Cl)"
	if t.ContainsAny("cubr", "cu2br2", "hbr") {
		product = "Bromobenzene (C6H5Br)"
	} else if t.Contains("cucn") {
		product = "Benzonitrile (C6H5CN), hydrolysable to benzoic acid"
	}
	return &answer.ReactionResult{
		Reaction: "Sandmeyer reaction",
		Product:  product,
		Notes:    "The diazonium group is replaced via a cuprous-salt mediated radical pathway.",
		Tip:      "CuCN gives the nitrile, not a halide; with HBF4 the same substitution gives fluorobenzene (Balz-Schiemann).",
		Mistake:  "Writing aniline as the product; the -N2+ group leaves as N2, it is not reduced back.",
		Steps: []string{
			"Start from the benzene diazonium salt (from aniline + NaNO2/HCl, 0-5°C)",
			"Treat with the cuprous halide or cyanide in the corresponding acid",
			"N2 is lost and the nucleophile takes its position on the ring",
		},
		TopicTags: []string{TopicAmines, "diazonium"},
		NCERT:     ncertIn,
	}
}

type azoCouplingSolver struct{}

func (azoCouplingSolver) Name() string  { return "azo_coupling" }
func (azoCouplingSolver) Topic() string { return TopicAmines }

func (azoCouplingSolver) Detect(t question.NormalizedText) bool {
	if t.ContainsAny("azo coupling", "coupling reaction", "azo dye") {
		return true
	}
	return t.ContainsAny("diazonium", "benzenediazonium") &&
		t.ContainsAny("phenol", "c6h5oh", "aniline", "naphthol")
}

func (s azoCouplingSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	product := "p-Hydroxyazobenzene, an orange azo dye"
	if t.Contains("aniline") && !t.ContainsAny("phenol", "naphthol") {
		product = "p-Aminoazobenzene, a yellow azo dye"
	}
	return &answer.ReactionResult{
		Reaction: "Azo coupling",
		Product:  product,
		Notes:    "Electrophilic attack of the diazonium ion at the para position of the activated ring; mildly alkaline medium for phenols, mildly acidic for amines.",
		Tip:      "Coupling is a confirmatory test for aromatic primary amines: diazotize, then add alkaline beta-naphthol for a brilliant orange-red dye.",
		Mistake:  "Coupling at the ortho position when para is free; para is strongly preferred.",
		Steps: []string{
			"Generate the benzene diazonium salt at 0-5°C",
			"Add the phenol in NaOH (or the amine in mild acid)",
			"The -N=N- azo bridge forms at the para position",
		},
		TopicTags: []string{TopicAmines, "diazonium", "dyes"},
		NCERT:     ncertIn,
	}
}

// diazotizationSolver is the broad diazonium-formation rule; every more
// specific diazonium consumer must outrank it in the registry.
type diazotizationSolver struct{}

func (diazotizationSolver) Name() string  { return "diazotization" }
func (diazotizationSolver) Topic() string { return TopicAmines }

func (diazotizationSolver) Detect(t question.NormalizedText) bool {
	if t.ContainsAny("diazotization", "diazotisation") {
		return true
	}
	return t.ContainsAny("aniline", "c6h5nh2", "phenylamine", "aromatic primary amine", "aryl amine", "arylamine") &&
		t.ContainsAny("nano2", "sodium nitrite", "nitrous acid", "hno2")
}

func (s diazotizationSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	return &answer.ReactionResult{
		Reaction: "Diazotization",
		Product:  "Benzene diazonium chloride (C6H5N2+Cl-)",
		Notes:    "NaNO2 + HCl generate HNO2 in situ; the diazonium salt is stable only between 0-5°C and decomposes to phenol in warm water.",
		Tip:      "Always quote the temperature window 0-5°C (273-278 K); losing it loses the condition mark.",
		Mistake:  "Using a 2° or 3° aromatic amine; only 1° aromatic amines give stable diazonium salts.",
		Steps: []string{
			"NaNO2 + HCl -> HNO2 (in situ, at 0-5°C)",
			"HNO2 attacks the -NH2 nitrogen of aniline",
			"Loss of water gives the benzene diazonium chloride salt",
		},
		TopicTags: []string{TopicAmines, "diazonium"},
		NCERT:     ncertIn,
	}
}

type hofmannBromamideSolver struct{}

func (hofmannBromamideSolver) Name() string  { return "hofmann_bromamide" }
func (hofmannBromamideSolver) Topic() string { return TopicAmines }

func (hofmannBromamideSolver) Detect(t question.NormalizedText) bool {
	if t.ContainsAny("hofmann bromamide", "hoffmann bromamide", "hofmann degradation") {
		return true
	}
	return (t.HasToken("amide") || t.ContainsAny("acetamide", "benzamide", "ethanamide", "propanamide", "conh2")) &&
		t.ContainsAny("br2", "bromine") &&
		t.ContainsAny("koh", "naoh", "alkali")
}

func (s hofmannBromamideSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	product := "A primary amine with one carbon fewer than the amide"
	if t.Contains("benzamide") {
		product = "Aniline (C6H5NH2)"
	} else if t.ContainsAny("acetamide", "ch3conh2", "ethanamide") {
		product = "Methanamine (CH3NH2)"
	}
	return &answer.ReactionResult{
		Reaction: "Hofmann bromamide degradation",
		Product:  product,
		Notes:    "The acyl carbon leaves as carbonate; the migrating group moves to nitrogen via an isocyanate intermediate.",
		Tip:      "This is the standard step-down route: amine chain length = amide chain length minus one.",
		Mistake:  "Keeping the carbon count unchanged; the whole point of the reaction is the one-carbon descent.",
		Steps: []string{
			"Amide + Br2/KOH forms the N-bromoamide",
			"Base removes the N-H proton and the alkyl/aryl group migrates to N",
			"The isocyanate hydrolyses to the amine and carbonate",
		},
		TopicTags: []string{TopicAmines},
		NCERT:     ncertIn,
	}
}

type gabrielSolver struct{}

func (gabrielSolver) Name() string  { return "gabriel_phthalimide" }
func (gabrielSolver) Topic() string { return TopicAmines }

func (gabrielSolver) Detect(t question.NormalizedText) bool {
	return t.ContainsAny("gabriel", "phthalimide")
}

func (s gabrielSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	return &answer.ReactionResult{
		Reaction: "Gabriel phthalimide synthesis",
		Product:  "A pure primary aliphatic amine (R-NH2)",
		Notes:    "Phthalimide -> potassium phthalimide (KOH) -> N-alkyl phthalimide (R-X) -> amine on alkaline hydrolysis.",
		Tip:      "The method fails for aromatic amines: aryl halides do not undergo the required nucleophilic substitution.",
		Mistake:  "Claiming aniline can be made this way; that is the classic trap option.",
		Steps: []string{
			"Phthalimide + KOH -> potassium phthalimide",
			"Potassium phthalimide + R-X -> N-alkyl phthalimide",
			"Alkaline hydrolysis releases R-NH2 and phthalate",
		},
		TopicTags: []string{TopicAmines},
		NCERT:     ncertIn,
	}
}

type carbylamineSolver struct{}

func (carbylamineSolver) Name() string  { return "carbylamine" }
func (carbylamineSolver) Topic() string { return TopicAmines }

func (carbylamineSolver) Detect(t question.NormalizedText) bool {
	if t.ContainsAny("carbylamine", "isocyanide test") {
		return true
	}
	return t.ContainsAny("chloroform", "chcl3") &&
		t.ContainsAny("koh", "alkali", "alcoholic potash") &&
		t.ContainsAny("amine", "aniline", "nh2")
}

func (s carbylamineSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	product := "A foul-smelling isocyanide (carbylamine, R-NC)"
	if t.Contains("aniline") {
		product = "Phenyl isocyanide (C6H5NC), recognized by its offensive smell"
	}
	return &answer.ReactionResult{
		Reaction: "Carbylamine reaction",
		Product:  product,
		Notes:    "Only primary amines respond; the dichlorocarbene generated from CHCl3/KOH attacks the -NH2 nitrogen.",
		Tip:      "This is the test for primary amines: secondary and tertiary amines give no isocyanide.",
		Mistake:  "Applying it to 2° amines; no reaction occurs, which is itself the distinguishing observation.",
		Steps: []string{
			"CHCl3 + 3 KOH -> :CCl2 (dichlorocarbene)",
			"The carbene adds to the primary amine nitrogen",
			"Double dehydrohalogenation gives R-NC",
		},
		TopicTags: []string{TopicAmines, "chemical_tests"},
		NCERT:     ncertIn,
	}
}

type hinsbergSolver struct{}

func (hinsbergSolver) Name() string  { return "hinsberg" }
func (hinsbergSolver) Topic() string { return TopicAmines }

func (hinsbergSolver) Detect(t question.NormalizedText) bool {
	return t.ContainsAny("hinsberg", "benzenesulfonyl chloride", "benzenesulphonyl chloride", "c6h5so2cl")
}

func (s hinsbergSolver) Solve(t question.NormalizedText) *answer.ReactionResult {
	if !s.Detect(t) {
		return nil
	}
	return &answer.ReactionResult{
		Reaction: "Hinsberg test",
		Product:  "1° amine: alkali-soluble sulfonamide; 2° amine: alkali-insoluble sulfonamide; 3° amine: no reaction",
		Notes:    "Benzenesulfonyl chloride (Hinsberg's reagent) separates the three amine classes by the acidity of the remaining N-H.",
		Tip:      "Solubility in aqueous KOH is the observable: one N-H left means acidic and soluble, none means insoluble.",
		Mistake:  "Reporting that tertiary amines form an insoluble product; they simply do not react.",
		Steps: []string{
			"Treat the amine with C6H5SO2Cl in aqueous KOH",
			"Note whether a product forms and whether it dissolves in the alkali",
			"Assign the amine class from the solubility pattern",
		},
		TopicTags: []string{TopicAmines, "chemical_tests"},
		NCERT:     ncertIn,
	}
}
