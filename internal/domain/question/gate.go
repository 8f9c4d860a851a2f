package question

import (
	"regexp"
	"strings"
)

// Gate is the chemistry subject pre-filter. It classifies a question as
// in-domain before any solver is consulted, and defaults to out-of-domain
// when unsure: a false accept wastes a dispatch, a false reject sends a
// chemistry question to the wrong handler, and the catalog downstream is
// conservative enough that the cheaper failure mode is rejection.
type Gate struct {
	maxQuestionLen int
}

// NewGate constructs a Gate. maxQuestionLen bounds the accepted input length
// in bytes; zero or negative selects DefaultMaxQuestionLen.
func NewGate(maxQuestionLen int) *Gate {
	if maxQuestionLen <= 0 {
		maxQuestionLen = DefaultMaxQuestionLen
	}
	return &Gate{maxQuestionLen: maxQuestionLen}
}

// DefaultMaxQuestionLen is the default upper bound on raw question length.
// Exam questions are short; anything beyond this is pasted noise.
const DefaultMaxQuestionLen = 4000

// formulaShapeRe matches runs of capital-letter(+lowercase)(+digits) units
// that look like chemical formulas: "NaCl", "H2SO4", "CH3COOH". It runs
// against the RAW text since folding destroys the capitalization the shape
// depends on. Two units minimum so lone capitalized words do not match.
var formulaShapeRe = regexp.MustCompile(`\b(?:[A-Z][a-z]?\d*){2,}\b`)

// subjectKeywords is the folded-form keyword set for in-domain
// classification. One hit is sufficient. Formula entries are listed in
// folded (lower-case) form because the gate checks them against the folded
// text; the raw-text formula regex covers capitalized formulas the set
// misses.
var subjectKeywords = map[string]struct{}{
	// general vocabulary
	"reaction": {}, "reagent": {}, "reacts": {}, "reacted": {}, "product": {},
	"compound": {}, "molecule": {}, "mole": {}, "molar": {}, "valency": {},
	"acid": {}, "base": {}, "salt": {}, "oxidation": {}, "reduction": {},
	"oxidised": {}, "oxidized": {}, "reduced": {}, "catalyst": {},
	"solvent": {}, "solution": {}, "electrolysis": {}, "titration": {},
	"organic": {}, "inorganic": {}, "isomer": {}, "polymer": {},
	"electrophile": {}, "nucleophile": {}, "mechanism": {}, "iupac": {},
	"hybridisation": {}, "hybridization": {}, "electronegativity": {},

	// functional classes
	"alkane": {}, "alkene": {}, "alkyne": {}, "arene": {}, "benzene": {},
	"toluene": {}, "phenol": {}, "alcohol": {}, "ether": {}, "aldehyde": {},
	"ketone": {}, "ester": {}, "amine": {}, "amide": {}, "aniline": {},
	"nitrile": {}, "carboxylic": {}, "halide": {}, "haloalkane": {},
	"haloarene": {}, "glucose": {}, "sucrose": {},

	// named substrates that appear without any formula
	"methane": {}, "ethane": {}, "ethene": {}, "ethyne": {}, "propene": {},
	"propane": {}, "butane": {}, "acetone": {}, "acetaldehyde": {},
	"formaldehyde": {}, "acetophenone": {}, "benzaldehyde": {},
	"chlorobenzene": {}, "bromobenzene": {}, "ethanol": {}, "methanol": {},

	// elements spelled out
	"hydrogen": {}, "oxygen": {}, "nitrogen": {}, "carbon": {},
	"chlorine": {}, "bromine": {}, "iodine": {}, "fluorine": {},
	"sodium": {}, "potassium": {}, "calcium": {}, "magnesium": {},
	"aluminium": {}, "aluminum": {}, "zinc": {}, "copper": {}, "iron": {},
	"silver": {}, "mercury": {}, "sulphur": {}, "sulfur": {},
	"phosphorus": {},

	// folded formulas of the reagents the catalog triggers on
	"hcl": {}, "hbr": {}, "hi": {}, "hf": {}, "h2so4": {}, "hno3": {},
	"naoh": {}, "koh": {}, "nano2": {}, "nanh2": {}, "nh3": {}, "nh2nh2": {},
	"kmno4": {}, "k2cr2o7": {}, "cro2cl2": {}, "pcc": {}, "lialh4": {},
	"nabh4": {}, "h2o2": {}, "br2": {}, "cl2": {}, "i2": {}, "o3": {},
	"so3": {}, "co2": {}, "cucn": {}, "kcn": {}, "agcn": {}, "agno3": {},
	"cu2cl2": {}, "cucl": {}, "cubr": {}, "zn-hg": {}, "b2h6": {},
	"ch3cl": {}, "ch3i": {}, "c2h5oh": {}, "ch3cooh": {}, "chcl3": {},
	"ccl4": {}, "dibal": {}, "thf": {},
}

var tokenSplitRe = regexp.MustCompile(`[^a-z0-9\-]+`)

// InDomain classifies t as chemistry (true) or out-of-domain (false).
//
// A question is in-domain when either a subject keyword occurs as a token of
// the folded text or the raw text contains a formula-shaped run. Empty input
// and input beyond the configured length bound are out-of-domain; neither is
// an error, both are terminal classifications.
func (g *Gate) InDomain(t NormalizedText) bool {
	if t.IsEmpty() || len(t.Raw()) > g.maxQuestionLen {
		return false
	}

	for _, tok := range tokenSplitRe.Split(t.String(), -1) {
		tok = strings.Trim(tok, "-")
		if tok == "" {
			continue
		}
		if _, ok := subjectKeywords[tok]; ok {
			return true
		}
	}

	return formulaShapeRe.MatchString(t.Raw())
}

// MaxQuestionLen exposes the configured length bound for callers that want
// to reject oversized payloads before normalization.
func (g *Gate) MaxQuestionLen() int { return g.maxQuestionLen }
