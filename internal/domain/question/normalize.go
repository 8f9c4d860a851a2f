// Package question holds the input-side domain model of the engine: the
// normalized projection of a raw question, the chemistry subject gate, and
// the advisory question-type classifier.
package question

import (
	"regexp"
	"strings"
)

// NormalizedText is the canonical projection of a raw question used by every
// detector. It is derived once per request and never mutated afterwards, so
// the ~40 detectors share one normalization instead of re-folding the input.
//
// The raw text is retained alongside the folded form because the subject
// gate's formula-shape heuristic depends on capitalization (e.g. "NaCl"),
// which the folded form deliberately destroys.
type NormalizedText struct {
	raw    string
	folded string
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)

	// arrowFolder maps the arrow glyphs seen in pasted exam questions onto
	// the single ASCII form detectors match against.
	arrowFolder = strings.NewReplacer(
		"→", "->", // →
		"⟶", "->", // ⟶
		"⇒", "->", // ⇒
		"—>", "->", // em-dash arrow
		"–>", "->", // en-dash arrow
		"-->", "->",
		"=>", "->",
	)

	// subscriptFolder maps Unicode subscript digits to ASCII so that
	// "H₂SO₄" and "H2SO4" are the same trigger.
	subscriptFolder = strings.NewReplacer(
		"₀", "0", "₁", "1", "₂", "2", "₃", "3", "₄", "4",
		"₅", "5", "₆", "6", "₇", "7", "₈", "8", "₉", "9",
	)

	// dashFolder collapses typographic dashes so ranges like "0–5°C" match
	// the ASCII patterns solvers use.
	dashFolder = strings.NewReplacer("–", "-", "—", "-", "−", "-")
)

// Normalize derives the NormalizedText projection of raw: subscript digits
// and arrow glyphs folded to ASCII, dashes collapsed, whitespace collapsed,
// lower-cased, trimmed. Total over every string input including empty.
func Normalize(raw string) NormalizedText {
	s := subscriptFolder.Replace(raw)
	s = arrowFolder.Replace(s)
	s = dashFolder.Replace(s)
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = strings.ToLower(strings.TrimSpace(s))
	return NormalizedText{raw: raw, folded: s}
}

// Raw returns the original question text unchanged.
func (t NormalizedText) Raw() string { return t.raw }

// String returns the folded form every detector matches against.
func (t NormalizedText) String() string { return t.folded }

// IsEmpty reports whether the folded form is empty.
func (t NormalizedText) IsEmpty() bool { return t.folded == "" }

// Contains reports whether the folded form contains sub (sub must already be
// lower-case ASCII; detectors keep their trigger tables in folded form).
func (t NormalizedText) Contains(sub string) bool {
	return strings.Contains(t.folded, sub)
}

// ContainsAny reports whether the folded form contains at least one of subs.
func (t NormalizedText) ContainsAny(subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(t.folded, s) {
			return true
		}
	}
	return false
}

// ContainsAll reports whether the folded form contains every one of subs.
func (t NormalizedText) ContainsAll(subs ...string) bool {
	for _, s := range subs {
		if !strings.Contains(t.folded, s) {
			return false
		}
	}
	return true
}

// Tokens returns the alphanumeric runs of the folded form, split the same way
// the subject gate splits its keywords. Hyphens survive inside a token
// ("but-2-ene") and are trimmed at the edges.
func (t NormalizedText) Tokens() []string {
	if t.folded == "" {
		return nil
	}
	var toks []string
	for _, tok := range tokenSplitRe.Split(t.folded, -1) {
		tok = strings.Trim(tok, "-")
		if tok != "" {
			toks = append(toks, tok)
		}
	}
	return toks
}

// HasToken reports whether tok occurs as a whole token of the folded form.
// Short formula cues ("hi", "o3", "nai") must be matched this way: as raw
// substrings they fire inside unrelated words and formulas ("which", "HNO3",
// "naive") and turn an unanswerable question into a wrong answer.
func (t NormalizedText) HasToken(tok string) bool {
	for _, got := range t.Tokens() {
		if got == tok {
			return true
		}
	}
	return false
}

// HasAnyToken reports whether at least one of toks occurs as a whole token.
func (t NormalizedText) HasAnyToken(toks ...string) bool {
	for _, got := range t.Tokens() {
		for _, want := range toks {
			if got == want {
				return true
			}
		}
	}
	return false
}
