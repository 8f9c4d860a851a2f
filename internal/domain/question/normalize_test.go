package question

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFoldsArrowsAndSubscripts(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"unicode arrow", "CH4 → CH3Cl", "ch4 -> ch3cl"},
		{"long arrow", "A ⟶ B", "a -> b"},
		{"ascii double dash arrow", "A --> B", "a -> b"},
		{"subscripts", "H₂SO₄ and C₆H₆", "h2so4 and c6h6"},
		{"whitespace collapse", "  propene \t +  Br2 \n", "propene + br2"},
		{"en dash range", "0–5°C", "0-5°c"},
		{"empty", "", ""},
		{"already folded", "aniline + nano2/hcl", "aniline + nano2/hcl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw).String())
		})
	}
}

func TestNormalizeKeepsRaw(t *testing.T) {
	n := Normalize("Aniline + NaNO₂/HCl")
	assert.Equal(t, "Aniline + NaNO₂/HCl", n.Raw())
	assert.Equal(t, "aniline + nano2/hcl", n.String())
}

func TestNormalizeIsIdempotentOnFoldedForm(t *testing.T) {
	first := Normalize("Propene + HBr → product")
	second := Normalize(first.String())
	assert.Equal(t, first.String(), second.String())
}

func TestNormalizeTotalOnAdversarialInput(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		strings.Repeat("₂→", 10000),
		"\x00\x01\x02",
		"🧪🔥💥",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { Normalize(in) })
	}
}

func TestContainsHelpers(t *testing.T) {
	n := Normalize("Chlorobenzene + NaNH2 in liquid NH3")
	assert.True(t, n.Contains("nanh2"))
	assert.True(t, n.ContainsAny("xyz", "liquid nh3"))
	assert.False(t, n.ContainsAny("xyz", "abc"))
	assert.True(t, n.ContainsAll("chlorobenzene", "nanh2"))
	assert.False(t, n.ContainsAll("chlorobenzene", "kmno4"))
}

func TestTokens(t *testing.T) {
	assert.Equal(t,
		[]string{"but-2-ene", "o3", "then", "zn", "h2o"},
		Normalize("But-2-ene + O3, then Zn/H2O").Tokens())
	assert.Nil(t, Normalize("").Tokens())
	assert.Nil(t, Normalize("+/()").Tokens())
}

// Formula cues like "hi" and "o3" appear as substrings of unrelated words and
// formulas; token matching is what keeps them from firing there.
func TestHasToken(t *testing.T) {
	tests := []struct {
		text  string
		token string
		want  bool
	}{
		{"Propene reacts with HI", "hi", true},
		{"Which alkene is the most stable isomer of butene?", "hi", false},
		{"the boiling point shifts higher", "hi", false},
		{"But-2-ene + O3 then Zn/H2O", "o3", true},
		{"Propene is treated with dilute HNO3", "o3", false},
		{"benzene + SO3", "o3", false},
		{"AgNO3 and KClO3 mixture", "o3", false},
		{"alkyl chloride + NaI in acetone", "nai", true},
		{"a naive guess", "nai", false},
		{"anhydrous FeBr3 catalyst", "fe", false},
		{"in presence of Fe", "fe", true},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.text).HasToken(tt.token))
		})
	}
}

func TestHasAnyToken(t *testing.T) {
	n := Normalize("Propene + HI -> product")
	assert.True(t, n.HasAnyToken("hx", "hi"))
	assert.False(t, n.HasAnyToken("hx", "o3"))
	assert.False(t, Normalize("").HasAnyToken("hi"))
}
