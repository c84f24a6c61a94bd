package country

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuzzyScoreIdentity(t *testing.T) {
	for _, s := range []string{"FRANCE", "germany", " Brazil ", "X"} {
		assert.Equal(t, float64(100), FuzzyScore(s, s), "FuzzyScore(%q, %q)", s, s)
	}
}

func TestFuzzyScoreEmpty(t *testing.T) {
	assert.Equal(t, float64(0), FuzzyScore("", "FRANCE"))
	assert.Equal(t, float64(0), FuzzyScore("FRANCE", ""))
	assert.Equal(t, float64(0), FuzzyScore("   ", "FRANCE"))
}

func TestFuzzyScoreCaseAndWhitespaceInsensitive(t *testing.T) {
	assert.Equal(t, FuzzyScore("GERMANY ", "GERMANY"), FuzzyScore("germany", "GERMANY"))
}

func TestFuzzyScoreTypo(t *testing.T) {
	// One edit over length 7: 100 * 6/7.
	score := FuzzyScore("FRANCEE", "FRANCE")
	assert.InDelta(t, 100.0*6.0/7.0, score, 0.001)
}

func TestNormalizeEmpty(t *testing.T) {
	n := NewNormalizer(DefaultThreshold)
	assert.Equal(t, "", n.Normalize(""))
	assert.Equal(t, "", n.Normalize("   "))
}

func TestNormalizeExactCanonical(t *testing.T) {
	n := NewNormalizer(DefaultThreshold)
	assert.Equal(t, "FRANCE", n.Normalize("france"))
	assert.Equal(t, "FRANCE", n.Normalize(" FRANCE "))
	assert.Empty(t, n.Unmatched())
}

func TestNormalizeAliasPrecedence(t *testing.T) {
	// Alias hits short-circuit the fuzzy path even at threshold 100.
	n := NewNormalizer(100)
	assert.Equal(t, "UNITED STATES", n.Normalize("USA"))
	assert.Equal(t, "UNITED KINGDOM", n.Normalize("uk"))
	assert.Equal(t, "NETHERLANDS", n.Normalize("Holland"))
	assert.Equal(t, "CHINA", n.Normalize("Hong Kong"))
	assert.Empty(t, n.Unmatched())
}

func TestNormalizeFuzzyAccepted(t *testing.T) {
	// "GERMANY1" → distance 1 over length 8 → 87.5 ≥ 85.
	n := NewNormalizer(85)
	assert.Equal(t, "GERMANY", n.Normalize("GERMANY1"))
	assert.Empty(t, n.Unmatched())
}

func TestNormalizeThresholdBoundaryInclusive(t *testing.T) {
	// "GERMANY1" scores exactly 87.5; a threshold equal to the floor of a
	// constructed exact score must accept (>=, not >). "FRANC" vs "FRANCE"
	// is 1 edit over 6 → exactly 83.3̅, so threshold 83 accepts…
	n := NewNormalizer(83)
	assert.Equal(t, "FRANCE", n.Normalize("FRANC"))

	// …and "ITALY1" vs "ITALY" is 1 edit over 6 → identical score, while a
	// higher threshold rejects it.
	strict := NewNormalizer(85)
	assert.Equal(t, "ITALY1", strict.Normalize("ITALY1"))
}

func TestNormalizeBelowThresholdReturnsRawAndRecords(t *testing.T) {
	n := NewNormalizer(85)
	// "FRANCEE": distance 1 over length 7 → ~85.7 which would pass, so use
	// raw whose best score sits below 85.
	got := n.Normalize("Atlantis")
	assert.Equal(t, "ATLANTIS", got)
	assert.False(t, IsCanonical(got))
	assert.Equal(t, []string{"ATLANTIS"}, n.Unmatched())

	// Deduplicated on repeat.
	n.Normalize("atlantis ")
	assert.Equal(t, []string{"ATLANTIS"}, n.Unmatched())
}

func TestNormalizeUserMappingsAndRederive(t *testing.T) {
	n := NewNormalizer(85)
	require.Equal(t, "ATLANTIS", n.Normalize("Atlantis"))
	require.Len(t, n.Unmatched(), 1)

	n.AddMappings(map[string]string{"atlantis": "GREECE"})
	assert.Empty(t, n.Unmatched())
	assert.Equal(t, "GREECE", n.Normalize("Atlantis"))
	assert.Equal(t, map[string]string{"ATLANTIS": "GREECE"}, n.Mappings())
}

func TestNormalizeDeterministicTieBreak(t *testing.T) {
	// Identical inputs always give identical outputs.
	a := NewNormalizer(50)
	b := NewNormalizer(50)
	for _, raw := range []string{"NIGERR", "GUINEA B", "KOREAA"} {
		assert.Equal(t, a.Normalize(raw), b.Normalize(raw), "raw=%q", raw)
	}
}

func TestCanonicalListShape(t *testing.T) {
	assert.Len(t, Canonical, 193)
	assert.Len(t, Regions, 193)
	for _, c := range Canonical {
		assert.NotEmpty(t, Regions[c], "missing region for %s", c)
	}
	// Aliases always point at canonical names.
	for raw, canonical := range builtinAliases {
		assert.True(t, IsCanonical(canonical), "alias %q → non-canonical %q", raw, canonical)
	}
}

func TestRegionUnknown(t *testing.T) {
	assert.Equal(t, "", Region("ATLANTIS"))
	assert.Equal(t, "Europe", Region("FRANCE"))
	assert.Equal(t, "North America", Region("UNITED STATES"))
}
