// Package country normalizes free-text country names from spreadsheet
// exports onto the canonical 193-country taxonomy.
package country

import (
	"sort"
	"strings"
	"sync"
)

// DefaultThreshold is the minimum fuzzy similarity score for a match to
// be accepted.
const DefaultThreshold = 85

// Normalizer maps raw country strings to canonical names. It owns the
// session's user-supplied mappings and the set of raw values that could
// not be resolved. Safe for concurrent use.
type Normalizer struct {
	mu        sync.RWMutex
	threshold int
	user      map[string]string
	unmatched map[string]struct{}
}

// NewNormalizer creates a Normalizer with the given fuzzy acceptance
// threshold; values outside (0,100] fall back to DefaultThreshold.
func NewNormalizer(threshold int) *Normalizer {
	if threshold <= 0 || threshold > 100 {
		threshold = DefaultThreshold
	}
	return &Normalizer{
		threshold: threshold,
		user:      make(map[string]string),
		unmatched: make(map[string]struct{}),
	}
}

// Normalize maps a raw country string onto the canonical list. Resolution
// order: builtin alias table, user mappings, exact canonical membership,
// fuzzy match. An exact or alias hit always short-circuits the fuzzy path
// regardless of threshold.
//
// When nothing clears the threshold, the uppercased raw input is recorded
// as unmatched and returned unchanged; callers must treat any result that
// is not canonical as pending resolution. Empty input returns "".
func (n *Normalizer) Normalize(raw string) string {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	if upper == "" {
		return ""
	}

	if mapped, ok := builtinAliases[upper]; ok {
		return mapped
	}

	n.mu.RLock()
	mapped, ok := n.user[upper]
	n.mu.RUnlock()
	if ok {
		return mapped
	}

	if IsCanonical(upper) {
		return upper
	}

	var bestMatch string
	var bestScore float64
	for _, candidate := range Canonical {
		if score := FuzzyScore(upper, candidate); score > bestScore {
			bestScore = score
			bestMatch = candidate
		}
	}
	if bestScore >= float64(n.threshold) {
		return bestMatch
	}

	n.mu.Lock()
	n.unmatched[upper] = struct{}{}
	n.mu.Unlock()
	return upper
}

// AddMappings merges user-supplied raw→canonical mappings and clears the
// matching unmatched entries. Raw keys are uppercased. Callers are
// expected to re-derive all previously parsed rows afterwards.
func (n *Normalizer) AddMappings(mappings map[string]string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for raw, canonical := range mappings {
		upper := strings.ToUpper(strings.TrimSpace(raw))
		if upper == "" || canonical == "" {
			continue
		}
		n.user[upper] = canonical
		delete(n.unmatched, upper)
	}
}

// Unmatched returns the raw values recorded as pending resolution,
// sorted for stable output.
func (n *Normalizer) Unmatched() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]string, 0, len(n.unmatched))
	for raw := range n.unmatched {
		out = append(out, raw)
	}
	sort.Strings(out)
	return out
}

// ClearUnmatched empties the pending-resolution set.
func (n *Normalizer) ClearUnmatched() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.unmatched = make(map[string]struct{})
}

// Mappings returns a copy of the user-supplied mapping layer.
func (n *Normalizer) Mappings() map[string]string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make(map[string]string, len(n.user))
	for k, v := range n.user {
		out[k] = v
	}
	return out
}
