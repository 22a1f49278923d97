package types

import (
	"sort"
	"strings"
)

// Territory values are stored as a proper set (text[]), not the legacy
// comma-joined string. The comma form is still accepted as input.

// NormalizeTerritories trims, drops empties, dedupes case-insensitively and
// sorts the territory set into its canonical representation.
func NormalizeTerritories(values []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	// Sort on the folded key so casing differences cannot reorder two
	// otherwise-equal sets.
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}

// ParseTerritoryList splits a legacy comma-joined territory string.
func ParseTerritoryList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return NormalizeTerritories(strings.Split(raw, ","))
}

// JoinTerritories renders the canonical comma-joined form used in email
// payloads and legacy exports.
func JoinTerritories(values []string) string {
	return strings.Join(NormalizeTerritories(values), ", ")
}

// TerritoriesEqual reports whether two territory sets are the same after
// normalization.
func TerritoriesEqual(a, b []string) bool {
	na, nb := NormalizeTerritories(a), NormalizeTerritories(b)
	if len(na) != len(nb) {
		return false
	}
	for i := range na {
		if !strings.EqualFold(na[i], nb[i]) {
			return false
		}
	}
	return true
}
