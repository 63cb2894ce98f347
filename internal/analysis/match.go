package analysis

import "strings"

// MatchSkills returns the skill vocabulary entries that occur in text,
// in vocabulary order. Matching is case-insensitive substring containment
// with no word-boundary checks.
func MatchSkills(text string) []string {
	return matchVocabulary(strings.ToLower(text), skillVocabulary[:])
}

// MatchTitles returns the title vocabulary entries that occur in text,
// in vocabulary order. A shorter title found inside a longer one counts.
func MatchTitles(text string) []string {
	return matchVocabulary(strings.ToLower(text), titleVocabulary[:])
}

// matchVocabulary scans vocab linearly against an already lowercased haystack.
func matchVocabulary(lowered string, vocab []string) []string {
	found := make([]string, 0, len(vocab))
	for _, term := range vocab {
		if strings.Contains(lowered, strings.ToLower(term)) {
			found = append(found, term)
		}
	}
	return found
}

// containsFold reports whether needle occurs in text, ignoring case.
func containsFold(text, needle string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(needle))
}
