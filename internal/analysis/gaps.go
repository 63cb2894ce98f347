package analysis

import "slices"

// DetectGaps reports which expected kinds of language are absent from text.
// Labels are returned in fixed check order: outcome language, metrics, leadership.
//
// Presence checks are plain substrings, so "leadership" or even "misleading"
// satisfy the leadership check.
func DetectGaps(text string) []string {
	gaps := make([]string, 0, len(gapRecommendations))
	if !containsFold(text, "impact") && !containsFold(text, "outcome") {
		gaps = append(gaps, GapOutcomeLanguage)
	}
	if !containsFold(text, "metric") {
		gaps = append(gaps, GapNoMetrics)
	}
	if !containsFold(text, "lead") && !containsFold(text, "led") {
		gaps = append(gaps, GapNoLeadership)
	}
	return gaps
}

// Recommend maps gap labels to their recommendations. The result follows the
// fixed label order, not the order of gaps; unknown labels are ignored.
func Recommend(gaps []string) []string {
	recs := make([]string, 0, len(gapRecommendations))
	for _, gr := range gapRecommendations {
		if slices.Contains(gaps, gr.gap) {
			recs = append(recs, gr.recommendation)
		}
	}
	return recs
}
