// Package analysis implements the keyword-based resume analysis pipeline.
//
// Every function in this package is a pure function of its input text and the
// constant tables defined here. Nothing is cached between calls.
package analysis

// skillVocabulary is the ordered list of skills detected in resume text.
var skillVocabulary = [...]string{
	"Python",
	"Java",
	"SQL",
	"Figma",
	"UX",
	"Product Strategy",
	"Agile",
	"Scrum",
	"Roadmap",
	"User Research",
	"Metrics",
	"Data Analysis",
}

// titleVocabulary is the ordered list of job titles detected in resume text.
var titleVocabulary = [...]string{
	"Product Manager",
	"Product Owner",
	"Business Analyst",
	"Associate Product Manager",
	"Senior Product Manager",
}

// Gap labels, in the order they are checked.
const (
	GapOutcomeLanguage = "Missing outcome-focused language"
	GapNoMetrics       = "No metrics mentioned"
	GapNoLeadership    = "No leadership evidence"
)

// gapRecommendations maps each gap label to its recommendation, in check order.
var gapRecommendations = [...]struct {
	gap            string
	recommendation string
}{
	{GapOutcomeLanguage, "Rewrite bullets to focus on outcomes, not tasks"},
	{GapNoMetrics, "Add measurable metrics to your achievements"},
	{GapNoLeadership, "Show initiatives you owned or led"},
}

// Skills returns a copy of the skill vocabulary in match order.
func Skills() []string {
	out := make([]string, len(skillVocabulary))
	copy(out, skillVocabulary[:])
	return out
}

// Titles returns a copy of the title vocabulary in match order.
func Titles() []string {
	out := make([]string, len(titleVocabulary))
	copy(out, titleVocabulary[:])
	return out
}

// GapLabels returns every gap label in check order.
func GapLabels() []string {
	out := make([]string, 0, len(gapRecommendations))
	for _, gr := range gapRecommendations {
		out = append(out, gr.gap)
	}
	return out
}

// RecommendationFor returns the fixed recommendation for a gap label.
// The boolean is false for labels outside the known set.
func RecommendationFor(gap string) (string, bool) {
	for _, gr := range gapRecommendations {
		if gr.gap == gap {
			return gr.recommendation, true
		}
	}
	return "", false
}
