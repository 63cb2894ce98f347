package analysis

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-parser/internal/types"
)

// Analyze runs the full pipeline over text. Skills, titles and years are
// independent scans and run concurrently; recommendations depend on gaps.
//
// The only error is ctx's own, returned when ctx is done before the scans start.
func Analyze(ctx context.Context, text string) (*types.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &types.AnalysisResult{}

	// Each goroutine writes a distinct field, so no locking is needed.
	var g errgroup.Group
	g.Go(func() error {
		result.Skills = MatchSkills(text)
		return nil
	})
	g.Go(func() error {
		result.Titles = MatchTitles(text)
		return nil
	})
	g.Go(func() error {
		result.YearsExperience = EstimateYears(text)
		return nil
	})
	g.Go(func() error {
		result.Gaps = DetectGaps(text)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Recommendations = Recommend(result.Gaps)
	return result, nil
}
