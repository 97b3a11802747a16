package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mosesab/viralytics/internal/models"
	"github.com/mosesab/viralytics/internal/retry"
	"github.com/mosesab/viralytics/internal/services"
)

// TrendSelector gathers trending search terms and asks the generative model
// to pick the ones worth covering for a given channel.
type TrendSelector struct {
	source TrendsSource
	llm    TextGenerator
	region string
}

const realtimeCandidateCount = 20

var trendFetchPolicy = retry.Policy{
	Attempts:   3,
	Initial:    1 * time.Second,
	Max:        10 * time.Second,
	Multiplier: 2,
}

var trendSelectPolicy = retry.Policy{
	Attempts:   3,
	Initial:    2 * time.Second,
	Max:        15 * time.Second,
	Multiplier: 2,
}

func NewTrendSelector(source TrendsSource, llm TextGenerator, region string) *TrendSelector {
	return &TrendSelector{source: source, llm: llm, region: region}
}

// Candidates merges the daily and realtime trending feeds into one
// deduplicated list, daily feed first, original order preserved. Both feeds
// are fetched together under one retry budget; if the budget runs out the
// error wraps ErrSourceUnavailable.
func (s *TrendSelector) Candidates(ctx context.Context) ([]string, error) {
	candidates, err := retry.Do(ctx, trendFetchPolicy, func() ([]string, error) {
		daily, err := s.source.Daily(ctx)
		if err != nil {
			return nil, err
		}
		realtime, err := s.source.Realtime(ctx, realtimeCandidateCount, "all", s.region)
		if err != nil {
			return nil, err
		}
		return append(daily, realtime...), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	seen := make(map[string]bool, len(candidates))
	deduped := candidates[:0]
	for _, c := range candidates {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		deduped = append(deduped, c)
	}
	return deduped, nil
}

// Select asks the model to pick trends from the candidate list. A response
// that fails to parse, or parses to an empty selection, is treated like a
// transient provider error and retried; exhaustion surfaces ErrNoSelection.
func (s *TrendSelector) Select(ctx context.Context, channelDescription string, candidates []string) ([]models.SelectedTrend, error) {
	params := services.GenerateParams{
		Prompt:            buildTrendPrompt(channelDescription, candidates),
		SystemInstruction: trendSystemInstruction,
		Schema:            trendSelectionSchema,
	}

	trends, err := retry.Do(ctx, trendSelectPolicy, func() ([]models.SelectedTrend, error) {
		raw, err := s.llm.Generate(ctx, params)
		if err != nil {
			return nil, err
		}
		var selection models.TrendSelection
		if err := json.Unmarshal(raw, &selection); err != nil {
			return nil, &MalformedResponseError{Cause: err}
		}
		if len(selection.SelectedTrends) == 0 {
			return nil, &MalformedResponseError{Cause: fmt.Errorf("selection is empty")}
		}
		return selection.SelectedTrends, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSelection, err)
	}
	return trends, nil
}
