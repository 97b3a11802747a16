// Package pipeline implements the four-stage curation workflow: select
// trends, fetch candidate videos, analyze and rank them, then package the
// top picks with generated scripts and downloaded media.
package pipeline

import (
	"context"
	"fmt"

	"github.com/mosesab/viralytics/internal/models"
)

// Config holds the stage knobs that come from the environment.
type Config struct {
	Region     string
	FetchCount int
}

// The stage components behind small interfaces so stages can be exercised
// without live providers.
type trendSelector interface {
	Candidates(ctx context.Context) ([]string, error)
	Select(ctx context.Context, channelDescription string, candidates []string) ([]models.SelectedTrend, error)
}

type videoCollector interface {
	FetchTrending(ctx context.Context, keyword string, count int) ([]models.Video, error)
}

type videoAnalyzer interface {
	AnalyzeAndRank(ctx context.Context, videos []models.Video) Ranking
}

type videoGenerator interface {
	ProcessAll(ctx context.Context, projectID int64, videos []models.Video) []Package
	WriteManifest(projectID int64, packages []Package) (string, error)
}

// Pipeline wires the stage components to persistence and the event stream.
// Each RunX method is one self-contained stage invocation: it emits running,
// does the work, and emits complete or error.
type Pipeline struct {
	store     Store
	events    Events
	selector  trendSelector
	collector videoCollector
	analyzer  videoAnalyzer
	generator videoGenerator
	cfg       Config
}

func New(store Store, events Events, selector *TrendSelector, collector *Collector, analyzer *Analyzer, generator *Generator, cfg Config) *Pipeline {
	return &Pipeline{
		store:     store,
		events:    events,
		selector:  selector,
		collector: collector,
		analyzer:  analyzer,
		generator: generator,
		cfg:       cfg,
	}
}

// Stage maps a step name to its runner.
func (p *Pipeline) Stage(step string) (func(context.Context, int64) error, bool) {
	switch step {
	case models.StepTrends:
		return p.RunTrends, true
	case models.StepFetch:
		return p.RunFetch, true
	case models.StepAnalyze:
		return p.RunAnalyze, true
	case models.StepGenerate:
		return p.RunGenerate, true
	}
	return nil, false
}

// RunTrends gathers trending search terms and stores the model's picks for
// the project.
func (p *Pipeline) RunTrends(ctx context.Context, projectID int64) error {
	p.events.Status(ctx, models.StepTrends, models.StatusRunning, projectID)

	project, err := p.store.GetProject(ctx, projectID)
	if err != nil {
		return p.fail(ctx, models.StepTrends, projectID, err)
	}

	p.events.Log(ctx, "Fetching trending search terms...")
	candidates, err := p.selector.Candidates(ctx)
	if err != nil {
		return p.fail(ctx, models.StepTrends, projectID, err)
	}
	p.events.Log(ctx, fmt.Sprintf("Found %d trend candidates, asking the model to pick...", len(candidates)))

	trends, err := p.selector.Select(ctx, project.ChannelDescription, candidates)
	if err != nil {
		return p.fail(ctx, models.StepTrends, projectID, err)
	}

	if err := p.store.SaveTrends(ctx, projectID, trends); err != nil {
		return p.fail(ctx, models.StepTrends, projectID, err)
	}

	p.events.Log(ctx, fmt.Sprintf("Saved %d selected trends for project %d.", len(trends), projectID))
	p.events.Status(ctx, models.StepTrends, models.StatusComplete, projectID)
	return nil
}

// RunFetch pulls the currently trending videos for the configured region
// and stores the ones not seen before.
func (p *Pipeline) RunFetch(ctx context.Context, projectID int64) error {
	p.events.Status(ctx, models.StepFetch, models.StatusRunning, projectID)

	p.events.Log(ctx, fmt.Sprintf("Fetching up to %d trending videos for region %s...", p.cfg.FetchCount, p.cfg.Region))
	videos, err := p.collector.FetchTrending(ctx, p.cfg.Region, p.cfg.FetchCount)
	if err != nil {
		return p.fail(ctx, models.StepFetch, projectID, err)
	}

	inserted, err := p.store.SaveVideos(ctx, projectID, p.cfg.Region, videos)
	if err != nil {
		return p.fail(ctx, models.StepFetch, projectID, err)
	}

	p.events.Log(ctx, fmt.Sprintf("Stored %d new videos (%d already known).", inserted, len(videos)-inserted))
	p.events.Status(ctx, models.StepFetch, models.StatusComplete, projectID)
	return nil
}

// RunAnalyze scores every video still awaiting analysis and marks the top
// picks.
func (p *Pipeline) RunAnalyze(ctx context.Context, projectID int64) error {
	p.events.Status(ctx, models.StepAnalyze, models.StatusRunning, projectID)

	videos, err := p.store.UnanalyzedVideos(ctx, projectID)
	if err != nil {
		return p.fail(ctx, models.StepAnalyze, projectID, err)
	}
	if len(videos) == 0 {
		p.events.Log(ctx, "No videos awaiting analysis.")
		p.events.Status(ctx, models.StepAnalyze, models.StatusComplete, projectID)
		return nil
	}

	p.events.Log(ctx, fmt.Sprintf("Analyzing %d videos...", len(videos)))
	ranking := p.analyzer.AnalyzeAndRank(ctx, videos)
	if ranking.Failed > 0 {
		p.events.Log(ctx, fmt.Sprintf("%d videos failed analysis and were skipped.", ranking.Failed))
	}

	topIDs := make(map[string]bool, len(ranking.Top))
	for _, v := range ranking.Top {
		topIDs[v.VideoID] = true
	}
	if err := p.store.ApplyAnalysis(ctx, projectID, ranking.All, topIDs); err != nil {
		return p.fail(ctx, models.StepAnalyze, projectID, err)
	}

	p.events.Log(ctx, fmt.Sprintf("Analysis complete: %d analyzed, %d top picks.", len(ranking.All), len(ranking.Top)))
	p.events.Status(ctx, models.StepAnalyze, models.StatusComplete, projectID)
	return nil
}

// RunGenerate packages every top pick that has no script yet and writes the
// compilation manifest. The manifest is written even when nothing was
// pending so downstream tooling always finds one.
func (p *Pipeline) RunGenerate(ctx context.Context, projectID int64) error {
	p.events.Status(ctx, models.StepGenerate, models.StatusRunning, projectID)

	videos, err := p.store.TopUnscriptedVideos(ctx, projectID)
	if err != nil {
		return p.fail(ctx, models.StepGenerate, projectID, err)
	}

	var packages []Package
	if len(videos) == 0 {
		p.events.Log(ctx, "No top picks awaiting scripts.")
	} else {
		p.events.Log(ctx, fmt.Sprintf("Generating content packages for %d top picks...", len(videos)))
		packages = p.generator.ProcessAll(ctx, projectID, videos)

		for _, pkg := range packages {
			if err := p.store.SaveScript(ctx, pkg.VideoDBID, pkg.GeneratedScript, pkg.LocalFilePath); err != nil {
				p.events.Error(ctx, fmt.Sprintf("Could not save script for video %s: %v", pkg.VideoID, err))
			}
		}
	}

	path, err := p.generator.WriteManifest(projectID, packages)
	if err != nil {
		return p.fail(ctx, models.StepGenerate, projectID, err)
	}

	p.events.Log(ctx, fmt.Sprintf("Generated %d content packages, manifest at %s.", len(packages), path))
	p.events.Status(ctx, models.StepGenerate, models.StatusComplete, projectID)
	return nil
}

func (p *Pipeline) fail(ctx context.Context, step string, projectID int64, err error) error {
	p.events.Error(ctx, fmt.Sprintf("Step %s failed: %v", step, err))
	p.events.Status(ctx, step, models.StatusError, projectID)
	return err
}
