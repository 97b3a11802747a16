package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mosesab/viralytics/internal/models"
)

// Runner drives the stages. RunAll walks them in order with a pause check
// before each one; RunStage fires a single stage on demand.
type Runner struct {
	store     Store
	events    Events
	stages    []stage
	stepDelay time.Duration
}

type stage struct {
	name string
	run  func(context.Context, int64) error
}

func NewRunner(store Store, events Events, p *Pipeline) *Runner {
	return &Runner{
		store:  store,
		events: events,
		stages: []stage{
			{models.StepTrends, p.RunTrends},
			{models.StepFetch, p.RunFetch},
			{models.StepAnalyze, p.RunAnalyze},
			{models.StepGenerate, p.RunGenerate},
		},
		stepDelay: time.Second,
	}
}

// RunStage runs one named stage. The pause flag is not consulted; an
// explicit single-stage trigger is taken as intent to run.
func (r *Runner) RunStage(ctx context.Context, step string, projectID int64) error {
	for _, st := range r.stages {
		if st.name == step {
			return st.run(ctx, projectID)
		}
	}
	return fmt.Errorf("unknown pipeline step %q", step)
}

// RunAll walks every stage in order. Before each stage the project's pause
// flag is re-read; a paused (or missing) project halts the run cleanly. A
// stage error halts the remaining stages. Stages are separated by a short
// delay so status consumers can follow along.
func (r *Runner) RunAll(ctx context.Context, projectID int64) error {
	runID := uuid.NewString()[:8]
	r.events.Log(ctx, fmt.Sprintf("Starting full workflow run %s for project %d.", runID, projectID))

	for i, st := range r.stages {
		paused, err := r.store.IsPaused(ctx, projectID)
		if err != nil {
			// Unknown pause state counts as paused.
			r.events.Error(ctx, fmt.Sprintf("Run %s: could not read pause state: %v", runID, err))
			paused = true
		}
		if paused {
			r.events.Log(ctx, fmt.Sprintf("Run %s: project %d is paused, stopping before step %s.", runID, projectID, st.name))
			r.events.Status(ctx, st.name, models.StatusPaused, projectID)
			return nil
		}

		if err := st.run(ctx, projectID); err != nil {
			r.events.Error(ctx, fmt.Sprintf("Run %s halted at step %s.", runID, st.name))
			return err
		}

		if i < len(r.stages)-1 {
			select {
			case <-time.After(r.stepDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	r.events.Log(ctx, fmt.Sprintf("Run %s: full workflow completed successfully!", runID))
	r.events.WorkflowComplete(ctx, projectID)
	return nil
}
