package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/bindery/pkg/errors"
	"github.com/matzehuels/bindery/pkg/imposition"
	"github.com/matzehuels/bindery/pkg/observability"
	"github.com/matzehuels/bindery/pkg/render"
	"github.com/matzehuels/bindery/pkg/source"
)

// Runner executes imposition runs.
//
// The Runner holds no per-run state; the same Runner can be reused for
// any number of runs.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete open → plan → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	// Stage 1: Open
	openStart := time.Now()
	doc, err := source.OpenPDF(opts.Input)
	observability.Pipeline().OnSourceOpen(ctx, opts.Input, pageCount(doc), err)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	openTime := time.Since(openStart)
	r.Logger.Debug("opened source", "path", opts.Input, "pages", doc.PageCount(), "duration", openTime)

	// Stage 2: Plan
	result, err := r.Plan(ctx, doc, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.OpenTime = openTime
	logger := r.Logger.With("run", shortID(result.ID))

	// Stage 3: Render
	paper, _ := render.PaperByName(opts.Paper) // checked by ValidateForRender
	w := render.NewWriter(paper, logger)
	w.Margins = opts.Margins
	w.Title = opts.Input
	w.Subject = "bindery run " + result.ID
	w.Progress = opts.Progress

	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, result.Layout.TotalSlots())
	stats, err := w.WriteFile(ctx, opts.Output, opts.Input, result.Document, result.Layout)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, stats.Pages, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Render = stats

	logger.Info("wrote output",
		"path", opts.Output,
		"pages", stats.Pages,
		"blanks", stats.Blanks,
		"paper", w.Describe(),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Plan trims doc, plans signatures for the padded page count and resolves
// the output slots. It performs no I/O beyond reading doc.
func (r *Runner) Plan(ctx context.Context, doc source.Document, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	logger := r.Logger.With("run", shortID(id))

	trimmed, err := source.Trim(doc, opts.SkipStart, opts.SkipEnd)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	pages := trimmed.PageCount()
	padded := opts.PaddedPages(pages)
	logger.Info("source pages",
		"pages", pages,
		"skipped", opts.SkipStart+opts.SkipEnd,
		"blanks", opts.Padding.Total(),
		"padded", padded)

	planStart := time.Now()
	observability.Pipeline().OnPlanStart(ctx, padded)
	plan, layout, err := planLayout(pages, padded, opts)
	planTime := time.Since(planStart)
	observability.Pipeline().OnPlanComplete(ctx, plan.Sizes, planTime, err)
	if err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}

	if uerr := plan.Unsatisfied(); uerr != nil {
		logger.Info(errors.UserMessage(uerr))
	}
	logger.Info("using signature sizes", "sizes", plan.Sizes, "total", plan.Total)
	logger.Debug("page order", "order", layout.Order())
	logger.Debug("page map", "map", layout.String())

	return &Result{
		ID:       id,
		Document: trimmed,
		Plan:     plan,
		Layout:   layout,
		Stats: Stats{
			SourcePages: pages,
			PaddedPages: padded,
			PlanTime:    planTime,
		},
	}, nil
}

func planLayout(pages, padded int, opts Options) (imposition.SignaturePlan, *imposition.Layout, error) {
	plan, err := imposition.Plan(padded, opts.Signature)
	if err != nil {
		return imposition.SignaturePlan{}, nil, err
	}
	layout, err := imposition.NewLayout(plan.Sizes, opts.Padding, pages)
	if err != nil {
		return imposition.SignaturePlan{}, nil, err
	}
	return plan, layout, nil
}

func pageCount(doc *source.PDF) int {
	if doc == nil {
		return 0
	}
	return doc.PageCount()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
