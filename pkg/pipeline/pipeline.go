// Package pipeline provides the imposition pipeline for bindery.
//
// This package implements the complete open → plan → render pipeline used by
// every CLI command, so that flag handling, defaults and validation behave
// the same whether a run writes a PDF or only prints a plan.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Open: read the source document and trim skipped pages
//  2. Plan: choose signature sizes and resolve every output slot
//  3. Render: write one output page per slot
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.DefaultOptions()
//	opts.Input = "book.pdf"
//	opts.Output = "book-signatures.pdf"
//	result, err := runner.Execute(ctx, opts)
//
// Plan without rendering:
//
//	doc := source.Virtual(120, source.Size{Width: 595, Height: 842})
//	result, err := runner.Plan(ctx, doc, opts)
//	fmt.Println(result.Plan.Sizes)
package pipeline

import (
	"path/filepath"
	"time"

	"github.com/matzehuels/bindery/pkg/errors"
	"github.com/matzehuels/bindery/pkg/imposition"
	"github.com/matzehuels/bindery/pkg/render"
	"github.com/matzehuels/bindery/pkg/source"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultSignatureSize is the default maximum pages per signature.
	DefaultSignatureSize = 16

	// DefaultMinSignatureSize is the default minimum pages per signature.
	DefaultMinSignatureSize = 8

	// DefaultStartBlanks is the default number of leading blank pages.
	DefaultStartBlanks = 4

	// DefaultEndBlanks is the default minimum number of trailing blank pages.
	DefaultEndBlanks = 3

	// DefaultPaper is the default output paper name.
	DefaultPaper = "a4"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for an imposition run.
type Options struct {
	// Documents
	Input  string `json:"input,omitempty"`
	Output string `json:"output,omitempty"`

	// Source trimming
	SkipStart int `json:"skip_start,omitempty"`
	SkipEnd   int `json:"skip_end,omitempty"`

	// Planning
	Signature imposition.Constraints `json:"signature"`
	Padding   imposition.Padding     `json:"padding"`

	// Output page
	Paper   string         `json:"paper,omitempty"`
	Margins render.Margins `json:"margins"`

	// Progress, when set, is called after each rendered output page.
	Progress func(done, total int) `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// DefaultOptions returns options matching the CLI defaults. Blank counts
// have meaningful zero values, so they are only defaulted here and never
// inferred from zero fields.
func DefaultOptions() Options {
	return Options{
		Signature: imposition.Constraints{
			MaxSize: DefaultSignatureSize,
			MinSize: DefaultMinSignatureSize,
		},
		Padding: imposition.Padding{
			StartBlanks: DefaultStartBlanks,
			EndBlanks:   DefaultEndBlanks,
		},
		Paper:   DefaultPaper,
		Margins: render.DefaultMargins(),
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies the run in logs and output metadata.
	ID string

	// Document is the trimmed source document.
	Document source.Document

	// Plan holds the chosen signature sizes.
	Plan imposition.SignaturePlan

	// Layout maps every output page to a source page or blank.
	Layout *imposition.Layout

	// Render summarises the written output. Zero for plan-only runs.
	Render render.Stats

	// Stats contains timing information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SourcePages int
	PaddedPages int
	OpenTime    time.Duration
	PlanTime    time.Duration
	RenderTime  time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and validates everything the
// planner needs. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Signature.Validate(); err != nil {
		return err
	}
	if err := o.Padding.Validate(); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("skip start", o.SkipStart); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("skip end", o.SkipEnd); err != nil {
		return err
	}
	if _, err := render.PaperByName(o.Paper); err != nil {
		return err
	}
	if err := o.Margins.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults fills unset sizes, paper and margins.
func (o *Options) SetDefaults() {
	if o.Signature.MaxSize == 0 {
		o.Signature.MaxSize = DefaultSignatureSize
	}
	if o.Signature.MinSize == 0 {
		o.Signature.MinSize = min(DefaultMinSignatureSize, o.Signature.MaxSize)
	}
	if o.Paper == "" {
		o.Paper = DefaultPaper
	}
	if o.Margins == (render.Margins{}) {
		o.Margins = render.DefaultMargins()
	}
}

// ValidateForRender checks the document paths in addition to
// ValidateAndSetDefaults.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input file is required")
	}
	if o.Output == "" {
		return errors.New(errors.ErrCodeInvalidInput, "output file is required")
	}
	if filepath.Clean(o.Input) == filepath.Clean(o.Output) {
		return errors.New(errors.ErrCodeInvalidInput, "output would overwrite input %s", o.Input)
	}
	if err := errors.ValidateInputFile(o.Input); err != nil {
		return err
	}
	return errors.ValidateOutputFile(o.Output)
}

// PaddedPages returns the page count the planner works with for n source
// pages.
func (o *Options) PaddedPages(n int) int {
	return n + o.Padding.Total()
}
