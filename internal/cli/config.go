package cli

import (
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bindery/pkg/errors"
	"github.com/matzehuels/bindery/pkg/imposition"
	"github.com/matzehuels/bindery/pkg/pipeline"
	"github.com/matzehuels/bindery/pkg/render"
)

// =============================================================================
// Config File
// =============================================================================

// fileConfig mirrors the TOML layout of a --config file:
//
//	[signature]
//	max_size = 16
//	min_size = 8
//	uneven = false
//
//	[padding]
//	start_blanks = 4
//	end_blanks = 3
//	soft_spine = false
//
//	[source]
//	skip_start = 0
//	skip_end = 0
//
//	[output]
//	paper = "a4"
//
//	[output.margins]
//	scale = 0.8
//	bottom = 0.15
//	odd = 0.15
//	even = 0.05
type fileConfig struct {
	Signature imposition.Constraints `toml:"signature"`
	Padding   imposition.Padding     `toml:"padding"`
	Source    sourceConfig           `toml:"source"`
	Output    outputConfig           `toml:"output"`
}

type sourceConfig struct {
	SkipStart int `toml:"skip_start"`
	SkipEnd   int `toml:"skip_end"`
}

type outputConfig struct {
	Paper   string         `toml:"paper"`
	Margins render.Margins `toml:"margins"`
}

// loadConfig decodes path over opts. Keys missing from the file keep the
// values already in opts; unknown keys are rejected.
func loadConfig(path string, opts *pipeline.Options) error {
	cfg := fileConfig{
		Signature: opts.Signature,
		Padding:   opts.Padding,
		Source:    sourceConfig{SkipStart: opts.SkipStart, SkipEnd: opts.SkipEnd},
		Output:    outputConfig{Paper: opts.Paper, Margins: opts.Margins},
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "reading config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	opts.Signature = cfg.Signature
	opts.Padding = cfg.Padding
	opts.SkipStart, opts.SkipEnd = cfg.Source.SkipStart, cfg.Source.SkipEnd
	opts.Paper = cfg.Output.Paper
	opts.Margins = cfg.Output.Margins
	return nil
}

// =============================================================================
// Planning Flags
// =============================================================================

// planFlags holds the flags shared by every command that plans signatures.
type planFlags struct {
	signatureSize    int
	minSignatureSize int
	startBlanks      int
	endBlanks        int
	uneven           bool
	softSpine        bool
	skipStart        int
	skipEnd          int
	paper            string
}

func (f *planFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVarP(&f.signatureSize, "signature-size", "s", pipeline.DefaultSignatureSize, "maximum number of pages per signature")
	fs.IntVarP(&f.minSignatureSize, "min-signature-size", "m", pipeline.DefaultMinSignatureSize, "minimum signature size")
	fs.IntVarP(&f.startBlanks, "start-blanks", "S", pipeline.DefaultStartBlanks, "number of blank pages at start")
	fs.IntVarP(&f.endBlanks, "end-blanks", "E", pipeline.DefaultEndBlanks, "minimum number of blank pages at end")
	fs.BoolVarP(&f.uneven, "uneven", "u", false, "make 1 or 2 signatures smaller as necessary (default: spread over more signatures)")
	fs.BoolVarP(&f.softSpine, "soft-spine", "f", false, "add a blank leaf to the beginning of the last signature to wrap round the spine")
	fs.IntVarP(&f.skipStart, "skip-start", "x", 0, "skip this many pages at beginning of input file")
	fs.IntVarP(&f.skipEnd, "skip-end", "X", 0, "skip this many pages at end of input file")
	fs.StringVar(&f.paper, "paper", pipeline.DefaultPaper, "output paper: "+strings.Join(render.PaperNames(), ", "))

	_ = cmd.RegisterFlagCompletionFunc("paper", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return render.PaperNames(), cobra.ShellCompDirectiveNoFileComp
	})
}

// buildOptions layers defaults, the config file and explicitly set flags,
// in that order, and validates the result.
func (c *CLI) buildOptions(cmd *cobra.Command, f *planFlags) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	if c.configPath != "" {
		if err := loadConfig(c.configPath, &opts); err != nil {
			return opts, err
		}
	}

	fs := cmd.Flags()
	if fs.Changed("signature-size") {
		opts.Signature.MaxSize = f.signatureSize
		// -s below the minimum lowers the minimum with it unless -m is given
		if !fs.Changed("min-signature-size") && opts.Signature.MinSize > f.signatureSize {
			opts.Signature.MinSize = f.signatureSize
		}
	}
	if fs.Changed("min-signature-size") {
		opts.Signature.MinSize = f.minSignatureSize
	}
	if fs.Changed("start-blanks") {
		opts.Padding.StartBlanks = f.startBlanks
	}
	if fs.Changed("end-blanks") {
		opts.Padding.EndBlanks = f.endBlanks
	}
	if fs.Changed("uneven") {
		opts.Signature.Uneven = f.uneven
	}
	if fs.Changed("soft-spine") {
		opts.Padding.SoftSpine = f.softSpine
	}
	if fs.Changed("skip-start") {
		opts.SkipStart = f.skipStart
	}
	if fs.Changed("skip-end") {
		opts.SkipEnd = f.skipEnd
	}
	if fs.Changed("paper") {
		opts.Paper = f.paper
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}
