package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bindery/pkg/imposition"
	"github.com/matzehuels/bindery/pkg/pipeline"
)

// imposeCommand creates the impose command, which writes the imposed PDF.
func (c *CLI) imposeCommand() *cobra.Command {
	var flags planFlags

	cmd := &cobra.Command{
		Use:   "impose <input.pdf> <output.pdf>",
		Short: "Rearrange a PDF into signatures ready for 2-up duplex printing",
		Long: `Impose a PDF into folded signatures.

Blank pages are added at the start and end, the padded pages are split into
signatures no larger than --signature-size, and every page is written in the
order a 2-up duplex printer needs so that each stack of sheets folds into one
signature.`,
		Example: `  bindery impose book.pdf book-signatures.pdf
  bindery impose -s 12 -m 8 --uneven book.pdf out.pdf
  bindery impose -x 2 -X 1 --soft-spine --paper letter book.pdf out.pdf`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.buildOptions(cmd, &flags)
			if err != nil {
				return err
			}
			opts.Input, opts.Output = args[0], args[1]
			return c.runImpose(cmd.Context(), opts)
		},
	}

	flags.register(cmd)

	return cmd
}

func (c *CLI) runImpose(ctx context.Context, opts pipeline.Options) error {
	name := filepath.Base(opts.Input)
	spinner := newSpinnerWithContext(ctx, "Imposing "+name+"...")
	opts.Progress = func(done, total int) {
		spinner.SetMessage(fmt.Sprintf("Imposing %s (%d/%d)...", name, done, total))
	}
	spinner.Start()

	result, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Imposition failed")
		return err
	}

	spinner.StopWithSuccess(fmt.Sprintf("Imposed %d pages into %d signatures", result.Stats.SourcePages, len(result.Plan.Sizes)))
	printFile(opts.Output)
	printStats(
		fmt.Sprintf("signatures %s", formatSizes(result.Plan.Sizes)),
		fmt.Sprintf("%d sheets", result.Render.Pages/imposition.FoldUnit),
		fmt.Sprintf("%d blanks", result.Render.Blanks),
	)
	if result.Plan.FloorHit {
		printWarning("minimum signature size reached, %d extra blank pages", result.Plan.Slack())
	}
	printNextStep("Inspect the sheets", fmt.Sprintf("%s preview %s", appName, opts.Input))
	return nil
}
