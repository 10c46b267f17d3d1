package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bindery/pkg/errors"
	"github.com/matzehuels/bindery/pkg/imposition"
	"github.com/matzehuels/bindery/pkg/pipeline"
	"github.com/matzehuels/bindery/pkg/render"
	"github.com/matzehuels/bindery/pkg/source"
)

// planCommand creates the plan command, a dry run of the signature planner.
func (c *CLI) planCommand() *cobra.Command {
	var flags planFlags
	var sheets bool

	cmd := &cobra.Command{
		Use:   "plan <pages|input.pdf>",
		Short: "Show the signatures and sheet map without writing a PDF",
		Long: `Plan signatures for a page count or an existing PDF and print the result.

The argument is either a number of pages or the path of a PDF. Nothing is
written; use "bindery impose" to produce the imposed file.`,
		Example: `  bindery plan 120
  bindery plan -s 12 --uneven book.pdf
  bindery plan --sheets -f book.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.buildOptions(cmd, &flags)
			if err != nil {
				return err
			}
			result, err := c.plan(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			printPlan(args[0], opts, result, sheets)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&sheets, "sheets", false, "also print which pages land on each side of every sheet")

	return cmd
}

// plan opens arg as a page count or a PDF and plans it.
func (c *CLI) plan(ctx context.Context, arg string, opts pipeline.Options) (*pipeline.Result, error) {
	prog := newProgress(c.Logger)
	doc, err := openDocument(arg)
	if err != nil {
		return nil, err
	}
	result, err := c.newRunner().Plan(ctx, doc, opts)
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Planned %d signatures", len(result.Plan.Sizes)))
	return result, nil
}

// openDocument treats a numeric argument as a page count of A4 pages and
// anything else as the path of a PDF.
func openDocument(arg string) (source.Document, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n <= 0 {
			return nil, errors.New(errors.ErrCodeSourceBounds, "page count must be positive (got %d)", n)
		}
		return source.Virtual(n, source.Size{Width: render.A4.Width, Height: render.A4.Height}), nil
	}
	return source.OpenPDF(arg)
}

// =============================================================================
// Output
// =============================================================================

func printPlan(name string, opts pipeline.Options, result *pipeline.Result, sheets bool) {
	p := result.Plan
	fmt.Println(StyleTitle.Render(name))
	printKeyValue("pages", fmt.Sprintf("%d source + %d blank = %d", result.Stats.SourcePages, opts.Padding.Total(), p.Pages))
	printKeyValue("signatures", formatSizes(p.Sizes))
	printKeyValue("output", fmt.Sprintf("%d pages on %d sheets", p.Total, p.Total/imposition.FoldUnit))
	if p.FloorHit {
		printWarning("%s", errors.UserMessage(p.Unsatisfied()))
	}
	fmt.Println()
	fmt.Println(signatureTable(result.Document, result.Layout))
	if sheets {
		fmt.Println()
		fmt.Println(sheetTable(result.Document, result.Layout))
	}
}

func formatSizes(sizes []int) string {
	parts := make([]string, len(sizes))
	for i, s := range sizes {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, " + ")
}

// signatureTable renders one row per signature: its size, the output pages
// it occupies and the source pages it carries.
func signatureTable(doc source.Document, l *imposition.Layout) string {
	slots := l.Slots()
	rows := make([][]string, 0, len(l.Sizes()))
	pos := 0
	for i, size := range l.Sizes() {
		first, last, blanks := 0, 0, 0
		for _, s := range slots[pos : pos+size] {
			idx, ok := s.Source()
			if !ok {
				blanks++
				continue
			}
			n := doc.PageNumber(idx)
			if first == 0 || n < first {
				first = n
			}
			last = max(last, n)
		}
		content := "—"
		if first > 0 {
			content = fmt.Sprintf("%d–%d", first, last)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(size),
			strconv.Itoa(size / imposition.FoldUnit),
			fmt.Sprintf("%d–%d", pos+1, pos+size),
			content,
			strconv.Itoa(blanks),
		})
		pos += size
	}
	return newTable("#", "Pages", "Sheets", "Output", "Content", "Blanks").Rows(rows...).Render()
}

// sheetTable renders the slots printed on each side of every sheet.
func sheetTable(doc source.Document, l *imposition.Layout) string {
	var rows [][]string
	for _, sh := range l.Sheets() {
		rows = append(rows, []string{
			strconv.Itoa(sh.Signature + 1),
			strconv.Itoa(sh.Index + 1),
			sideLabel(doc, sh.Front),
			sideLabel(doc, sh.Back),
		})
	}
	return newTable("Sig", "Sheet", "Front", "Back").Rows(rows...).Render()
}

func sideLabel(doc source.Document, side [2]imposition.Slot) string {
	return slotLabel(doc, side[0]) + " | " + slotLabel(doc, side[1])
}

// slotLabel shows a real slot as its page number in the source file.
func slotLabel(doc source.Document, s imposition.Slot) string {
	if idx, ok := s.Source(); ok {
		return strconv.Itoa(doc.PageNumber(idx))
	}
	return iconBlank
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 { // header
				return styleTableHeader.Padding(0, 1)
			}
			return styleCell
		})
}
