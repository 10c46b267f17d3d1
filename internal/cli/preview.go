package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bindery/pkg/imposition"
	"github.com/matzehuels/bindery/pkg/source"
)

// previewCommand creates the preview command, an interactive sheet browser.
func (c *CLI) previewCommand() *cobra.Command {
	var flags planFlags

	cmd := &cobra.Command{
		Use:   "preview <pages|input.pdf>",
		Short: "Browse the sheets of a plan interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.buildOptions(cmd, &flags)
			if err != nil {
				return err
			}
			result, err := c.plan(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			model := NewSheetListModel(result.Document, result.Layout)
			_, err = tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	flags.register(cmd)

	return cmd
}

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// SheetListModel - Interactive sheet browser
// =============================================================================

// SheetListModel is the bubbletea model for browsing the sheets of a layout.
type SheetListModel struct {
	Doc    source.Document
	Sheets []imposition.Sheet
	Sizes  []int
	Cursor int
	Height int
	Offset int
}

// NewSheetListModel creates a sheet list model for layout.
func NewSheetListModel(doc source.Document, layout *imposition.Layout) SheetListModel {
	return SheetListModel{
		Doc:    doc,
		Sheets: layout.Sheets(),
		Sizes:  layout.Sizes(),
		Height: 15,
	}
}

func (m SheetListModel) Init() tea.Cmd {
	return nil
}

func (m SheetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.moveTo(m.Cursor - 1)
		case "down", "j":
			m.moveTo(m.Cursor + 1)
		case "left", "h":
			m.moveTo(m.signatureStart(m.Cursor - 1))
		case "right", "l", "tab":
			m.moveTo(m.nextSignature())
		case "home", "g":
			m.moveTo(0)
		case "end", "G":
			m.moveTo(len(m.Sheets) - 1)
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		m.moveTo(m.Cursor)
	}
	return m, nil
}

// moveTo sets the cursor, clamped to the sheet list, and scrolls it into view.
func (m *SheetListModel) moveTo(i int) {
	i = max(0, min(i, len(m.Sheets)-1))
	m.Cursor = i
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// signatureStart returns the first sheet of the signature holding sheet i.
func (m SheetListModel) signatureStart(i int) int {
	if i < 0 {
		return 0
	}
	for i > 0 && m.Sheets[i-1].Signature == m.Sheets[i].Signature {
		i--
	}
	return i
}

func (m SheetListModel) nextSignature() int {
	sig := m.Sheets[m.Cursor].Signature
	for i := m.Cursor; i < len(m.Sheets); i++ {
		if m.Sheets[i].Signature != sig {
			return i
		}
	}
	return m.Cursor
}

func (m SheetListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Sheets"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render("signatures " + formatSizes(m.Sizes)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ sheet  ←/→ signature  q quit"))
	b.WriteString("\n\n")

	if len(m.Sheets) == 0 {
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Sheets))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		sh := m.Sheets[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			strconv.Itoa(sh.Signature + 1),
			strconv.Itoa(sh.Index + 1),
			sideLabel(m.Doc, sh.Front),
			sideLabel(m.Doc, sh.Back),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers("", "Sig", "Sheet", "Front", "Back").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleTableHeader
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(m.detail(m.Sheets[m.Cursor]))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Sheets))))

	return b.String()
}

// detail describes every slot of sh, naming the reason for each blank.
func (m SheetListModel) detail(sh imposition.Sheet) string {
	slots := []imposition.Slot{sh.Front[0], sh.Front[1], sh.Back[0], sh.Back[1]}
	parts := make([]string, len(slots))
	for i, s := range slots {
		if _, ok := s.Source(); ok {
			parts[i] = fmt.Sprintf("%d: page %s", sh.Position+i+1, slotLabel(m.Doc, s))
		} else {
			parts[i] = fmt.Sprintf("%d: %s blank", sh.Position+i+1, s.Reason())
		}
	}
	return "  " + listDimStyle.Render(strings.Join(parts, "   "))
}
