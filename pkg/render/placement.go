package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/matzehuels/bindery/pkg/errors"
	"github.com/matzehuels/bindery/pkg/source"
)

// Paper is an output page size in points.
type Paper struct {
	Name   string
	Width  float64
	Height float64
}

// Named paper sizes.
var (
	A4     = Paper{Name: "a4", Width: 595, Height: 842}
	A5     = Paper{Name: "a5", Width: 420, Height: 595}
	Letter = Paper{Name: "letter", Width: 612, Height: 792}
	Legal  = Paper{Name: "legal", Width: 612, Height: 1008}
)

var papers = map[string]Paper{
	A4.Name:     A4,
	A5.Name:     A5,
	Letter.Name: Letter,
	Legal.Name:  Legal,
}

// PaperNames returns the supported paper names, sorted.
func PaperNames() []string {
	names := make([]string, 0, len(papers))
	for name := range papers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PaperByName looks up a paper size case-insensitively.
func PaperByName(name string) (Paper, error) {
	p, ok := papers[strings.ToLower(name)]
	if !ok {
		return Paper{}, errors.New(errors.ErrCodeInvalidConfig,
			"unknown paper %q (must be one of %s)", name, strings.Join(PaperNames(), ", "))
	}
	return p, nil
}

// String returns the paper name and dimensions.
func (p Paper) String() string {
	return fmt.Sprintf("%s (%gx%g)", p.Name, p.Width, p.Height)
}

// Margins controls how a source page is fitted onto an output page. All
// values are fractions of the output paper.
type Margins struct {
	// Scale shrinks the fitted page, leaving room for margins.
	Scale float64 `toml:"scale"`
	// Bottom is the bottom margin as a fraction of the paper height.
	Bottom float64 `toml:"bottom"`
	// Odd is the left margin for even source indices (odd page numbers).
	Odd float64 `toml:"odd"`
	// Even is the left margin for odd source indices (even page numbers).
	Even float64 `toml:"even"`
}

// DefaultMargins leave a wider gutter on recto pages than on verso pages.
func DefaultMargins() Margins {
	return Margins{Scale: 0.8, Bottom: 0.15, Odd: 0.15, Even: 0.05}
}

// Validate checks that the scale is in (0, 1] and margins are in [0, 1).
func (m Margins) Validate() error {
	if m.Scale <= 0 || m.Scale > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "margin scale must be in (0, 1] (got %g)", m.Scale)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{{"bottom", m.Bottom}, {"odd", m.Odd}, {"even", m.Even}} {
		if f.v < 0 || f.v >= 1 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s margin must be in [0, 1) (got %g)", f.name, f.v)
		}
	}
	return nil
}

// Placement positions a scaled source page on an output page. X and Y are
// the lower-left corner in PDF user space (origin bottom-left).
type Placement struct {
	Scale  float64
	X, Y   float64
	Width  float64
	Height float64
}

// Place fits a source page of size src onto paper. The page is scaled
// uniformly to fit the paper and then by m.Scale. Source page index selects
// the horizontal margin, so facing pages mirror their gutter.
func Place(paper Paper, m Margins, src source.Size, index int) Placement {
	scale := min(paper.Width/src.Width, paper.Height/src.Height) * m.Scale

	x := paper.Width * m.Odd
	if index%2 == 1 {
		x = paper.Width * m.Even
	}
	return Placement{
		Scale:  scale,
		X:      x,
		Y:      paper.Height * m.Bottom,
		Width:  src.Width * scale,
		Height: src.Height * scale,
	}
}

// Top returns the distance from the top of paper to the placement's upper
// edge, as needed by top-left based page APIs.
func (pl Placement) Top(paper Paper) float64 {
	return paper.Height - pl.Y - pl.Height
}
