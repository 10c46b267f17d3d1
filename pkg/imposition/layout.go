package imposition

import (
	"github.com/matzehuels/bindery/pkg/errors"
)

// softSpinePages is the size of the blank leaf wrapped around the spine.
const softSpinePages = 2

// Padding configures the blank pages added around the source pages.
type Padding struct {
	// StartBlanks is the number of blank pages before the first source page.
	StartBlanks int `json:"start_blanks" toml:"start_blanks"`
	// EndBlanks is the minimum number of blank pages after the last one.
	EndBlanks int `json:"end_blanks" toml:"end_blanks"`
	// SoftSpine reserves a blank leaf at the start of the final signature.
	SoftSpine bool `json:"soft_spine" toml:"soft_spine"`
}

// Total returns the number of padding pages the plan must make room for.
func (p Padding) Total() int {
	n := p.StartBlanks + p.EndBlanks
	if p.SoftSpine {
		n += softSpinePages
	}
	return n
}

// Validate rejects negative blank counts.
func (p Padding) Validate() error {
	if err := errors.ValidateNonNegative("start blanks", p.StartBlanks); err != nil {
		return err
	}
	return errors.ValidateNonNegative("end blanks", p.EndBlanks)
}

// Layout maps every output position to a [Slot]. It is computed once by
// [NewLayout] and immutable afterwards.
type Layout struct {
	sizes []int
	order []int
	slots []Slot
	pages int
	pad   Padding
}

// NewLayout sequences the signatures in sizes and resolves each output
// position against a source of pageCount pages.
//
// sizes must be non-empty positive multiples of 4 whose sum is at least
// pageCount plus the padding total; [Plan] guarantees this.
func NewLayout(sizes []int, pad Padding, pageCount int) (*Layout, error) {
	if err := pad.Validate(); err != nil {
		return nil, err
	}
	if pageCount < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "page count must not be negative (got %d)", pageCount)
	}
	if len(sizes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "no signatures to sequence")
	}
	total := 0
	for i, s := range sizes {
		if s <= 0 || s%FoldUnit != 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig,
				"signature %d has size %d, not a positive multiple of %d", i+1, s, FoldUnit)
		}
		total += s
	}
	if need := pageCount + pad.Total(); total < need {
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"signatures hold %d pages, need at least %d", total, need)
	}

	l := &Layout{
		sizes: append([]int(nil), sizes...),
		order: Order(sizes),
		slots: make([]Slot, total),
		pages: pageCount,
		pad:   pad,
	}
	for i := range l.slots {
		l.slots[i] = Blank(BlankExtra)
	}

	boundary := total
	if pad.SoftSpine {
		boundary = total - sizes[len(sizes)-1]
	}
	for p, q := range l.order {
		if p < boundary {
			l.slots[p] = l.classify(q)
			continue
		}
		// Final signature under soft spine: content moves two pages later,
		// the opening leaf stays extra and the last two logical pages,
		// always end padding, fall off.
		if m := q - boundary; m >= softSpinePages {
			l.slots[p] = l.classify(q - softSpinePages)
		}
	}

	if got := l.RealCount(); got != pageCount {
		return nil, errors.New(errors.ErrCodeInternal,
			"layout places %d of %d source pages", got, pageCount)
	}
	return l, nil
}

func (l *Layout) classify(q int) Slot {
	switch {
	case q < l.pad.StartBlanks:
		return Blank(BlankStart)
	case q-l.pad.StartBlanks < l.pages:
		return Real(q - l.pad.StartBlanks)
	default:
		return Blank(BlankEnd)
	}
}

// TotalSlots returns the number of output pages.
func (l *Layout) TotalSlots() int {
	return len(l.slots)
}

// ResolveSlot returns the slot at output position p. It panics if p is out
// of range.
func (l *Layout) ResolveSlot(p int) Slot {
	return l.slots[p]
}

// Slots returns a copy of all slots in output order.
func (l *Layout) Slots() []Slot {
	return append([]Slot(nil), l.slots...)
}

// Sizes returns a copy of the signature sizes.
func (l *Layout) Sizes() []int {
	return append([]int(nil), l.sizes...)
}

// Order returns a copy of the logical page order before blank resolution.
func (l *Layout) Order() []int {
	return append([]int(nil), l.order...)
}

// SourcePages returns the number of source pages the layout was built for.
func (l *Layout) SourcePages() int {
	return l.pages
}

// Padding returns the padding the layout was built with.
func (l *Layout) Padding() Padding {
	return l.pad
}

// RealCount returns the number of slots carrying a source page.
func (l *Layout) RealCount() int {
	n := 0
	for _, s := range l.slots {
		if !s.IsBlank() {
			n++
		}
	}
	return n
}

// BlankCount returns the number of blank slots with the given reason.
func (l *Layout) BlankCount(reason BlankReason) int {
	n := 0
	for _, s := range l.slots {
		if s.Reason() == reason {
			n++
		}
	}
	return n
}

// String formats the page map as "[#3 blank:start ...]".
func (l *Layout) String() string {
	return formatSlots(l.slots)
}

// Sheet is one physical sheet of a signature: four consecutive slots, two
// on each side.
type Sheet struct {
	// Signature is the 0-based signature the sheet belongs to.
	Signature int
	// Index is the 0-based position of the sheet within its signature,
	// outermost first.
	Index int
	// Position is the output position of the sheet's first slot.
	Position int
	// Front and Back hold the slots printed on each side, left to right.
	Front [2]Slot
	Back  [2]Slot
}

// Sheets groups the slots into physical sheets in output order.
func (l *Layout) Sheets() []Sheet {
	sheets := make([]Sheet, 0, len(l.slots)/FoldUnit)
	pos := 0
	for sig, size := range l.sizes {
		for k := 0; k < size/FoldUnit; k++ {
			sheets = append(sheets, Sheet{
				Signature: sig,
				Index:     k,
				Position:  pos,
				Front:     [2]Slot{l.slots[pos], l.slots[pos+1]},
				Back:      [2]Slot{l.slots[pos+2], l.slots[pos+3]},
			})
			pos += FoldUnit
		}
	}
	return sheets
}
