package imposition

import (
	"github.com/matzehuels/bindery/pkg/errors"
)

// FoldUnit is the number of pages on one folded sheet printed duplex. Every
// signature size is a multiple of it.
const FoldUnit = 4

// Constraints bounds the signature sizes [Plan] may choose.
type Constraints struct {
	// MaxSize is the largest signature in pages. Must be a positive multiple of 4.
	MaxSize int `json:"max_size" toml:"max_size"`
	// MinSize is the smallest signature in pages. Must be a positive multiple
	// of 4 and no larger than MaxSize.
	MinSize int `json:"min_size" toml:"min_size"`
	// Uneven concentrates shrinkage into as few signatures as possible
	// instead of spreading it across all of them.
	Uneven bool `json:"uneven" toml:"uneven"`
}

// Validate reports a [errors.ErrCodeInvalidConfig] error when the sizes are
// not positive multiples of 4 or MinSize exceeds MaxSize.
func (c Constraints) Validate() error {
	if c.MaxSize <= 0 || c.MaxSize%FoldUnit != 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"signature size must be a positive multiple of %d (got %d)", FoldUnit, c.MaxSize)
	}
	if c.MinSize <= 0 || c.MinSize%FoldUnit != 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"minimum signature size must be a positive multiple of %d (got %d)", FoldUnit, c.MinSize)
	}
	if c.MinSize > c.MaxSize {
		return errors.New(errors.ErrCodeInvalidConfig,
			"minimum signature size %d exceeds signature size %d", c.MinSize, c.MaxSize)
	}
	return nil
}

// SignaturePlan is the outcome of [Plan].
type SignaturePlan struct {
	// Sizes lists the signature sizes in binding order.
	Sizes []int `json:"sizes"`
	// Pages is the padded page count the plan was computed for.
	Pages int `json:"pages"`
	// Target is Pages rounded up to a multiple of 4.
	Target int `json:"target"`
	// Total is the sum of Sizes.
	Total int `json:"total"`
	// FloorHit is set when shrinking stopped at the minimum signature size
	// before Total reached Target.
	FloorHit bool `json:"floor_hit"`
}

// Slack returns the number of pages beyond the padded count that will be
// filled with blanks.
func (p SignaturePlan) Slack() int {
	return p.Total - p.Pages
}

// Unsatisfied returns a [errors.ErrCodeConstraintUnsatisfied] error
// describing the oversized plan when FloorHit is set, and nil otherwise.
// The error is informational; the plan is still usable.
func (p SignaturePlan) Unsatisfied() error {
	if !p.FloorHit {
		return nil
	}
	return errors.New(errors.ErrCodeConstraintUnsatisfied,
		"minimum signature size reached: %d pages planned for %d (%d extra blanks)",
		p.Total, p.Pages, p.Slack())
}

// shrinkState threads the planner's loop variables through each step.
type shrinkState struct {
	sizes []int
	next  int // rotating index of the signature to shrink next
	total int
}

// shrink removes one fold from the signature at s.next and advances the
// rotation. It returns false, leaving s untouched, when doing so would take
// that signature below c.MinSize.
func (s shrinkState) shrink(c Constraints) (shrinkState, bool) {
	i := s.next
	if s.sizes[i]-FoldUnit < c.MinSize {
		return s, false
	}
	s.sizes[i] -= FoldUnit
	s.total -= FoldUnit
	if !c.Uneven || s.sizes[i] == c.MinSize {
		s.next = (i + 1) % len(s.sizes)
	}
	return s, true
}

// Plan computes signature sizes for pages padded pages.
//
// It starts with ceil(pages/MaxSize) signatures of MaxSize and removes one
// fold at a time, rotating through the signatures, until the total no longer
// exceeds pages rounded up to a multiple of 4. Without Uneven the rotation
// advances after every fold; with Uneven it stays on one signature until that
// signature reaches MinSize.
//
// If the signature due to shrink next is already at MinSize, shrinking stops
// and the plan keeps its slack; FloorHit is set in that case.
func Plan(pages int, c Constraints) (SignaturePlan, error) {
	if err := c.Validate(); err != nil {
		return SignaturePlan{}, err
	}
	if pages <= 0 {
		return SignaturePlan{}, errors.New(errors.ErrCodeInvalidConfig,
			"page count must be positive (got %d)", pages)
	}

	count := max(1, (pages+c.MaxSize-1)/c.MaxSize)
	st := shrinkState{sizes: make([]int, count), total: count * c.MaxSize}
	for i := range st.sizes {
		st.sizes[i] = c.MaxSize
	}

	target := roundUp(pages, FoldUnit)
	floorHit := false
	for st.total > target {
		var ok bool
		if st, ok = st.shrink(c); !ok {
			floorHit = true
			break
		}
	}

	return SignaturePlan{
		Sizes:    st.sizes,
		Pages:    pages,
		Target:   target,
		Total:    st.total,
		FloorHit: floorHit,
	}, nil
}

func roundUp(n, unit int) int {
	return (n + unit - 1) / unit * unit
}
