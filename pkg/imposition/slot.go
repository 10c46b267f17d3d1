package imposition

import (
	"fmt"
	"strings"
)

// BlankReason records why an output slot carries no source page.
type BlankReason uint8

const (
	// BlankStart is leading padding before the first source page.
	BlankStart BlankReason = iota + 1
	// BlankEnd is trailing padding after the last source page.
	BlankEnd
	// BlankExtra is a slot no logical page was assigned to, such as the
	// soft-spine wrap leaf.
	BlankExtra
)

// String returns the reason as used in logs: "start", "end" or "extra".
func (r BlankReason) String() string {
	switch r {
	case BlankStart:
		return "start"
	case BlankEnd:
		return "end"
	case BlankExtra:
		return "extra"
	default:
		return fmt.Sprintf("BlankReason(%d)", uint8(r))
	}
}

// Slot is one physical output page: either a real source page or a blank.
//
// The zero value is not a valid slot; construct slots with [Real] or [Blank].
type Slot struct {
	index  int
	reason BlankReason
}

// Real returns a slot carrying the source page at index (0-based, counted
// after skip trimming).
func Real(index int) Slot {
	return Slot{index: index}
}

// Blank returns a blank slot with the given reason.
func Blank(reason BlankReason) Slot {
	return Slot{index: -1, reason: reason}
}

// IsBlank reports whether the slot carries no source page.
func (s Slot) IsBlank() bool {
	return s.reason != 0
}

// Source returns the source page index and true for real slots, or -1 and
// false for blanks.
func (s Slot) Source() (int, bool) {
	if s.IsBlank() {
		return -1, false
	}
	return s.index, true
}

// Reason returns the blank reason, or 0 for real slots.
func (s Slot) Reason() BlankReason {
	return s.reason
}

// String formats real slots as "#3" and blanks as "blank:end".
func (s Slot) String() string {
	if s.IsBlank() {
		return "blank:" + s.reason.String()
	}
	return fmt.Sprintf("#%d", s.index)
}

// formatSlots renders a slot list for debug logging.
func formatSlots(slots []Slot) string {
	parts := make([]string, len(slots))
	for i, s := range slots {
		parts[i] = s.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
