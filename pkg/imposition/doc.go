// Package imposition computes page-imposition plans for signature binding.
//
// A source document's linear page sequence is padded with blank pages,
// grouped into signatures (bundles of folded sheets) and reordered so that,
// printed duplex and folded, each signature reads in order once bound.
//
// The package is pure: it consumes a page count and produces a slot mapping.
// Opening documents, scaling page content and writing output files are left
// to the source and render packages.
//
// # Planning
//
// [Plan] distributes the padded page count across signatures whose sizes are
// multiples of 4 within [Constraints.MinSize, Constraints.MaxSize]. It starts
// from the fewest maximum-size signatures and shrinks them four pages at a
// time until the total fits the padded count rounded up to a whole fold:
//
//	p, err := imposition.Plan(17, imposition.Constraints{MaxSize: 16, MinSize: 8})
//	// p.Sizes == []int{8, 12}
//
// With Uneven set the shrinkage is concentrated into as few signatures as
// possible instead of spread across all of them.
//
// # Sequencing
//
// [FoldPattern] produces the outside-in duplex order for one signature and
// [Order] concatenates it across a plan. [NewLayout] maps every output
// position to a [Slot]: either a real source page or a blank with a
// [BlankReason].
//
//	layout, err := imposition.NewLayout(p.Sizes, imposition.Padding{StartBlanks: 4, EndBlanks: 3}, 10)
//	for i := range layout.TotalSlots() {
//	    slot := layout.ResolveSlot(i)
//	    ...
//	}
//
// # Soft spine
//
// With [Padding.SoftSpine] the content of the final signature moves two pages
// later so that its opening leaf is blank and can be wrapped around the
// spine. The two pages pushed off the end of the signature are always end
// padding, so no source page is lost.
package imposition
