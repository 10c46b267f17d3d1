// Package render writes imposed PDFs.
//
// A [Writer] walks an [imposition.Layout] in output order and emits one page
// per slot onto the chosen [Paper]. Blank slots become empty pages; real
// slots import the source page with gofpdi and draw it scaled and shifted by
// [Place], so the printer can run the result 2-up and duplex.
//
//	w := render.NewWriter(render.A4, logger)
//	stats, err := w.WriteFile(ctx, "out.pdf", "in.pdf", doc, layout)
package render
