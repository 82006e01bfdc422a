// Package report renders a deterministic textual summary of a
// relocation run: per-event deltas, RMS residuals, and observation
// counts, derived purely from the before/after catalogs and a
// reloc.Diagnostics value.
package report
