// Package reloc implements the outer double-difference relocation loop:
// it wires cluster.SelectNeighbours, dd.ObservationBuilder,
// dd.Solve, and the ttt/xcorr collaborators together into the two entry
// points original_source/libs/hdd/hypodd.h exposes, "multi-event" and
// "single-event" relocation.
//
// What: RelocateMultiEvents relocates every event in a catalog against
// one clustering pass; RelocateSingleEvent relocates one event against
// two clustering passes (the first pass's neighbours become fixed
// anchors, the second pass's neighbours become the observation set),
// matching hypodd.h's distinct single-event API.
//
// Why: the Design Note "Global counters" replaces process-wide mutable
// counters with a per-run Diagnostics value returned alongside results;
// RunID (github.com/google/uuid) tags a run the way
// FabianUB-minibarcelona3d's API tags requests.
//
// Errors: NotEnoughNeighbours and OutOfGridRange are per-event/per-row
// and folded into Diagnostics; a travel-time lookup failure drops the
// affected rows, and only a solver failure (such as context
// cancellation) aborts the run early.
package reloc
