// Package dd assembles and solves the weighted sparse double-difference
// system at the core of a HypoDD-style relocation.
//
// What: DDSystem is the dense-sparse hybrid design matrix — a per-
// (event, phase-station) partial-derivative block G, row weights W, a
// right-hand side D, and per-event unknowns M — built by
// ObservationBuilder from a catalog, a set of reference events' accepted
// cluster.Neighbours, and a travel-time provider. Solve runs an
// iterative Krylov solver against the implicit matvec pair (x → W·G·x,
// y → Gᵀ·W·y); G is never materialised as a dense matrix.
//
// Why: the G block is shaped (nEvts·nPhStas)×4 rather than nObs×4·nEvts
// because every event reuses the same four partials across every
// observation that shares its (station, phase) — the row→column mapping
// is carried in EvByObs/PhStaByObs rather than duplicated into G itself.
//
// Errors: package-level sentinels (ErrEmptySystem, ...) are returned
// as they are, for errors.Is checks, matching the teacher's error
// style (core.ErrVertexNotFound, flow.ErrSourceNotFound).
//
// Complexity: Build is O(nRows) in the neighbour/phase count;
// Solve is O(k·nnz) for k solver iterations, nnz the number of non-zero
// (event,phSta) pairs actually referenced.
package dd
