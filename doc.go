// Package scrtdd implements a double-difference earthquake relocation
// engine (Waldhauser & Ellsworth, 2000): given a seismic catalog of
// events, stations, and phase picks, it builds a sparse weighted system
// of differential travel-time equations and solves it iteratively to
// produce relative hypocentre relocations.
//
// The engine is organized as one package per concern:
//
//	catalog/ — Event, Station, Phase, Catalog: the data model
//	cluster/ — neighbour selection, ellipsoidal stratification
//	ttt/     — travel-time providers: tabulated and NLL-gridded backends
//	partials/ — partial derivatives, local Cartesian transform
//	dd/      — DDSystem, ObservationBuilder, the iterative solver
//	xcorr/   — cross-correlation engine, waveform cache, SNR gating
//	reloc/   — the outer relocation loop and its diagnostics
//	report/  — deterministic textual summary of a relocation run
//	config/  — run configuration, loaded from YAML with env overrides
//	cmd/scrtdd — CLI entry point
package scrtdd
