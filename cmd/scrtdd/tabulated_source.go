package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/dikadissss/scrtdd/catalog"
	"github.com/dikadissss/scrtdd/ttt"
)

// tableEntry is one sampled (distance, depth) -> travel time point of a
// 1-D travel-time curve, ttt.TableSource's minimal on-disk shape.
type tableEntry struct {
	distanceKm, depthKm, travelTimeSec float64
}

type tableKey struct {
	model string
	phase catalog.PhaseType
}

// csvTableSource implements ttt.TableSource by nearest-neighbour lookup
// over a CSV-loaded point cloud. It is deliberately simpler than
// ttt.Gridded's bilinear/trilinear NLL-grid interpolation (gridded.go,
// grid.go): a minimal backend for cmd/scrtdd callers who have a flat
// travel-time table rather than NLL binary grids.
type csvTableSource struct {
	entries map[tableKey][]tableEntry
}

// loadCSVTableSource reads a headered CSV with columns
// model,phase,distance_km,depth_km,travel_time_sec.
func loadCSVTableSource(path string, aliases catalog.PhaseAliasSet) (*csvTableSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	hdr := make(map[string]int, len(header))
	for i, name := range header {
		hdr[name] = i
	}

	src := &csvTableSource{entries: make(map[tableKey][]tableEntry)}
	for lineNum := 2; ; lineNum++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		phase, ok := aliases.Resolve(record[hdr["phase"]])
		if !ok {
			return nil, fmt.Errorf("line %d: unrecognised phase %q", lineNum, record[hdr["phase"]])
		}
		dist, err := strconv.ParseFloat(record[hdr["distance_km"]], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: distance_km: %w", lineNum, err)
		}
		depth, err := strconv.ParseFloat(record[hdr["depth_km"]], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: depth_km: %w", lineNum, err)
		}
		tt, err := strconv.ParseFloat(record[hdr["travel_time_sec"]], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: travel_time_sec: %w", lineNum, err)
		}
		key := tableKey{model: record[hdr["model"]], phase: phase}
		src.entries[key] = append(src.entries[key], tableEntry{dist, depth, tt})
	}
	return src, nil
}

// TravelTime implements ttt.TableSource by returning the nearest sampled
// point's travel time in plain (distance, depth) kilometre space.
func (s *csvTableSource) TravelTime(model string, phase catalog.PhaseType, distanceKm, depthKm float64) (float64, error) {
	entries, ok := s.entries[tableKey{model: model, phase: phase}]
	if !ok || len(entries) == 0 {
		return 0, fmt.Errorf("no travel-time table for model %q phase %s", model, phase)
	}
	best := entries[0]
	bestDist := math.Hypot(best.distanceKm-distanceKm, best.depthKm-depthKm)
	for _, e := range entries[1:] {
		d := math.Hypot(e.distanceKm-distanceKm, e.depthKm-depthKm)
		if d < bestDist {
			best, bestDist = e, d
		}
	}
	return best.travelTimeSec, nil
}

var _ ttt.TableSource = (*csvTableSource)(nil)
