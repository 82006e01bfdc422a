package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/dikadissss/scrtdd/catalog"
)

// loadCatalog reads a catalog from three headered CSV files, the
// simplest on-disk shape that round-trips catalog.Event/Station/Phase
// without inventing a binary format the corpus never showed. Raw phase
// labels (e.g. "Pg", "Sn") are folded onto {P,S} via aliases before
// insertion (SPEC_FULL.md's catalog.PhaseAliasSet supplement).
func loadCatalog(eventsPath, stationsPath, phasesPath string, aliases catalog.PhaseAliasSet) (*catalog.Catalog, error) {
	cat := catalog.New()

	if err := readCSV(eventsPath, func(row []string, hdr map[string]int) error {
		originTime, err := time.Parse(time.RFC3339, row[hdr["origin_time"]])
		if err != nil {
			return fmt.Errorf("origin_time: %w", err)
		}
		lat, err := strconv.ParseFloat(row[hdr["lat"]], 64)
		if err != nil {
			return fmt.Errorf("lat: %w", err)
		}
		lon, err := strconv.ParseFloat(row[hdr["lon"]], 64)
		if err != nil {
			return fmt.Errorf("lon: %w", err)
		}
		depth, err := strconv.ParseFloat(row[hdr["depth_km"]], 64)
		if err != nil {
			return fmt.Errorf("depth_km: %w", err)
		}
		ev := catalog.Event{ID: row[hdr["id"]], OriginTime: originTime, Lat: lat, Lon: lon, Depth: depth}
		if idx, ok := hdr["magnitude"]; ok && row[idx] != "" {
			mag, err := strconv.ParseFloat(row[idx], 64)
			if err != nil {
				return fmt.Errorf("magnitude: %w", err)
			}
			ev.HasMag, ev.Magnitude = true, mag
		}
		return cat.AddEvent(ev)
	}); err != nil {
		return nil, fmt.Errorf("loading events from %s: %w", eventsPath, err)
	}

	if err := readCSV(stationsPath, func(row []string, hdr map[string]int) error {
		lat, err := strconv.ParseFloat(row[hdr["lat"]], 64)
		if err != nil {
			return fmt.Errorf("lat: %w", err)
		}
		lon, err := strconv.ParseFloat(row[hdr["lon"]], 64)
		if err != nil {
			return fmt.Errorf("lon: %w", err)
		}
		st := catalog.Station{ID: row[hdr["id"]], Lat: lat, Lon: lon}
		if idx, ok := hdr["elevation_m"]; ok && row[idx] != "" {
			elev, err := strconv.ParseFloat(row[idx], 64)
			if err != nil {
				return fmt.Errorf("elevation_m: %w", err)
			}
			st.Elevation = elev
		}
		return cat.AddStation(st)
	}); err != nil {
		return nil, fmt.Errorf("loading stations from %s: %w", stationsPath, err)
	}

	if err := readCSV(phasesPath, func(row []string, hdr map[string]int) error {
		pickTime, err := time.Parse(time.RFC3339, row[hdr["pick_time"]])
		if err != nil {
			return fmt.Errorf("pick_time: %w", err)
		}
		rawType := row[hdr["type"]]
		ptype, ok := aliases.Resolve(rawType)
		if !ok {
			return fmt.Errorf("unrecognised phase type %q", rawType)
		}
		weight := 1.0
		if idx, ok := hdr["weight"]; ok && row[idx] != "" {
			w, err := strconv.ParseFloat(row[idx], 64)
			if err != nil {
				return fmt.Errorf("weight: %w", err)
			}
			weight = w
		}
		ph := catalog.Phase{
			EventID: row[hdr["event_id"]], StationID: row[hdr["station_id"]],
			Type: ptype, PickTime: pickTime, APrioriWeight: weight,
		}
		if idx, ok := hdr["component"]; ok {
			ph.Component = row[idx]
		}
		if idx, ok := hdr["manual"]; ok && row[idx] != "" {
			manual, err := strconv.ParseBool(row[idx])
			if err != nil {
				return fmt.Errorf("manual: %w", err)
			}
			ph.IsManual = manual
		}
		return cat.AddPhase(ph)
	}); err != nil {
		return nil, fmt.Errorf("loading phases from %s: %w", phasesPath, err)
	}

	return cat, nil
}

// readCSV parses path as a headered CSV file, calling row for each data
// row with a column-name-to-index map built from the header line.
func readCSV(path string, row func(record []string, hdr map[string]int) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}
	hdr := make(map[string]int, len(header))
	for i, name := range header {
		hdr[name] = i
	}

	for lineNum := 2; ; lineNum++ {
		record, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
		if err := row(record, hdr); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
	}
}
