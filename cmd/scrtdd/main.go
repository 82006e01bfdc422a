// Command scrtdd runs a double-difference relocation over a catalog
// loaded from CSV files and prints report.Render's textual summary.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/dikadissss/scrtdd/catalog"
	"github.com/dikadissss/scrtdd/cluster"
	"github.com/dikadissss/scrtdd/config"
	"github.com/dikadissss/scrtdd/dd"
	"github.com/dikadissss/scrtdd/reloc"
	"github.com/dikadissss/scrtdd/report"
	"github.com/dikadissss/scrtdd/ttt"
)

var (
	eventsPath   = flag.String("events", "", "Path to the events CSV file (id,origin_time,lat,lon,depth_km[,magnitude])")
	stationsPath = flag.String("stations", "", "Path to the stations CSV file (id,lat,lon[,elevation_m])")
	phasesPath   = flag.String("phases", "", "Path to the phases CSV file (event_id,station_id,type,pick_time[,weight,component,manual])")
	ttablePath   = flag.String("ttable", "", "Path to the 1-D travel-time table CSV (model,phase,distance_km,depth_km,travel_time_sec)")
	model        = flag.String("model", "default", "Velocity model name looked up in -ttable")
	configPath   = flag.String("config", "", "Path to a YAML run configuration file; defaults are used when empty")
	singleEvent  = flag.String("event", "", "Relocate only this event ID (hypodd.h's single-event mode); relocates every event when empty")
	verbose      = flag.Bool("verbose", false, "Enable verbose solver/xcorr logging")
	version      = flag.Bool("version", false, "Show the application version")
)

// compileVersion is set at build time via -ldflags, matching the
// teacher's CompileVersion convention.
var compileVersion = "dev"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("scrtdd version %s\n", compileVersion)
		return
	}

	if *eventsPath == "" || *stationsPath == "" || *phasesPath == "" {
		log.Fatal("scrtdd: -events, -stations, and -phases are all required")
	}

	config.LoadEnv()
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("scrtdd: loading config: %v", err)
		}
		cfg = loaded
	} else {
		config.ApplyEnvOverrides(&cfg)
	}
	if *verbose {
		cfg.Solver.Verbose = true
		cfg.XCorr.Verbose = true
	}

	aliases := catalog.DefaultPhaseAliasSet()
	cat, err := loadCatalog(*eventsPath, *stationsPath, *phasesPath, aliases)
	if err != nil {
		log.Fatalf("scrtdd: %v", err)
	}

	var provider ttt.Provider
	if *ttablePath != "" {
		src, err := loadCSVTableSource(*ttablePath, aliases)
		if err != nil {
			log.Fatalf("scrtdd: loading travel-time table: %v", err)
		}
		provider = ttt.NewTabulated(src, cat, *model)
	} else {
		log.Fatal("scrtdd: -ttable is required (no travel-time provider configured)")
	}

	solverOpts := cfg.Solver.ToOptions()
	clusterOpts := cfg.Cluster.ToOptions()

	if *singleEvent != "" {
		runSingleEvent(cat, *singleEvent, provider, clusterOpts, solverOpts)
		return
	}
	runMultiEvent(cat, provider, clusterOpts, solverOpts)
}

func runMultiEvent(cat *catalog.Catalog, provider ttt.Provider, clusterOpts cluster.Options, solverOpts dd.SolverOptions) {
	after, diag, err := reloc.RelocateMultiEvents(cat, provider, nil, nil, clusterOpts, solverOpts)
	if err != nil {
		log.Fatalf("scrtdd: relocation failed: %v", err)
	}
	fmt.Print(report.Render(cat, after, diag))
}

func runSingleEvent(cat *catalog.Catalog, eventID string, provider ttt.Provider, clusterOpts cluster.Options, solverOpts dd.SolverOptions) {
	ev, diag, err := reloc.RelocateSingleEvent(cat, eventID, provider, nil, clusterOpts, clusterOpts, solverOpts)
	if err != nil {
		log.Fatalf("scrtdd: relocation failed: %v", err)
	}
	after := cat.WithRelocatedEvents([]catalog.EventDelta{
		eventDelta(cat, eventID, *ev),
	})
	fmt.Print(report.Render(cat, after, diag))
}

// eventDelta expresses a solved single event's new position as the
// EventDelta WithRelocatedEvents expects, since RelocateSingleEvent
// returns the relocated Event directly rather than a delta.
func eventDelta(cat *catalog.Catalog, eventID string, relocated catalog.Event) catalog.EventDelta {
	before, _ := cat.Event(eventID)
	return catalog.EventDelta{
		EventID:    eventID,
		DLatDeg:    relocated.Lat - before.Lat,
		DLonDeg:    relocated.Lon - before.Lon,
		DDepthKm:   relocated.Depth - before.Depth,
		DOriginSec: relocated.OriginTime.Sub(before.OriginTime).Seconds(),
	}
}
