package main

import (
	"testing"

	"github.com/dikadissss/scrtdd/catalog"
)

func TestCSVTableSourceNearestNeighbourLookup(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ttable.csv", "model,phase,distance_km,depth_km,travel_time_sec\n"+
		"iasp91,P,0,0,0.0\n"+
		"iasp91,P,10,5,1.5\n"+
		"iasp91,P,20,5,3.0\n"+
		"iasp91,S,10,5,2.6\n")

	src, err := loadCSVTableSource(path, catalog.DefaultPhaseAliasSet())
	if err != nil {
		t.Fatalf("loadCSVTableSource: %v", err)
	}

	tt, err := src.TravelTime("iasp91", catalog.P, 11, 5)
	if err != nil {
		t.Fatalf("TravelTime: %v", err)
	}
	if tt != 1.5 {
		t.Errorf("TravelTime = %v, want nearest sample 1.5 (at distance 10)", tt)
	}

	tt, err = src.TravelTime("iasp91", catalog.S, 10, 5)
	if err != nil {
		t.Fatalf("TravelTime(S): %v", err)
	}
	if tt != 2.6 {
		t.Errorf("TravelTime(S) = %v, want 2.6", tt)
	}
}

func TestCSVTableSourceUnknownModelErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ttable.csv", "model,phase,distance_km,depth_km,travel_time_sec\n"+
		"iasp91,P,0,0,0.0\n")
	src, err := loadCSVTableSource(path, catalog.DefaultPhaseAliasSet())
	if err != nil {
		t.Fatalf("loadCSVTableSource: %v", err)
	}
	if _, err := src.TravelTime("other-model", catalog.P, 1, 1); err == nil {
		t.Fatal("expected error for unknown model")
	}
}
