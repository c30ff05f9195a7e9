package grid_test

import (
	"maps"
	"slices"
	"testing"

	"github.com/eak1mov/go-zonetiles/grid"
	"github.com/eak1mov/go-zonetiles/tile"
	"github.com/google/go-cmp/cmp"
)

func TestGridOrder(t *testing.T) {
	g := grid.New("Kalimdor")
	for _, index := range []tile.Index{4095, 129, 0, 64, 1} {
		g.Insert(index, "r")
	}

	got := slices.Collect(maps.Keys(maps.Collect(tile.IterTiles(g))))
	slices.Sort(got)

	var ordered []tile.Index
	for index := range g.Tiles() {
		ordered = append(ordered, index)
	}

	want := []tile.Index{0, 1, 64, 129, 4095}
	if diff := cmp.Diff(want, ordered); diff != "" {
		t.Errorf("Tiles order mismatch (-want+got):\n%v", diff)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("IterTiles keys mismatch (-want+got):\n%v", diff)
	}
	if got, want := g.Continent(), "Kalimdor"; got != want {
		t.Errorf("Continent() = %q, want = %q", got, want)
	}
}

func TestGridLastWriteWins(t *testing.T) {
	g := grid.New("Azeroth")
	g.Insert(129, "first")
	g.Insert(7, "other")
	g.Insert(129, "second")

	if got, want := g.Len(), 2; got != want {
		t.Errorf("Len() = %v, want = %v", got, want)
	}
	if got, want := g.Overwrites(), 1; got != want {
		t.Errorf("Overwrites() = %v, want = %v", got, want)
	}
	if record, _ := g.Record(129); record != "second" {
		t.Errorf("Record(129) = %q, want = %q", record, "second")
	}
	if _, found := g.Record(1); found {
		t.Errorf("Record(1) found, want missing")
	}
}
