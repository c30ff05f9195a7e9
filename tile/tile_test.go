package tile_test

import (
	"testing"

	"github.com/eak1mov/go-zonetiles/tile"
	"github.com/google/go-cmp/cmp"
)

func TestIndexBijection(t *testing.T) {
	seen := make(map[tile.Index]tile.ID)
	for y := range tile.GridSide {
		for x := range tile.GridSide {
			tileID := tile.ID{X: uint32(x), Y: uint32(y)}
			index := tileID.Index()
			if other, found := seen[index]; found {
				t.Fatalf("Index(%v) = %v collides with %v", tileID, index, other)
			}
			seen[index] = tileID
			if index >= tile.GridSide*tile.GridSide {
				t.Errorf("Index(%v) = %v, out of range", tileID, index)
			}
			if diff := cmp.Diff(tileID, tile.FromIndex(index)); diff != "" {
				t.Errorf("FromIndex(Index(%v)) mismatch (-want+got):\n%v", tileID, diff)
			}
		}
	}
}

func TestIndex(t *testing.T) {
	if got, want := (tile.ID{X: 1, Y: 2}).Index(), tile.Index(129); got != want {
		t.Errorf("Index() = %v, want = %v", got, want)
	}
	if got, want := (tile.ID{X: 63, Y: 63}).Index(), tile.Index(4095); got != want {
		t.Errorf("Index() = %v, want = %v", got, want)
	}
}

func TestValid(t *testing.T) {
	for _, tc := range []struct {
		tileID tile.ID
		valid  bool
	}{
		{tile.ID{X: 0, Y: 0}, true},
		{tile.ID{X: 63, Y: 63}, true},
		{tile.ID{X: 64, Y: 0}, false},
		{tile.ID{X: 0, Y: 64}, false},
	} {
		if got := tc.tileID.Valid(); got != tc.valid {
			t.Errorf("%v.Valid() = %v, want = %v", tc.tileID, got, tc.valid)
		}
	}
}

type sliceVisitor []tile.Index

func (s sliceVisitor) VisitTiles(visitor func(tile.Index, string) error) error {
	for _, index := range s {
		if err := visitor(index, "record"); err != nil {
			return err
		}
	}
	return nil
}

func TestIterTilesStopsEarly(t *testing.T) {
	var got []tile.Index
	for index := range tile.IterTiles(sliceVisitor{1, 2, 3}) {
		got = append(got, index)
		if index == 2 {
			break
		}
	}
	if diff := cmp.Diff([]tile.Index{1, 2}, got); diff != "" {
		t.Errorf("IterTiles mismatch (-want+got):\n%v", diff)
	}
}
