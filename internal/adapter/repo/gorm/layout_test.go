package gormrepo

import (
	"testing"

	"gridharvest/internal/domain/world"
)

func TestLayoutCodec_KeepsEmptyEdges(t *testing.T) {
	m := world.ParseLayout(
		"  ..",
		" .M.",
		"~~B ",
		"    ",
	)
	got := decodeLayout(encodeLayout(m))
	if got.Size() != 4 {
		t.Fatalf("size = %d, want 4", got.Size())
	}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if got[i][j] != m[i][j] {
				t.Fatalf("tile (%d,%d) = %s, want %s", i, j, got[i][j], m[i][j])
			}
		}
	}
}
