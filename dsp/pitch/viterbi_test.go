package pitch

import "testing"

func TestBestPathSmoothsOctaveError(t *testing.T) {
	cfg := DefaultConfig()
	lattice := [][]candidate{
		{{0, 0.45}, {200, 1.0}},
		{{0, 0.45}, {100, 1.0}, {200, 0.98}},
		{{0, 0.45}, {200, 1.0}},
	}
	path := bestPath(lattice, cfg)
	for i, j := range path {
		if got := lattice[i][j].frequency; got != 200 {
			t.Fatalf("frame %d chose %v Hz, want 200", i, got)
		}
	}
}

func TestBestPathPrefersUnvoicedWhenStronger(t *testing.T) {
	cfg := DefaultConfig()
	lattice := [][]candidate{
		{{0, 2.4}, {150, 0.3}},
		{{0, 2.4}, {150, 0.3}},
	}
	path := bestPath(lattice, cfg)
	if path[0] != 0 || path[1] != 0 {
		t.Fatalf("path = %v, want unvoiced", path)
	}
}

func TestBestPathEmpty(t *testing.T) {
	if p := bestPath(nil, DefaultConfig()); len(p) != 0 {
		t.Fatalf("path = %v, want empty", p)
	}
}

func TestTransitionCost(t *testing.T) {
	cfg := DefaultConfig()
	if c := transitionCost(candidate{0, 0}, candidate{0, 0}, cfg); c != 0 {
		t.Fatalf("unvoiced->unvoiced = %v, want 0", c)
	}
	if c := transitionCost(candidate{0, 0}, candidate{200, 1}, cfg); c != cfg.VoicedUnvoicedCost {
		t.Fatalf("unvoiced->voiced = %v, want %v", c, cfg.VoicedUnvoicedCost)
	}
	if c := transitionCost(candidate{100, 1}, candidate{200, 1}, cfg); c != cfg.OctaveJumpCost {
		t.Fatalf("octave jump = %v, want %v", c, cfg.OctaveJumpCost)
	}
}
