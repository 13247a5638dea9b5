package economy

import (
	"testing"

	"gridharvest/internal/domain/world"
)

func TestLedger_CapReflectsLatestYield(t *testing.T) {
	l := NewLedger(map[world.ResourceType]int{world.ResourceGem: 10})
	l.AddYield(world.ResourceGem, 5)
	if l.IsAtCap(world.ResourceGem) {
		t.Fatalf("5/10 must not be at cap")
	}
	l.AddYield(world.ResourceGem, 5)
	if !l.IsAtCap(world.ResourceGem) {
		t.Fatalf("10/10 must be at cap")
	}
	l.AddYield(world.ResourceGem, 5)
	if got := l.Total(world.ResourceGem); got != 15 {
		t.Fatalf("AddYield must not clamp, total=%d", got)
	}
}

func TestLedger_UncappedTypes(t *testing.T) {
	l := NewLedger(nil)
	l.AddYield(world.ResourceMineral, 1_000_000)
	if l.IsAtCap(world.ResourceMineral) {
		t.Fatalf("type without cap must never be at cap")
	}
	l.AddYield(world.ResourceMineral, -3)
	if got := l.Total(world.ResourceMineral); got != 1_000_000 {
		t.Fatalf("negative yield must be ignored, total=%d", got)
	}
}

func TestLedger_Balances(t *testing.T) {
	l := NewLedger(DefaultCaps())
	l.AddYield(world.ResourceMineral, GemYieldPerExtraction)
	b := l.Balances()
	if len(b) != 2 || b[0].Type != world.ResourceGem || b[1].Type != world.ResourceMineral {
		t.Fatalf("unexpected balances: %+v", b)
	}
	if b[1].Total != GemYieldPerExtraction || b[1].Cap != DefaultMineralCap {
		t.Fatalf("unexpected mineral balance: %+v", b[1])
	}
}

func TestDefaultYields(t *testing.T) {
	y := DefaultYields()
	if y.For(world.ResourceGem) != 5 || y.For(world.ResourceMineral) != 20 {
		t.Fatalf("unexpected default yields: %v", y)
	}
	if HarvestThreshold != 0.1 || HarvestSpeed != 0.25 {
		t.Fatalf("harvest tuning = (%v,%v), want (0.1,0.25)", HarvestThreshold, HarvestSpeed)
	}
}
