package economy

import (
	"sort"

	"gridharvest/internal/domain/world"
)

// YieldTable is the economy yield reported per extraction, by resource type.
type YieldTable map[world.ResourceType]int

func (y YieldTable) For(t world.ResourceType) int {
	return y[t]
}

// Ledger keeps the running world-economy totals. AddYield never enforces a
// cap; IsAtCap reflects every AddYield immediately.
type Ledger struct {
	totals map[world.ResourceType]int
	caps   map[world.ResourceType]int
}

func NewLedger(caps map[world.ResourceType]int) *Ledger {
	l := &Ledger{
		totals: map[world.ResourceType]int{},
		caps:   map[world.ResourceType]int{},
	}
	for t, c := range caps {
		l.caps[t] = c
	}
	return l
}

func (l *Ledger) AddYield(t world.ResourceType, amount int) {
	if amount <= 0 {
		return
	}
	l.totals[t] += amount
}

// IsAtCap reports whether the total for t has reached its cap. A missing or
// non-positive cap means the type is uncapped.
func (l *Ledger) IsAtCap(t world.ResourceType) bool {
	c := l.caps[t]
	if c <= 0 {
		return false
	}
	return l.totals[t] >= c
}

func (l *Ledger) Total(t world.ResourceType) int { return l.totals[t] }

func (l *Ledger) Cap(t world.ResourceType) int { return l.caps[t] }

func (l *Ledger) SetCap(t world.ResourceType, c int) { l.caps[t] = c }

type Balance struct {
	Type  world.ResourceType `json:"type"`
	Total int                `json:"total"`
	Cap   int                `json:"cap"`
	AtCap bool               `json:"at_cap"`
}

// Balances lists every type that has a cap or a total, sorted by type.
func (l *Ledger) Balances() []Balance {
	seen := map[world.ResourceType]struct{}{}
	for t := range l.totals {
		seen[t] = struct{}{}
	}
	for t := range l.caps {
		seen[t] = struct{}{}
	}
	out := make([]Balance, 0, len(seen))
	for t := range seen {
		out = append(out, Balance{Type: t, Total: l.totals[t], Cap: l.caps[t], AtCap: l.IsAtCap(t)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}
