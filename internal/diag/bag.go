package diag

import (
	"iter"
	"slices"
)

// Bag collects diagnostics in insertion order.
//
// The zero Bag is ready to use. A Bag is not safe for concurrent use; give
// each worker its own and Merge them.
type Bag struct {
	items   []Diagnostic
	max     Level
	seen    bool
	limit   int // 0: без лимита
	dropped int
}

func NewBag() *Bag {
	return &Bag{}
}

// NewBagWithLimit creates a bag that stores at most limit diagnostics.
// Diagnostics over the limit are counted and still raise the level.
func NewBagWithLimit(limit int) *Bag {
	return &Bag{limit: max(limit, 0)}
}

// Raise appends d. It reports false when d was not stored because the limit
// was reached; its level is accounted for either way.
func (b *Bag) Raise(d Diagnostic) bool {
	b.bump(d.Level())
	if b.limit > 0 && len(b.items) >= b.limit {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) bump(l Level) {
	if !b.seen || l > b.max {
		b.max = l
	}
	b.seen = true
}

func (b *Bag) Len() int     { return len(b.items) }
func (b *Bag) Limit() int   { return b.limit }
func (b *Bag) Dropped() int { return b.dropped }

// MaxLevel returns the highest level raised; false when nothing was raised.
func (b *Bag) MaxLevel() (Level, bool) {
	return b.max, b.seen
}

// IsOK reports whether no error has been raised.
func (b *Bag) IsOK() bool {
	return !b.seen || b.max < Error
}

// IsErr reports whether at least one error has been raised.
func (b *Bag) IsErr() bool {
	return !b.IsOK()
}

// HasWarnings reports whether anything at Warning level or above was raised.
func (b *Bag) HasWarnings() bool {
	return b.seen && b.max >= Warning
}

// Items returns a copy of the stored diagnostics in insertion order.
func (b *Bag) Items() []Diagnostic {
	return slices.Clone(b.items)
}

// All iterates over the stored diagnostics in insertion order.
func (b *Bag) All() iter.Seq[Diagnostic] {
	return slices.Values(b.items)
}

// Drain hands the stored diagnostics over to the caller and empties the bag.
// The level and the dropped count stay: a bag that saw an error keeps
// reporting IsErr.
func (b *Bag) Drain() []Diagnostic {
	out := b.items
	b.items = nil
	return out
}

// AddDropped counts n diagnostics that were dropped elsewhere, at level lvl
// or below. Used to replay a truncated bag.
func (b *Bag) AddDropped(n int, lvl Level) {
	if n <= 0 {
		return
	}
	b.dropped += n
	b.bump(lvl)
}

// Merge appends the diagnostics of other in order. The limit of b is raised
// when needed so that nothing from other is lost.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if b.limit > 0 && len(b.items)+len(other.items) > b.limit {
		b.limit = len(b.items) + len(other.items)
	}
	b.items = append(b.items, other.items...)
	b.dropped += other.dropped
	if other.seen {
		b.bump(other.max)
	}
}

// Truncate keeps at most n diagnostics, counting the rest as dropped.
// The level is left unchanged.
func (b *Bag) Truncate(n int) {
	if n <= 0 || len(b.items) <= n {
		return
	}
	b.dropped += len(b.items) - n
	b.items = b.items[:n:n]
}
