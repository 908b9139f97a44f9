// Package cluster defines the atomic layout unit consumed by the line
// breaker: a shaped glyph cluster carrying measurements and a small bitset
// of break/layout flags.
package cluster

import (
	"fmt"

	"github.com/typeflow/typeflow/dimen"
)

// Flags is a bitset over the per-cluster break-opportunity and
// layout-phase marks.
type Flags uint16

// Flag bits. A cluster may carry any combination permitted by the
// coexistence rules documented on GlyphCluster.
const (
	LineBoundary Flags = 1 << iota
	HyphenationPossible
	ExpandingSpace
	FixedSpace
	SuppressSpace
	SoftHyphenVisible
	NoBreakBefore
	NoBreakAfter
)

// HasFlag reports whether f is set in flags.
func HasFlag(flags, f Flags) bool {
	return flags&f != 0
}

// SetFlag returns flags with f set.
func SetFlag(flags, f Flags) Flags {
	return flags | f
}

// ClearFlag returns flags with f cleared.
func ClearFlag(flags, f Flags) Flags {
	return flags &^ f
}

// GlyphCluster is one atomic layout unit: one or more source code points
// shaped into one or more glyphs.
//
// Invariants (validated only by Validate, never enforced mid-layout):
//   - Width+ExtraWidth >= 0
//   - ExpandingSpace and FixedSpace are mutually exclusive
//   - SuppressSpace may only be set together with ExpandingSpace
//   - SoftHyphenVisible may only be set together with HyphenationPossible
type GlyphCluster struct {
	FirstChar, LastChar int // source range, inclusive
	Text                string
	Width               dimen.Abs
	Ascent              dimen.Abs
	Descent             dimen.Abs
	ExtraWidth          dimen.Abs // slack added by justification, 0 initially
	Flags               Flags
}

// HasFlag reports whether the cluster carries f.
func (c *GlyphCluster) HasFlag(f Flags) bool {
	return HasFlag(c.Flags, f)
}

// SetFlag sets f on the cluster.
func (c *GlyphCluster) SetFlag(f Flags) {
	c.Flags = SetFlag(c.Flags, f)
}

// ClearFlag clears f on the cluster.
func (c *GlyphCluster) ClearFlag(f Flags) {
	c.Flags = ClearFlag(c.Flags, f)
}

// Validate checks the coexistence invariants documented on GlyphCluster. It
// is used by tests and by shaper implementations during development, never
// by the layout engine itself (spec.md's error model keeps the core free of
// mid-layout validation failures).
func (c *GlyphCluster) Validate() error {
	if c.Width+c.ExtraWidth < 0 {
		return fmt.Errorf("cluster %q: width+extraWidth is negative", c.Text)
	}
	if c.HasFlag(ExpandingSpace) && c.HasFlag(FixedSpace) {
		return fmt.Errorf("cluster %q: ExpandingSpace and FixedSpace both set", c.Text)
	}
	if c.HasFlag(SuppressSpace) && !c.HasFlag(ExpandingSpace) {
		return fmt.Errorf("cluster %q: SuppressSpace set without ExpandingSpace", c.Text)
	}
	if c.HasFlag(SoftHyphenVisible) && !c.HasFlag(HyphenationPossible) {
		return fmt.Errorf("cluster %q: SoftHyphenVisible set without HyphenationPossible", c.Text)
	}
	return nil
}

// IsHardBreak reports whether this cluster is the mandatory-break marker
// described in spec.md §6: a cluster whose text is exactly "\n".
func (c *GlyphCluster) IsHardBreak() bool {
	return c.Text == "\n"
}
