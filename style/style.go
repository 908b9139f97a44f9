// Package style carries the static configuration the layout core consumes:
// paragraph-level geometry and justification settings, and the handful of
// character-level fields the core itself reads.
package style

import "github.com/typeflow/typeflow/dimen"

// Alignment selects how a finished line is justified or offset.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
	AlignJustified
)

// String renders the alignment for logging and config round-tripping.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	case AlignJustified:
		return "justified"
	default:
		return "unknown"
	}
}

// ParagraphStyle is the static configuration consumed by LineControl and
// the layout engine. It never changes during a single layout call except
// for the transient last-line alignment swap, which the engine restores
// before returning.
type ParagraphStyle struct {
	Alignment Alignment

	LeftMargin      dimen.Abs
	RightMargin     dimen.Abs
	FirstLineIndent dimen.Abs

	// LineSpacing is a multiplier of CharStyle.FontSize.
	LineSpacing float64

	// MinWordSpacing and MaxWordSpacing are ratios of the natural space
	// width, bounding how far an expanding space may shrink or stretch.
	MinWordSpacing float64
	MaxWordSpacing float64

	Hyphenate              bool
	HyphenConsecutiveLimit int

	// HyphenPenalty is a raw length in the same unit as a line's x
	// position (see SPEC_FULL.md §9, decision 2).
	HyphenPenalty dimen.Abs
}

// DefaultParagraphStyle returns a reasonable starting point: left-aligned
// (ragged-right) text, no hyphenation, no indent.
func DefaultParagraphStyle() ParagraphStyle {
	return ParagraphStyle{
		Alignment:              AlignLeft,
		LineSpacing:            1.2,
		MinWordSpacing:         0.8,
		MaxWordSpacing:         1.5,
		Hyphenate:              false,
		HyphenConsecutiveLimit: 2,
		HyphenPenalty:          50 * dimen.Pt,
	}
}

// CharStyle holds the character-level fields the layout core itself reads.
// Anything else a real shaper needs (family, weight, script, ...) lives
// outside the core, since font selection is the shaper's concern.
type CharStyle struct {
	FontSize dimen.Abs
}

// DefaultCharStyle returns a 12pt character style.
func DefaultCharStyle() CharStyle {
	return CharStyle{FontSize: 12 * dimen.Pt}
}
