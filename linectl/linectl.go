// Package linectl implements the single-line state machine described in
// spec.md §4.1: it accumulates glyph clusters onto one line, remembers the
// best break candidate seen so far, and finalizes a LineSpec once a break
// is chosen. A LineControl never owns the cluster buffer; it borrows
// mutable access to it for the lifetime of one layout call so it can set
// SoftHyphenVisible and SuppressSpace in place.
package linectl

import (
	"github.com/typeflow/typeflow/cluster"
	"github.com/typeflow/typeflow/dimen"
	"github.com/typeflow/typeflow/style"
)

// LineSpec is the finalized, positioned result of one line.
type LineSpec struct {
	X, Y            dimen.Abs
	Width           dimen.Abs
	NaturalWidth    dimen.Abs
	Height          dimen.Abs
	Ascent, Descent dimen.Abs
	FirstCluster    int
	LastCluster     int
	Clusters        []cluster.GlyphCluster
	Column          int
}

// Badness scores a candidate break: the absolute gap between where the
// line's content would end (x) and the column's effective right edge,
// plus the break's own penalty p. Lower is better.
func Badness(x, effectiveRight, p dimen.Abs) dimen.Abs {
	return (effectiveRight - x).Abs() + p
}

// LineControl is the mutable state of the line currently being built. It
// is reused across lines within a column (and across columns) by calling
// StartLine again.
type LineControl struct {
	paragraph style.ParagraphStyle
	char      style.CharStyle

	// clusters is the shared, caller-owned buffer for the whole layout
	// call; LineControl only ever mutates flags on it, never appends or
	// removes elements.
	clusters []cluster.GlyphCluster

	colLeft, colRight dimen.Abs

	xPos, yPos      dimen.Abs
	ascent, descent dimen.Abs

	firstIdx int // global index of the first cluster on this line
	lastIdx  int // global index of the last appended cluster; firstIdx-1 if empty

	maxShrink, maxStretch dimen.Abs

	breakIndex         int // global index of the remembered break; -1 if none
	breakXPos          dimen.Abs
	breakPenalty       dimen.Abs
	breakIsHyphenation bool

	lineX, lineY dimen.Abs
	lineWidth    dimen.Abs
	committed    bool // true once FinishLine or BreakLine+FinishLine has run
}

// NewLineControl creates a LineControl over the given shared cluster
// buffer, for a column spanning [colLeft, colRight).
func NewLineControl(clusters []cluster.GlyphCluster, paragraph style.ParagraphStyle, char style.CharStyle, colLeft, colRight dimen.Abs) *LineControl {
	return &LineControl{
		clusters:  clusters,
		paragraph: paragraph,
		char:      char,
		colLeft:   colLeft,
		colRight:  colRight,
	}
}

// EffectiveRight is the right edge minus the right margin: the x beyond
// which a line overflows.
func (lc *LineControl) EffectiveRight() dimen.Abs {
	return lc.colRight - lc.paragraph.RightMargin
}

// StartLine resets the accumulator for a new line beginning at the global
// cluster index firstCluster, with baseline yPos. isFirstLine controls
// whether FirstLineIndent is applied.
func (lc *LineControl) StartLine(firstCluster int, yPos dimen.Abs, isFirstLine bool) {
	lc.firstIdx = firstCluster
	lc.lastIdx = firstCluster - 1
	lc.yPos = yPos
	lc.xPos = lc.colLeft + lc.paragraph.LeftMargin
	if isFirstLine {
		lc.xPos += lc.paragraph.FirstLineIndent
	}
	lc.ascent = 0
	lc.descent = 0
	lc.maxShrink = 0
	lc.maxStretch = 0
	lc.breakIndex = -1
	lc.breakXPos = 0
	lc.breakPenalty = 0
	lc.breakIsHyphenation = false
	lc.lineX = lc.xPos
	lc.lineY = yPos
	lc.committed = false
}

// IsEmpty reports whether any cluster has been appended since StartLine.
func (lc *LineControl) IsEmpty() bool {
	return lc.lastIdx < lc.firstIdx
}

// XPos returns the current pen position.
func (lc *LineControl) XPos() dimen.Abs {
	return lc.xPos
}

// YPos returns the line's current baseline.
func (lc *LineControl) YPos() dimen.Abs {
	return lc.yPos
}

// SetAlignment overrides the paragraph alignment consulted by AlignLine and
// JustifyLine, without touching any other paragraph field. The driver uses
// this to force Left alignment on the last line of a paragraph (spec.md
// §4.2, "Terminating the last line") and restores the original value
// afterward.
func (lc *LineControl) SetAlignment(a style.Alignment) style.Alignment {
	old := lc.paragraph.Alignment
	lc.paragraph.Alignment = a
	return old
}

// FirstIndex returns the global index of the first cluster on the line.
func (lc *LineControl) FirstIndex() int {
	return lc.firstIdx
}

// LastIndex returns the global index of the last appended cluster, or
// FirstIndex()-1 if the line is empty.
func (lc *LineControl) LastIndex() int {
	return lc.lastIdx
}

// HasRememberedBreak reports whether RememberBreak has recorded a
// candidate since the line started.
func (lc *LineControl) HasRememberedBreak() bool {
	return lc.breakIndex >= 0
}

// BreakIndex returns the global index of the remembered break, or -1.
func (lc *LineControl) BreakIndex() int {
	return lc.breakIndex
}

// MaxShrink returns the line's accumulated shrink budget.
func (lc *LineControl) MaxShrink() dimen.Abs {
	return lc.maxShrink
}

// AddCluster appends the cluster at the given global index (which must be
// LastIndex()+1) to the line and advances the pen.
func (lc *LineControl) AddCluster(index int) {
	c := &lc.clusters[index]
	lc.xPos += c.Width + c.ExtraWidth
	if c.Ascent > lc.ascent {
		lc.ascent = c.Ascent
	}
	if c.Descent > lc.descent {
		lc.descent = c.Descent
	}
	if c.HasFlag(cluster.ExpandingSpace) {
		lc.maxShrink += c.Width * dimen.Abs(1-lc.paragraph.MinWordSpacing)
		lc.maxStretch += c.Width * dimen.Abs(lc.paragraph.MaxWordSpacing-1)
	}
	lc.lastIdx = index
}

// RememberBreak considers a break candidate at global index with the given
// pen position (candidateX may already include a trailing hyphen width).
// A new candidate replaces the stored one iff its badness is strictly
// lower, except for the hanging-space exception: if the last appended
// cluster is an ExpandingSpace and candidateX is already at or past the
// effective right edge, the candidate unconditionally replaces the old
// one so trailing spaces can be hung and suppressed at finish time.
func (lc *LineControl) RememberBreak(index int, candidateX dimen.Abs, isHyphenation bool) {
	penalty := dimen.Abs(0)
	if isHyphenation {
		penalty = lc.paragraph.HyphenPenalty
	}

	hangingException := lc.lastIdx >= lc.firstIdx &&
		lc.clusters[lc.lastIdx].HasFlag(cluster.ExpandingSpace) &&
		candidateX >= lc.EffectiveRight()

	if !lc.HasRememberedBreak() || hangingException {
		lc.setBreak(index, candidateX, penalty, isHyphenation)
		return
	}

	oldBadness := Badness(lc.breakXPos, lc.EffectiveRight(), lc.breakPenalty)
	newBadness := Badness(candidateX, lc.EffectiveRight(), penalty)
	if newBadness < oldBadness {
		lc.setBreak(index, candidateX, penalty, isHyphenation)
	}
}

func (lc *LineControl) setBreak(index int, x, penalty dimen.Abs, isHyphenation bool) {
	lc.breakIndex = index
	lc.breakXPos = x
	lc.breakPenalty = penalty
	lc.breakIsHyphenation = isHyphenation
}

// BreakLine forces a break at lastIndex, used for hard newlines and for a
// forced overflow with no admissible break recorded. It recomputes
// breakXPos by summing widths and extra widths from the line start up to
// lastIndex and refreshes ascent/descent over that range.
func (lc *LineControl) BreakLine(lastIndex int) {
	lc.breakIndex = lastIndex
	lc.breakPenalty = 0
	lc.breakIsHyphenation = false

	x := lc.lineX
	var ascent, descent dimen.Abs
	for i := lc.firstIdx; i <= lastIndex; i++ {
		c := &lc.clusters[i]
		x += c.Width + c.ExtraWidth
		if c.Ascent > ascent {
			ascent = c.Ascent
		}
		if c.Descent > descent {
			descent = c.Descent
		}
	}
	lc.breakXPos = x
	lc.ascent, lc.descent = ascent, descent
}

// IsEndOfLine is the overflow predicate: it admits shrinking of expandable
// spaces down to the paragraph's MinWordSpacing bound before declaring
// overflow.
func (lc *LineControl) IsEndOfLine(extra dimen.Abs) bool {
	return lc.xPos+extra-lc.maxShrink >= lc.EffectiveRight()
}

// FinishLine commits the stored break: the line's clusters are truncated
// to [firstIdx, breakIndex], and width is recorded as endX-lineX (the
// engine passes EffectiveRight() for every line, including forced and
// last lines). The shrink/stretch budget is reset afterward since
// it no longer applies to a finalized line.
func (lc *LineControl) FinishLine(endX dimen.Abs) {
	lc.lastIdx = lc.breakIndex
	lc.lineWidth = endX - lc.lineX
	lc.maxShrink = 0
	lc.maxStretch = 0
	lc.committed = true
}

// naturalWidth sums the widths of non-suppressed clusters on the
// committed line (spec.md §8 invariant 3).
func (lc *LineControl) naturalWidth() dimen.Abs {
	var total dimen.Abs
	for i := lc.firstIdx; i <= lc.lastIdx; i++ {
		c := &lc.clusters[i]
		if c.HasFlag(cluster.SuppressSpace) {
			continue
		}
		total += c.Width
	}
	return total
}

// JustifyLine is only meaningful for Justified alignment; callers are
// responsible for not invoking it on the last line of a paragraph (spec.md
// §8 property 7). It distributes residual slack across the line's
// expandable, non-suppressed spaces.
func (lc *LineControl) JustifyLine() {
	slack := (lc.colRight - lc.paragraph.RightMargin - lc.lineX) - lc.naturalWidth()
	if slack <= 0 {
		return
	}
	var expandable []int
	for i := lc.firstIdx; i <= lc.lastIdx; i++ {
		c := &lc.clusters[i]
		if c.HasFlag(cluster.ExpandingSpace) && !c.HasFlag(cluster.SuppressSpace) {
			expandable = append(expandable, i)
		}
	}
	if len(expandable) == 0 {
		return
	}
	share := slack / dimen.Abs(len(expandable))
	for _, i := range expandable {
		lc.clusters[i].ExtraWidth = share
	}
}

// AlignLine returns the x offset to apply to the line's starting position
// for non-justified alignments. Negative slack (an overfull line) yields
// no shift.
func (lc *LineControl) AlignLine() dimen.Abs {
	slack := lc.lineWidth - lc.naturalWidth()
	if slack <= 0 {
		return 0
	}
	switch lc.paragraph.Alignment {
	case style.AlignRight:
		return slack
	case style.AlignCenter:
		return slack / 2
	default:
		return 0
	}
}

// NextLine advances the baseline by lineHeight and resets y_pos for the
// next StartLine call.
func (lc *LineControl) NextLine(lineHeight dimen.Abs) dimen.Abs {
	lc.yPos += lineHeight
	return lc.yPos
}

// CreateLineSpec returns a finalized copy of the current line. offset
// shifts the recorded x position (the result of AlignLine); column
// records which column this line belongs to.
func (lc *LineControl) CreateLineSpec(offset dimen.Abs, column int) LineSpec {
	out := make([]cluster.GlyphCluster, lc.lastIdx-lc.firstIdx+1)
	copy(out, lc.clusters[lc.firstIdx:lc.lastIdx+1])
	return LineSpec{
		X:            lc.lineX + offset,
		Y:            lc.lineY,
		Width:        lc.lineWidth,
		NaturalWidth: lc.naturalWidth(),
		Height:       lc.ascent + lc.descent,
		Ascent:       lc.ascent,
		Descent:      lc.descent,
		FirstCluster: lc.firstIdx,
		LastCluster:  lc.lastIdx,
		Clusters:     out,
		Column:       column,
	}
}
