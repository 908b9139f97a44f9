// Package engine implements the LayoutEngine driver described in
// spec.md §4.2: it walks a shaped cluster sequence, feeds clusters to a
// linectl.LineControl, detects overflow and hard breaks, rewinds to
// remembered breaks, advances the baseline, and — for multi-column layout
// — repeats the same segment routine across columns until the text or the
// available space is exhausted.
package engine

import (
	"github.com/typeflow/typeflow/cluster"
	"github.com/typeflow/typeflow/dimen"
	"github.com/typeflow/typeflow/linectl"
	"github.com/typeflow/typeflow/style"
	"github.com/typeflow/typeflow/text"
)

// DefaultColumnGap is substituted by LayoutColumns when callers pass a
// zero column gap (spec.md §6's column_gap=20 default).
const DefaultColumnGap dimen.Abs = 20 * dimen.Pt

// hyphenWidthRatio is the fallback hyphen advance as a fraction of the
// font size, used when scoring a hyphenation break candidate (spec.md
// §4.2, "Hyphen width").
const hyphenWidthRatio = 0.3

// fallbackAscentRatio and fallbackDescentRatio size a cluster's box when a
// shaper could not measure it (spec.md §6).
const (
	fallbackWidthRatio   = 0.6
	fallbackAscentRatio  = 0.8
	fallbackDescentRatio = 0.2
)

// LayoutResult is the outcome of a single-column Layout call.
type LayoutResult struct {
	Lines            []linectl.LineSpec
	Overflow         bool
	LastClusterIndex int
}

// ColumnSpec is one column of a multi-column layout.
type ColumnSpec struct {
	X, Y, Width, Height dimen.Abs
	Lines               []linectl.LineSpec
}

// MultiColumnResult is the outcome of a LayoutColumns call.
type MultiColumnResult struct {
	Columns          []ColumnSpec
	Overflow         bool
	LastClusterIndex int
}

// Engine is the layout driver. It is not safe for concurrent use by
// multiple goroutines, and a single instance must not have two Layout or
// LayoutColumns calls in flight at once (spec.md §5).
type Engine struct {
	paragraph  style.ParagraphStyle
	char       style.CharStyle
	shaper     text.Shaper
	hyphenator text.Hyphenator
}

// NewEngine builds an Engine with default paragraph and character styles.
// hyphenator may be nil if style.Hyphenate is never set to true.
func NewEngine(shaper text.Shaper, hyphenator text.Hyphenator) *Engine {
	return &Engine{
		paragraph:  style.DefaultParagraphStyle(),
		char:       style.DefaultCharStyle(),
		shaper:     shaper,
		hyphenator: hyphenator,
	}
}

// SetParagraphStyle replaces the active paragraph style.
func (e *Engine) SetParagraphStyle(s style.ParagraphStyle) {
	e.paragraph = s
}

// SetCharStyle replaces the active character style.
func (e *Engine) SetCharStyle(c style.CharStyle) {
	e.char = c
}

func fillMeasurements(clusters []cluster.GlyphCluster, fontSize dimen.Abs) {
	for i := range clusters {
		c := &clusters[i]
		if c.Width == 0 && c.Ascent == 0 && c.Descent == 0 && c.Text != "" && c.Text != "\n" {
			c.Width = dimen.Abs(len([]rune(c.Text))) * fontSize * fallbackWidthRatio
			c.Ascent = fontSize * fallbackAscentRatio
			c.Descent = fontSize * fallbackDescentRatio
		}
	}
}

// Layout lays text out into a single column of the given width. maxHeight
// is optional; a nil value means unbounded.
func (e *Engine) Layout(input string, width dimen.Abs, maxHeight *dimen.Abs) LayoutResult {
	clusters := e.shaper.Shape(input)
	if len(clusters) == 0 {
		return LayoutResult{LastClusterIndex: 0}
	}
	fillMeasurements(clusters, e.char.FontSize)
	if e.paragraph.Hyphenate && e.hyphenator != nil {
		e.hyphenator.AddHyphenation(clusters)
	}

	consecutiveHyphens := 0
	lines, overflow, cursor := e.runSegment(clusters, 0, 0, width, maxHeight, true, &consecutiveHyphens)
	return LayoutResult{
		Lines:            lines,
		Overflow:         overflow,
		LastClusterIndex: lastIncluded(cursor),
	}
}

// LayoutColumns flows text across columnCount columns of equal width,
// partitioning totalWidth minus (columnCount-1)*columnGap evenly.
func (e *Engine) LayoutColumns(input string, columnCount int, totalWidth, columnHeight, columnGap dimen.Abs) MultiColumnResult {
	if columnGap == 0 {
		columnGap = DefaultColumnGap
	}

	columns := make([]ColumnSpec, columnCount)
	colWidth := (totalWidth - dimen.Abs(columnCount-1)*columnGap) / dimen.Abs(columnCount)
	for c := 0; c < columnCount; c++ {
		columns[c] = ColumnSpec{
			X:      dimen.Abs(c) * (colWidth + columnGap),
			Width:  colWidth,
			Height: columnHeight,
		}
	}

	clusters := e.shaper.Shape(input)
	if len(clusters) == 0 {
		return MultiColumnResult{Columns: columns, LastClusterIndex: 0}
	}
	fillMeasurements(clusters, e.char.FontSize)
	if e.paragraph.Hyphenate && e.hyphenator != nil {
		e.hyphenator.AddHyphenation(clusters)
	}

	cursor := 0
	consecutiveHyphens := 0
	for c := 0; c < columnCount && cursor < len(clusters); c++ {
		maxH := columnHeight
		lines, _, next := e.runSegment(clusters, cursor, columns[c].X, colWidth, &maxH, cursor == 0, &consecutiveHyphens)
		for k := range lines {
			lines[k].Column = c
		}
		columns[c].Lines = lines
		cursor = next
	}

	return MultiColumnResult{
		Columns:          columns,
		Overflow:         cursor < len(clusters),
		LastClusterIndex: lastIncluded(cursor),
	}
}

// lastIncluded converts a "next unread cluster" cursor into "index of the
// last cluster included in the output" (SPEC_FULL.md §9 decision 3).
func lastIncluded(cursor int) int {
	if cursor <= 0 {
		return 0
	}
	return cursor - 1
}

// runSegment is the unified segment routine spec.md §9 asks for: it lays
// out clusters[start:] into one column of the given width and (optional)
// height budget, returning the committed lines, whether the height budget
// was exhausted, and the index of the first cluster not yet laid out.
func (e *Engine) runSegment(
	clusters []cluster.GlyphCluster,
	start int,
	xOffset, width dimen.Abs,
	maxHeight *dimen.Abs,
	isFirstInDocument bool,
	consecutiveHyphens *int,
) (lines []linectl.LineSpec, overflow bool, nextCursor int) {
	n := len(clusters)
	colLeft := xOffset
	colRight := xOffset + width
	lineHeight := e.char.FontSize * dimen.Abs(e.paragraph.LineSpacing)
	hyphenWidth := e.char.FontSize * hyphenWidthRatio

	lc := linectl.NewLineControl(clusters, e.paragraph, e.char, colLeft, colRight)

	initialY := e.char.FontSize * fallbackAscentRatio
	if start < n && clusters[start].Ascent > 0 {
		initialY = clusters[start].Ascent
	}
	lc.StartLine(start, initialY, isFirstInDocument)

	// commit finalizes the stored break into a LineSpec, applying
	// justification or alignment, and appends it to lines. The last line
	// of a paragraph is never justified (spec.md §8 property 7), so
	// isLastLine temporarily forces Left alignment for this one call.
	commit := func(isLastLine bool) {
		lc.FinishLine(lc.EffectiveRight())
		if isLastLine && e.paragraph.Alignment == style.AlignJustified {
			old := lc.SetAlignment(style.AlignLeft)
			offset := lc.AlignLine()
			lc.SetAlignment(old)
			lines = append(lines, lc.CreateLineSpec(offset, 0))
			return
		}
		var offset dimen.Abs
		if e.paragraph.Alignment == style.AlignJustified {
			lc.JustifyLine()
		} else {
			offset = lc.AlignLine()
		}
		lines = append(lines, lc.CreateLineSpec(offset, 0))
	}

	// heightOK reports whether a new line may start at baseline newY
	// without exceeding the column's height budget; nil means unbounded.
	heightOK := func(newY dimen.Abs) bool {
		if maxHeight == nil {
			return true
		}
		return newY <= *maxHeight
	}

	i := start
	for i < n {
		c := &clusters[i]

		// 1. Hard break.
		if c.IsHardBreak() {
			if !lc.IsEmpty() {
				lc.BreakLine(i - 1)
				commit(false)
				newY := lc.NextLine(lineHeight)
				if !heightOK(newY) {
					return lines, true, i + 1
				}
				lc.StartLine(i+1, newY, false)
			} else {
				// Consecutive hard break with no content since the last
				// StartLine: skip it without advancing the baseline.
				lc.StartLine(i+1, lc.YPos(), false)
			}
			i++
			continue
		}

		// 2. Projected overflow predicate.
		projectedX := lc.XPos() + c.Width
		overflowNow := projectedX-lc.MaxShrink() >= lc.EffectiveRight()

		// 3. Soft break at a remembered opportunity.
		if !lc.IsEmpty() && lc.HasRememberedBreak() && overflowNow {
			breakIdx := lc.BreakIndex()
			bc := &clusters[breakIdx]
			if bc.HasFlag(cluster.HyphenationPossible) && *consecutiveHyphens < e.paragraph.HyphenConsecutiveLimit {
				bc.SetFlag(cluster.SoftHyphenVisible)
				*consecutiveHyphens++
			} else if bc.HasFlag(cluster.LineBoundary) {
				*consecutiveHyphens = 0
			}

			// Suppress trailing expanding spaces walking backward from
			// the break.
			for j := breakIdx; j >= lc.FirstIndex(); j-- {
				if clusters[j].HasFlag(cluster.ExpandingSpace) {
					clusters[j].SetFlag(cluster.SuppressSpace)
				} else {
					break
				}
			}

			commit(false)
			newY := lc.NextLine(lineHeight)
			if !heightOK(newY) {
				return lines, true, breakIdx + 1
			}
			lc.StartLine(breakIdx+1, newY, false)
			i = breakIdx + 1
			continue
		}

		// 4. Normal step.
		lc.AddCluster(i)
		nextForbidsBreak := i+1 < n && clusters[i+1].HasFlag(cluster.NoBreakBefore)
		if c.HasFlag(cluster.LineBoundary) && !c.HasFlag(cluster.NoBreakAfter) && !nextForbidsBreak {
			lc.RememberBreak(i, lc.XPos(), false)
		}
		if c.HasFlag(cluster.HyphenationPossible) {
			lc.RememberBreak(i, lc.XPos()+hyphenWidth, true)
		}

		// 5. Forced break: overflowed with no admissible break recorded.
		if lc.IsEndOfLine(0) && !lc.HasRememberedBreak() {
			lc.BreakLine(i)
			commit(false)
			newY := lc.NextLine(lineHeight)
			if !heightOK(newY) {
				return lines, true, i + 1
			}
			lc.StartLine(i+1, newY, false)
			i++
			continue
		}

		i++
	}

	// Terminate the last line.
	if !lc.IsEmpty() {
		lc.BreakLine(n - 1)
		commit(true)
	}

	return lines, false, n
}
