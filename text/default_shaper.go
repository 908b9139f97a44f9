package text

import (
	"io"
	"log"

	"github.com/go-text/typesetting/segmenter"
	"github.com/rivo/uniseg"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"

	"github.com/typeflow/typeflow/cluster"
	"github.com/typeflow/typeflow/dimen"
)

// debugLog reports DefaultShaper's measurement fallbacks. It is silent by
// default; callers that want to see it (e.g. diagnosing why glyph widths
// look approximate) redirect it with SetDebugOutput.
var debugLog = log.New(io.Discard, "text: ", log.LstdFlags)

// SetDebugOutput redirects DefaultShaper's fallback diagnostics to w.
// Passing io.Discard silences it again.
func SetDebugOutput(w io.Writer) {
	debugLog.SetOutput(w)
}

// DefaultShaper is a reference Shaper good enough to exercise the layout
// engine without a real font backend. It splits text into grapheme
// clusters with uniseg, locates legal line-break positions with
// go-text/typesetting's UAX#14 segmenter, and estimates advances from a
// fixed per-rune width rather than real glyph metrics.
type DefaultShaper struct {
	// FontSize drives the width estimate: each non-space rune advances by
	// half an em, a monospace approximation real shapers replace with
	// font metrics.
	FontSize dimen.Abs
}

// NewDefaultShaper returns a DefaultShaper sized for the given font size.
func NewDefaultShaper(fontSize dimen.Abs) *DefaultShaper {
	return &DefaultShaper{FontSize: fontSize}
}

func toFixed(f float64) fixed.Int26_6 {
	return fixed.Int26_6(f * 64) // 26.6 fixed point
}

func fromFixed(f fixed.Int26_6) dimen.Abs {
	return dimen.Abs(float64(f) / 64)
}

// Shape implements Shaper.
func (s *DefaultShaper) Shape(text string) []cluster.GlyphCluster {
	runes := []rune(text)
	breakAfter := s.lineBreakPositions(runes)

	out := make([]cluster.GlyphCluster, 0, len(runes))
	gr := uniseg.NewGraphemes(text)
	byteOffset := 0
	runeOffset := 0
	loggedFallback := false
	for gr.Next() {
		seg := gr.Str()
		segRunes := gr.Runes()
		first := byteOffset
		last := byteOffset + len(seg) - 1

		c := cluster.GlyphCluster{
			FirstChar: first,
			LastChar:  last,
			Text:      seg,
		}

		switch {
		case seg == "\n":
			c.Width = 0
		case isBreakingSpace(segRunes):
			c.Width = s.advance(1)
			c.SetFlag(cluster.ExpandingSpace)
		case seg == "­":
			// Soft hyphen: invisible unless the engine chooses it as a
			// break, which is when it sets SoftHyphenVisible.
			c.Width = 0
			c.SetFlag(cluster.HyphenationPossible)
		default:
			c.Width = s.advance(len(segRunes))
			if !loggedFallback {
				debugLog.Printf("no font backend: estimating glyph widths at %.2f per rune", float64(s.FontSize)*0.5)
				loggedFallback = true
			}
		}

		if len(segRunes) == 1 {
			if cjkClosers[segRunes[0]] {
				c.SetFlag(cluster.NoBreakBefore)
			}
			if cjkOpeners[segRunes[0]] {
				c.SetFlag(cluster.NoBreakAfter)
			}
		}

		endRune := runeOffset + len(segRunes) - 1
		if endRune >= 0 && endRune < len(breakAfter) && breakAfter[endRune] {
			c.SetFlag(cluster.LineBoundary)
		}

		out = append(out, c)
		byteOffset += len(seg)
		runeOffset += len(segRunes)
	}
	return out
}

// advance estimates the width of n runes at half an em apiece, rounded
// through 26.6 fixed point the way a real shaper's glyph advances would be.
func (s *DefaultShaper) advance(n int) dimen.Abs {
	perRune := fromFixed(toFixed(float64(s.FontSize) * 0.5))
	return perRune * dimen.Abs(n)
}

// lineBreakPositions returns, for every rune index i, whether a line break
// is legal immediately after rune i.
func (s *DefaultShaper) lineBreakPositions(runes []rune) []bool {
	legal := make([]bool, len(runes))
	var seg segmenter.Segmenter
	seg.Init(runes)
	iter := seg.LineIterator()
	for iter.Next() {
		line := iter.Line()
		end := line.Offset + len(line.Text)
		if end-1 >= 0 && end-1 < len(legal) {
			legal[end-1] = true
		}
	}
	return legal
}

// cjkOpeners and cjkClosers carry the directional break restriction a
// shaper must flag per spec.md §6: an opening bracket/quote must never end
// a line (NoBreakAfter), and a closing bracket/quote or trailing
// punctuation mark must never start one (NoBreakBefore). x/text/bidi's
// class lookup does not distinguish openers from closers (both are class
// ON), so this is a small dedicated rune set rather than a bidi query.
var cjkOpeners = map[rune]bool{
	'「': true, '『': true, '（': true, '【': true, '〈': true, '《': true,
	'“': true, '‘': true,
}

var cjkClosers = map[rune]bool{
	'」': true, '』': true, '）': true, '】': true, '〉': true, '》': true,
	'”': true, '’': true,
	'、': true, '。': true, '，': true, '！': true, '？': true, '：': true, '；': true,
}

func isBreakingSpace(runes []rune) bool {
	if len(runes) != 1 {
		return false
	}
	props, _ := bidi.LookupRune(runes[0])
	switch props.Class() {
	case bidi.WS, bidi.S, bidi.B:
		return true
	}
	return runes[0] == ' ' || runes[0] == '\t'
}
