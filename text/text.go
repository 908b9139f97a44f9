// Package text supplies the two external collaborators the layout core
// depends on but never implements itself: shaping raw text into glyph
// clusters, and proposing hyphenation points inside a word. Both are
// interfaces so a caller can plug in a real font shaper; this package also
// ships reference implementations good enough to run the engine
// end-to-end without one.
package text

import "github.com/typeflow/typeflow/cluster"

// Shaper turns a run of source text into glyph clusters carrying widths
// and break flags. Implementations are expected to mark LineBoundary on
// clusters after which a break is legal, and ExpandingSpace on spaces
// that may stretch or shrink under justification.
type Shaper interface {
	Shape(text string) []cluster.GlyphCluster
}

// Hyphenator proposes hyphenation points inside words. The engine hands it
// the whole shaped text in one call. It marks HyphenationPossible on the
// cluster that ends each candidate syllable; SoftHyphenVisible is left
// unset, since the engine sets it only on a hyphenation break it takes.
type Hyphenator interface {
	AddHyphenation(clusters []cluster.GlyphCluster)
}
