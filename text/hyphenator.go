package text

import "github.com/typeflow/typeflow/cluster"

// DefaultHyphenator is a heuristic Hyphenator: it marks a candidate
// hyphenation point at every vowel-to-consonant transition inside a run of
// at least five letter clusters, placed so that at least two letters stay
// before the hyphen and at least three follow it. It has no
// dictionary and does not attempt to be linguistically correct; it exists
// so the engine can be exercised and tested without a real hyphenation
// dictionary wired in.
type DefaultHyphenator struct{}

// AddHyphenation implements Hyphenator. The engine hands it an entire
// shaped document in one call, so it first splits the run into maximal
// letter-only words (runs of single-letter clusters bounded by spaces,
// punctuation, or hard breaks) and applies the vowel-consonant heuristic
// independently within each word; a document containing any space or
// punctuation must not disable hyphenation for every word after it.
func (DefaultHyphenator) AddHyphenation(clusters []cluster.GlyphCluster) {
	start := -1
	for i := 0; i <= len(clusters); i++ {
		letter := i < len(clusters) && isLetterCluster(clusters[i])
		switch {
		case letter && start < 0:
			start = i
		case !letter && start >= 0:
			hyphenateWord(clusters[start:i])
			start = -1
		}
	}
}

// hyphenateWord marks candidate breaks inside one maximal run of letter
// clusters, considering only breaks that leave at least two letters before
// the hyphen and three after it. SoftHyphenVisible is left for the engine to set when
// it actually commits a break at one of these points.
func hyphenateWord(word []cluster.GlyphCluster) {
	if len(word) < 5 {
		return
	}
	for i := 2; i < len(word)-2; i++ {
		if shouldHyphenateAt(word, i) {
			word[i-1].SetFlag(cluster.HyphenationPossible)
		}
	}
}

func isLetterCluster(c cluster.GlyphCluster) bool {
	r := soleRune(c.Text)
	return r != 0 && isLetter(r)
}

// shouldHyphenateAt reports whether a break is plausible immediately
// before cluster index pos: the preceding cluster is a vowel and the
// current one is a consonant.
func shouldHyphenateAt(clusters []cluster.GlyphCluster, pos int) bool {
	prev := soleRune(clusters[pos-1].Text)
	curr := soleRune(clusters[pos].Text)
	return isVowel(prev) && !isVowel(curr)
}

func soleRune(s string) rune {
	runes := []rune(s)
	if len(runes) != 1 {
		return 0
	}
	return runes[0]
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || isVowel(r)
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u',
		'A', 'E', 'I', 'O', 'U',
		'á', 'é', 'í', 'ó', 'ú',
		'ä', 'ö', 'ü':
		return true
	default:
		return false
	}
}
