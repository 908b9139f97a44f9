package style

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/typeflow/typeflow/dimen"
	"gopkg.in/yaml.v3"
)

// rawStyle mirrors ParagraphStyle with plain scalar fields so it can be
// decoded directly from TOML or YAML documents.
type rawStyle struct {
	Alignment              string  `toml:"alignment" yaml:"alignment"`
	LeftMargin             float64 `toml:"left_margin" yaml:"left_margin"`
	RightMargin            float64 `toml:"right_margin" yaml:"right_margin"`
	FirstLineIndent        float64 `toml:"first_line_indent" yaml:"first_line_indent"`
	LineSpacing            float64 `toml:"line_spacing" yaml:"line_spacing"`
	MinWordSpacing         float64 `toml:"min_word_spacing" yaml:"min_word_spacing"`
	MaxWordSpacing         float64 `toml:"max_word_spacing" yaml:"max_word_spacing"`
	Hyphenate              bool    `toml:"hyphenate" yaml:"hyphenate"`
	HyphenConsecutiveLimit int     `toml:"hyphen_consecutive_limit" yaml:"hyphen_consecutive_limit"`
	HyphenPenalty          float64 `toml:"hyphen_penalty" yaml:"hyphen_penalty"`
}

func parseAlignment(s string) (Alignment, error) {
	switch s {
	case "", "left":
		return AlignLeft, nil
	case "right":
		return AlignRight, nil
	case "center":
		return AlignCenter, nil
	case "justified", "justify":
		return AlignJustified, nil
	default:
		return AlignLeft, fmt.Errorf("style: unknown alignment %q", s)
	}
}

func (r rawStyle) resolve() (ParagraphStyle, error) {
	alignment, err := parseAlignment(r.Alignment)
	if err != nil {
		return ParagraphStyle{}, err
	}
	return ParagraphStyle{
		Alignment:              alignment,
		LeftMargin:             dimen.Abs(r.LeftMargin),
		RightMargin:            dimen.Abs(r.RightMargin),
		FirstLineIndent:        dimen.Abs(r.FirstLineIndent),
		LineSpacing:            r.LineSpacing,
		MinWordSpacing:         r.MinWordSpacing,
		MaxWordSpacing:         r.MaxWordSpacing,
		Hyphenate:              r.Hyphenate,
		HyphenConsecutiveLimit: r.HyphenConsecutiveLimit,
		HyphenPenalty:          dimen.Abs(r.HyphenPenalty),
	}, nil
}

// LoadParagraphStyle reads a single paragraph style from a TOML document,
// e.g.:
//
//	alignment = "justified"
//	left_margin = 36
//	hyphenate = true
//	hyphen_consecutive_limit = 2
func LoadParagraphStyle(data []byte) (ParagraphStyle, error) {
	var raw rawStyle
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return ParagraphStyle{}, fmt.Errorf("style: decode toml: %w", err)
	}
	return raw.resolve()
}

// LoadParagraphStylesYAML reads a house style-sheet of named paragraph
// presets from a YAML document, e.g.:
//
//	body:
//	  alignment: justified
//	  left_margin: 36
//	caption:
//	  alignment: left
//	  line_spacing: 1.0
func LoadParagraphStylesYAML(data []byte) (map[string]ParagraphStyle, error) {
	raw := map[string]rawStyle{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("style: decode yaml: %w", err)
	}
	out := make(map[string]ParagraphStyle, len(raw))
	for name, r := range raw {
		resolved, err := r.resolve()
		if err != nil {
			return nil, fmt.Errorf("style: preset %q: %w", name, err)
		}
		out[name] = resolved
	}
	return out, nil
}
