package style

import "testing"

func TestLoadParagraphStyleTOML(t *testing.T) {
	data := []byte(`
alignment = "justified"
left_margin = 36
right_margin = 36
first_line_indent = 12
line_spacing = 1.15
min_word_spacing = 0.7
max_word_spacing = 1.4
hyphenate = true
hyphen_consecutive_limit = 3
hyphen_penalty = 75
`)
	got, err := LoadParagraphStyle(data)
	if err != nil {
		t.Fatalf("LoadParagraphStyle: %v", err)
	}
	if got.Alignment != AlignJustified {
		t.Errorf("Alignment = %v, want AlignJustified", got.Alignment)
	}
	if got.LeftMargin != 36 || got.RightMargin != 36 {
		t.Errorf("margins = %v/%v, want 36/36", got.LeftMargin, got.RightMargin)
	}
	if !got.Hyphenate || got.HyphenConsecutiveLimit != 3 {
		t.Errorf("hyphenation settings not decoded: %+v", got)
	}
}

func TestLoadParagraphStyleTOMLBadAlignment(t *testing.T) {
	_, err := LoadParagraphStyle([]byte(`alignment = "diagonal"`))
	if err == nil {
		t.Fatal("expected an error for an unknown alignment")
	}
}

func TestLoadParagraphStylesYAML(t *testing.T) {
	data := []byte(`
body:
  alignment: justified
  left_margin: 36
  hyphenate: true
caption:
  alignment: left
  line_spacing: 1.0
`)
	got, err := LoadParagraphStylesYAML(data)
	if err != nil {
		t.Fatalf("LoadParagraphStylesYAML: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d presets, want 2", len(got))
	}
	body, ok := got["body"]
	if !ok {
		t.Fatal("missing body preset")
	}
	if body.Alignment != AlignJustified || !body.Hyphenate {
		t.Errorf("body preset decoded wrong: %+v", body)
	}
	caption, ok := got["caption"]
	if !ok {
		t.Fatal("missing caption preset")
	}
	if caption.Alignment != AlignLeft || caption.LineSpacing != 1.0 {
		t.Errorf("caption preset decoded wrong: %+v", caption)
	}
}

func TestLoadParagraphStylesYAMLBadAlignment(t *testing.T) {
	_, err := LoadParagraphStylesYAML([]byte("body:\n  alignment: sideways\n"))
	if err == nil {
		t.Fatal("expected an error for an unknown alignment")
	}
}
