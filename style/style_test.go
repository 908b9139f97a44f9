package style

import "testing"

func TestAlignmentString(t *testing.T) {
	cases := map[Alignment]string{
		AlignLeft:      "left",
		AlignRight:     "right",
		AlignCenter:    "center",
		AlignJustified: "justified",
		Alignment(99):  "unknown",
	}
	for a, want := range cases {
		if got := a.String(); got != want {
			t.Errorf("Alignment(%d).String() = %q, want %q", a, got, want)
		}
	}
}

func TestDefaultParagraphStyle(t *testing.T) {
	s := DefaultParagraphStyle()
	if s.Alignment != AlignLeft {
		t.Errorf("default alignment = %v, want AlignLeft", s.Alignment)
	}
	if s.MinWordSpacing >= s.MaxWordSpacing {
		t.Errorf("MinWordSpacing %v should be < MaxWordSpacing %v", s.MinWordSpacing, s.MaxWordSpacing)
	}
	if s.Hyphenate {
		t.Error("default style should not hyphenate")
	}
}

func TestDefaultCharStyle(t *testing.T) {
	c := DefaultCharStyle()
	if c.FontSize <= 0 {
		t.Errorf("FontSize = %v, want positive", c.FontSize)
	}
}
