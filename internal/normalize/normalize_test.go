package normalize

import "testing"

func TestNormalizer_TurkishLowercase(t *testing.T) {
	n := New()

	// Dotted and dotless I follow Turkish rules, not ASCII ones
	got := n.Normalize("İstanbul IŞIK")
	want := "istanbul ışık"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestNormalizer_DashAndApostropheVariants(t *testing.T) {
	n := New()

	got := n.Normalize("15 Ocak – 20 Ocak, Axess’e özel")
	want := "15 ocak - 20 ocak, axess'e özel"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestNormalizer_WhitespaceCollapse(t *testing.T) {
	n := New()

	got := n.Normalize("  1500   TL\t ve \n üzeri  ")
	want := "1500 tl ve üzeri"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestNormalizer_Empty(t *testing.T) {
	n := New()
	if got := n.Normalize(""); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
}

func TestStripSuffixes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"31 aralık 2025'e kadar", "31 aralık 2025 kadar"},
		{"1.500 tl'ye varan", "1.500 tl varan"},
		{"migros'ta geçerli", "migros geçerli"},
		{"axess'e özel", "axess özel"},
		// No apostrophe, nothing to strip
		{"toplam 450 tl", "toplam 450 tl"},
	}

	for _, tt := range tests {
		if got := StripSuffixes(tt.in); got != tt.want {
			t.Errorf("StripSuffixes(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
