package textutil

import "testing"

func TestNormalizeKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Image URL", "imageurl"},
		{"image_url", "imageurl"},
		{"IMAGE-URL", "imageurl"},
		{"  Handle ID  ", "handleid"},
		{"price ($)", "price"},
		{"option1/value", "option1value"},
		{"", ""},
		{"***", ""},
	}

	for _, tc := range tests {
		if got := NormalizeKey(tc.in); got != tc.want {
			t.Fatalf("NormalizeKey(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStripBOM(t *testing.T) {
	t.Parallel()

	if got := StripBOM("\uFEFFName,Image"); got != "Name,Image" {
		t.Fatalf("StripBOM = %q", got)
	}
	if got := StripBOM("Name,Image"); got != "Name,Image" {
		t.Fatalf("StripBOM without bom = %q", got)
	}
}

func TestIsBlank(t *testing.T) {
	t.Parallel()

	if !IsBlank("  \t ") {
		t.Fatalf("expected whitespace to be blank")
	}
	if IsBlank(" x ") {
		t.Fatalf("expected non-empty value to not be blank")
	}
}
