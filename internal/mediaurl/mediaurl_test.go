package mediaurl

import "testing"

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		in        string
		wantFull  string
		wantThumb string
	}{
		{
			name: "empty",
			in:   "",
		},
		{
			name:      "complete url passes through",
			in:        "https://img.example.com/a.jpg",
			wantFull:  "https://img.example.com/a.jpg",
			wantThumb: "https://img.example.com/a.jpg",
		},
		{
			name:      "protocol relative gets https",
			in:        "//cdn.example.com/a.jpg",
			wantFull:  "https://cdn.example.com/a.jpg",
			wantThumb: "https://cdn.example.com/a.jpg",
		},
		{
			name:      "semicolon list keeps first",
			in:        "https://img.example.com/a.jpg;https://img.example.com/b.jpg",
			wantFull:  "https://img.example.com/a.jpg",
			wantThumb: "https://img.example.com/a.jpg",
		},
		{
			name:      "pipe list keeps first",
			in:        "https://img.example.com/a.jpg|https://img.example.com/b.jpg",
			wantFull:  "https://img.example.com/a.jpg",
			wantThumb: "https://img.example.com/a.jpg",
		},
		{
			name:      "comma list keeps first trimmed",
			in:        "https://img.example.com/a.jpg, https://img.example.com/b.jpg",
			wantFull:  "https://img.example.com/a.jpg",
			wantThumb: "https://img.example.com/a.jpg",
		},
		{
			name:      "list then protocol relative",
			in:        "//cdn.example.com/a.jpg;//cdn.example.com/b.jpg",
			wantFull:  "https://cdn.example.com/a.jpg",
			wantThumb: "https://cdn.example.com/a.jpg",
		},
		{
			name:      "json string array",
			in:        `["https://img.example.com/a.jpg","https://img.example.com/b.jpg"]`,
			wantFull:  "https://img.example.com/a.jpg",
			wantThumb: "https://img.example.com/a.jpg",
		},
		{
			name:      "json object array with src",
			in:        `[{"src":"https://img.example.com/a.jpg"},{"src":"https://img.example.com/b.jpg"}]`,
			wantFull:  "https://img.example.com/a.jpg",
			wantThumb: "https://img.example.com/a.jpg",
		},
		{
			name:      "json object with url",
			in:        `{"url":"https://img.example.com/a.jpg","alt":"a"}`,
			wantFull:  "https://img.example.com/a.jpg",
			wantThumb: "https://img.example.com/a.jpg",
		},
		{
			name:      "json key order url before id",
			in:        `{"id":"ignored.jpg","url":"https://img.example.com/a.jpg"}`,
			wantFull:  "https://img.example.com/a.jpg",
			wantThumb: "https://img.example.com/a.jpg",
		},
		{
			name:      "invalid json falls through verbatim",
			in:        "[not json at all",
			wantFull:  "[not json at all",
			wantThumb: "[not json at all",
		},
		{
			name:      "bare media filename",
			in:        "8bb231_abf910~mv2.jpg",
			wantFull:  "https://static.wixstatic.com/media/8bb231_abf910~mv2.jpg",
			wantThumb: "https://static.wixstatic.com/media/8bb231_abf910~mv2.jpg/v1/fill/w_400,h_400,al_c,q_80/8bb231_abf910~mv2.jpg",
		},
		{
			name:      "bare media filename without marker",
			in:        "8bb231_abf910.png",
			wantFull:  "https://static.wixstatic.com/media/8bb231_abf910.png",
			wantThumb: "https://static.wixstatic.com/media/8bb231_abf910.png/v1/fill/w_400,h_400,al_c,q_80/8bb231_abf910.png",
		},
		{
			name:      "internal uri scheme with marker segment",
			in:        "wix:image://v1/8bb231_abf910~mv2.jpg/cat.jpg#originWidth=2048&originHeight=1365",
			wantFull:  "https://static.wixstatic.com/media/8bb231_abf910~mv2.jpg",
			wantThumb: "https://static.wixstatic.com/media/8bb231_abf910~mv2.jpg/v1/fill/w_400,h_400,al_c,q_80/8bb231_abf910~mv2.jpg",
		},
		{
			name:      "static url with marker segment is canonicalized",
			in:        "https://static.wixstatic.com/media/8bb231_abf910~mv2.jpg/v1/fit/w_500,h_500/file.jpg",
			wantFull:  "https://static.wixstatic.com/media/8bb231_abf910~mv2.jpg",
			wantThumb: "https://static.wixstatic.com/media/8bb231_abf910~mv2.jpg/v1/fill/w_400,h_400,al_c,q_80/8bb231_abf910~mv2.jpg",
		},
		{
			name:      "json id key feeds media detection",
			in:        `{"id":"8bb231_abf910~mv2.jpg"}`,
			wantFull:  "https://static.wixstatic.com/media/8bb231_abf910~mv2.jpg",
			wantThumb: "https://static.wixstatic.com/media/8bb231_abf910~mv2.jpg/v1/fill/w_400,h_400,al_c,q_80/8bb231_abf910~mv2.jpg",
		},
		{
			name:      "short hex runs are not media filenames",
			in:        "ab12_cd34.jpg",
			wantFull:  "ab12_cd34.jpg",
			wantThumb: "ab12_cd34.jpg",
		},
		{
			name:      "relative path falls through verbatim",
			in:        "images/products/chair.png",
			wantFull:  "images/products/chair.png",
			wantThumb: "images/products/chair.png",
		},
		{
			name:      "whitespace trimmed",
			in:        "  https://img.example.com/a.jpg  ",
			wantFull:  "https://img.example.com/a.jpg",
			wantThumb: "https://img.example.com/a.jpg",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Resolve(tc.in)
			if got.Full != tc.wantFull {
				t.Fatalf("Resolve(%q).Full = %q, want %q", tc.in, got.Full, tc.wantFull)
			}
			if got.Thumb != tc.wantThumb {
				t.Fatalf("Resolve(%q).Thumb = %q, want %q", tc.in, got.Thumb, tc.wantThumb)
			}
		})
	}
}

func TestResolve_EmptyJSONArrayKeepsRawText(t *testing.T) {
	t.Parallel()

	got := Resolve("[]")
	if got.Full != "[]" || got.Thumb != "[]" {
		t.Fatalf("expected verbatim fallback for empty array, got %+v", got)
	}
}
