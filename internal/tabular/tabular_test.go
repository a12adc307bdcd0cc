package tabular

import (
	"strings"
	"testing"
)

func TestRender_AlignsColumns(t *testing.T) {
	t.Parallel()

	out := Render(
		[]string{"HANDLE", "NAME"},
		[][]string{
			{"chair-01", "Walnut Chair"},
			{"l", "Lamp"},
		},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), out)
	}
	// Second column starts at the same offset on every line.
	want := strings.Index(lines[0], "NAME")
	for i, line := range []string{lines[2], lines[3]} {
		cols := []string{"Walnut Chair", "Lamp"}
		if got := strings.Index(line, cols[i]); got != want {
			t.Fatalf("line %d column offset = %d, want %d:\n%s", i, got, want, out)
		}
	}
	if !strings.HasPrefix(lines[1], "------") {
		t.Fatalf("expected separator line, got %q", lines[1])
	}
}

func TestRender_WideRunesKeepAlignment(t *testing.T) {
	t.Parallel()

	out := Render(
		[]string{"NAME", "SIZE"},
		[][]string{
			{"świeca zapachowa", "M"},
			{"面テーブル", "L"},
		},
	)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if got := strings.Count(lines[2], " M"); got == 0 {
		t.Fatalf("expected padded size column, got %q", lines[2])
	}
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
}

func TestRender_MissingCellsReadEmpty(t *testing.T) {
	t.Parallel()

	out := Render([]string{"A", "B"}, [][]string{{"only"}})
	if !strings.Contains(out, "only") {
		t.Fatalf("expected short row to render, got %q", out)
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	if got := Truncate("abcdef", 4); got != "abc…" {
		t.Fatalf("Truncate = %q", got)
	}
	if got := Truncate("ab", 4); got != "ab" {
		t.Fatalf("Truncate short value = %q", got)
	}
}
