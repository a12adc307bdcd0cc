package ingest

import "testing"

func TestResolveColumns_SpellingInvariance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header []string
	}{
		{name: "exact", header: []string{"name", "imageUrl", "price"}},
		{name: "spaced and cased", header: []string{"Product Name", "Image URL", "PRICE"}},
		{name: "underscores and dashes", header: []string{"product_name", "image-url", "unit_price"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cols := resolveColumns(tc.header, nil)
			if cols.name != 0 {
				t.Fatalf("name column = %d, want 0", cols.name)
			}
			if cols.image != 1 {
				t.Fatalf("image column = %d, want 1", cols.image)
			}
			if cols.price != 2 {
				t.Fatalf("price column = %d, want 2", cols.price)
			}
		})
	}
}

func TestResolveColumns_FirstPositionalMatchWins(t *testing.T) {
	t.Parallel()

	cols := resolveColumns([]string{"image", "photo", "picture"}, nil)
	if cols.image != 0 {
		t.Fatalf("image column = %d, want 0", cols.image)
	}
}

func TestResolveColumns_UnmatchedFieldsAreAbsent(t *testing.T) {
	t.Parallel()

	cols := resolveColumns([]string{"name", "price"}, nil)
	if cols.name != 0 || cols.price != 1 {
		t.Fatalf("unexpected resolution: %+v", cols)
	}
	if cols.image != -1 || cols.sku != -1 || cols.date != -1 {
		t.Fatalf("expected absent fields to be -1, got %+v", cols)
	}
}

func TestResolveColumns_UnknownVocabularyFallsBackToPositions(t *testing.T) {
	t.Parallel()

	cols := resolveColumns([]string{"spalte_eins", "spalte_zwei", "spalte_drei"}, nil)
	if cols.name != 0 {
		t.Fatalf("name column = %d, want positional fallback 0", cols.name)
	}
	if cols.image != 1 {
		t.Fatalf("image column = %d, want positional fallback 1", cols.image)
	}
	if cols.price != -1 {
		t.Fatalf("price column = %d, want -1", cols.price)
	}
}

func TestResolveColumns_PartialMatchDisablesFallback(t *testing.T) {
	t.Parallel()

	// One recognized header means the vocabulary is trusted: missing
	// fields stay absent instead of guessing positions.
	cols := resolveColumns([]string{"title", "whatever"}, nil)
	if cols.name != 0 {
		t.Fatalf("name column = %d, want 0", cols.name)
	}
	if cols.image != -1 {
		t.Fatalf("image column = %d, want -1", cols.image)
	}
}

func TestResolveColumns_AliasesExtendVocabulary(t *testing.T) {
	t.Parallel()

	aliases := map[string][]string{
		FieldImageURL: {"Bild"},
		FieldPrice:    {"Preis"},
	}
	cols := resolveColumns([]string{"name", "bild", "preis"}, aliases)
	if cols.image != 1 {
		t.Fatalf("image column = %d, want 1 via alias", cols.image)
	}
	if cols.price != 2 {
		t.Fatalf("price column = %d, want 2 via alias", cols.price)
	}
}

func TestCanonicalFields_CopyIsIndependent(t *testing.T) {
	t.Parallel()

	fields := CanonicalFields()
	fields[0] = "mutated"
	if CanonicalFields()[0] != FieldHandleID {
		t.Fatalf("CanonicalFields must return a copy")
	}
}
