package web

import (
	"testing"
	"time"

	"shopfeed/catalog"
)

func TestBuildProductRows(t *testing.T) {
	t.Parallel()

	uploaded := time.Date(2026, 4, 1, 15, 30, 0, 0, time.Local)
	products := []catalog.Product{
		{
			ID:           7,
			HandleID:     "tee-classic",
			Name:         "Classic Tee",
			Description:  "Soft cotton tee",
			ImageURL:     "https://static.wixstatic.com/media/abc123",
			ThumbnailURL: "https://static.wixstatic.com/media/abc123/v1/fill/w_400,h_400,al_c,q_80/abc123",
			Price:        "25.00",
			SKU:          "TEE-01",
			Collection:   "Apparel",
			Size:         "M",
			DateUploaded: uploaded.UnixMilli(),
			SourceFile:   "spring.csv",
		},
	}

	rows := BuildProductRows(products)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	row := rows[0]
	if row.ID != 7 {
		t.Errorf("unexpected id: %d", row.ID)
	}
	if row.HandleID != "tee-classic" {
		t.Errorf("unexpected handle: %q", row.HandleID)
	}
	if row.DateUploaded != uploaded.UnixMilli() {
		t.Errorf("unexpected dateUploaded: %d", row.DateUploaded)
	}
	if row.Uploaded != "2026-04-01 15:30" {
		t.Errorf("unexpected uploaded label: %q", row.Uploaded)
	}
	if row.SourceFile != "spring.csv" {
		t.Errorf("unexpected source file: %q", row.SourceFile)
	}
}

func TestBuildProductRows_Empty(t *testing.T) {
	t.Parallel()

	rows := BuildProductRows(nil)
	if rows == nil {
		t.Fatalf("expected non-nil slice")
	}
	if len(rows) != 0 {
		t.Fatalf("expected 0 rows, got %d", len(rows))
	}
}

func TestBuildCollectionCounts(t *testing.T) {
	t.Parallel()

	products := []catalog.Product{
		{Name: "A", Collection: "Mugs"},
		{Name: "B", Collection: "Apparel"},
		{Name: "C", Collection: "Mugs"},
		{Name: "D", Collection: ""},
	}

	counts := BuildCollectionCounts(products)
	if len(counts) != 3 {
		t.Fatalf("expected 3 collections, got %d", len(counts))
	}
	if counts[0].Name != "" || counts[0].Count != 1 {
		t.Errorf("unexpected first bucket: %+v", counts[0])
	}
	if counts[1].Name != "Apparel" || counts[1].Count != 1 {
		t.Errorf("unexpected second bucket: %+v", counts[1])
	}
	if counts[2].Name != "Mugs" || counts[2].Count != 2 {
		t.Errorf("unexpected third bucket: %+v", counts[2])
	}
}
