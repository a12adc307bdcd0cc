package catalog

import "time"

// Product is the normalized catalog record used across importers and outputs.
// DateUploaded is a Unix timestamp in milliseconds.
type Product struct {
	ID           int64
	HandleID     string
	Name         string
	Description  string
	ImageURL     string
	ThumbnailURL string
	Price        string
	SKU          string
	Collection   string
	Size         string
	DateUploaded int64
	SourceFormat string
	SourceFile   string
}

// UploadedAt returns DateUploaded as a time value.
func (p Product) UploadedAt() time.Time {
	return time.UnixMilli(p.DateUploaded)
}

// Equivalent reports whether two products carry the same normalized content.
// Database id and provenance are ignored so re-imports of the same rows from
// different files still count as duplicates.
func (p Product) Equivalent(other Product) bool {
	return p.HandleID == other.HandleID &&
		p.Name == other.Name &&
		p.Description == other.Description &&
		p.ImageURL == other.ImageURL &&
		p.ThumbnailURL == other.ThumbnailURL &&
		p.Price == other.Price &&
		p.SKU == other.SKU &&
		p.Collection == other.Collection &&
		p.Size == other.Size
}

// ImportRun records one processed source file for the imports audit table.
type ImportRun struct {
	ID           string
	SourceFile   string
	SourceFormat string
	RowsRead     int
	ProductsKept int
	RowsDropped  int
	StartedAt    time.Time
	FinishedAt   time.Time
}
