package web

import (
	"sort"

	"shopfeed/catalog"
)

// ProductRow is the view shape shared by the HTML catalog page and the
// JSON product endpoints.
type ProductRow struct {
	ID           int64  `json:"id"`
	HandleID     string `json:"handleId"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ImageURL     string `json:"imageUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Price        string `json:"price"`
	SKU          string `json:"sku"`
	Collection   string `json:"collection"`
	Size         string `json:"size"`
	DateUploaded int64  `json:"dateUploaded"`
	Uploaded     string `json:"uploaded"`
	SourceFile   string `json:"sourceFile"`
}

// CollectionCount reports how many products a collection holds. Products
// without a collection are grouped under the empty name.
type CollectionCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func BuildProductRows(products []catalog.Product) []ProductRow {
	rows := make([]ProductRow, 0, len(products))
	for _, product := range products {
		rows = append(rows, ProductRow{
			ID:           product.ID,
			HandleID:     product.HandleID,
			Name:         product.Name,
			Description:  product.Description,
			ImageURL:     product.ImageURL,
			ThumbnailURL: product.ThumbnailURL,
			Price:        product.Price,
			SKU:          product.SKU,
			Collection:   product.Collection,
			Size:         product.Size,
			DateUploaded: product.DateUploaded,
			Uploaded:     product.UploadedAt().Format("2006-01-02 15:04"),
			SourceFile:   product.SourceFile,
		})
	}
	return rows
}

func BuildCollectionCounts(products []catalog.Product) []CollectionCount {
	byName := make(map[string]int)
	for _, product := range products {
		byName[product.Collection]++
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	counts := make([]CollectionCount, 0, len(names))
	for _, name := range names {
		counts = append(counts, CollectionCount{Name: name, Count: byName[name]})
	}
	return counts
}
