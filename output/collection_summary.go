package output

import (
	"fmt"
	"math"
	"shopfeed/catalog"
	"sort"
	"strconv"
	"strings"
	"time"
)

type CollectionSummary struct {
	Collection   string
	ProductCount int
	PricedCount  int
	MinPrice     float64
	MaxPrice     float64
	AvgPrice     float64
	NewestUpload time.Time
}

func BuildCollectionSummaries(products []catalog.Product) []CollectionSummary {
	if len(products) == 0 {
		return []CollectionSummary{}
	}

	byCollection := make(map[string][]catalog.Product)
	for _, product := range products {
		byCollection[product.Collection] = append(byCollection[product.Collection], product)
	}

	collections := make([]string, 0, len(byCollection))
	for collection := range byCollection {
		collections = append(collections, collection)
	}
	sort.Strings(collections)

	summaries := make([]CollectionSummary, 0, len(collections))
	for _, collection := range collections {
		summaries = append(summaries, summarizeCollection(collection, byCollection[collection]))
	}

	return summaries
}

func summarizeCollection(collection string, products []catalog.Product) CollectionSummary {
	summary := CollectionSummary{
		Collection:   collection,
		ProductCount: len(products),
	}

	total := 0.0
	for _, product := range products {
		if uploaded := product.UploadedAt(); uploaded.After(summary.NewestUpload) {
			summary.NewestUpload = uploaded
		}

		price, ok := parsePrice(product.Price)
		if !ok {
			continue
		}
		if summary.PricedCount == 0 || price < summary.MinPrice {
			summary.MinPrice = price
		}
		if summary.PricedCount == 0 || price > summary.MaxPrice {
			summary.MaxPrice = price
		}
		total += price
		summary.PricedCount++
	}

	if summary.PricedCount > 0 {
		summary.MinPrice = roundPrice(summary.MinPrice)
		summary.MaxPrice = roundPrice(summary.MaxPrice)
		summary.AvgPrice = roundPrice(total / float64(summary.PricedCount))
	}

	return summary
}

// parsePrice reads a price cell on a best-effort basis. Products keep the
// raw price text; this value only feeds the summary statistics. Currency
// symbols and codes are stripped, and both "1.234,56" and "1,234.56"
// groupings are accepted.
func parsePrice(raw string) (float64, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' || r == '.' || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if cleaned == "" {
		return 0, false
	}

	comma := strings.LastIndex(cleaned, ",")
	dot := strings.LastIndex(cleaned, ".")
	switch {
	case comma >= 0 && dot >= 0 && comma > dot:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	case comma >= 0 && dot >= 0:
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case comma >= 0:
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func roundPrice(value float64) float64 {
	return math.Round(value*100) / 100
}

func WriteCollectionSummaries(path, format string, summaries []CollectionSummary) error {
	switch normalizeFormat(format) {
	case "csv":
		return writeCollectionSummariesCSV(path, summaries)
	case "excel", "xlsx":
		return writeCollectionSummariesExcel(path, summaries)
	default:
		return fmt.Errorf("unsupported output format for collection summaries: %s", format)
	}
}
