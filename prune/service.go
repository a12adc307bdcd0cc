// Package prune removes older catalog rows that share a handle with a newer
// import, keeping one product per handle.
package prune

import (
	"fmt"
	"shopfeed/catalog"
	"shopfeed/storage"
	"sort"
)

type Result struct {
	HandlesProcessed int
	DuplicatesFound  int
	RowsDeleted      int64
	RowsRemaining    int
}

func Run(store *storage.SQLiteStore) (*Result, error) {
	products, err := store.ListProducts()
	if err != nil {
		return nil, err
	}

	result := &Result{}
	if len(products) == 0 {
		return result, nil
	}

	byHandle := groupByHandle(products)
	handles := sortedKeys(byHandle)
	result.HandlesProcessed = len(handles)

	victims := make([]int64, 0, 16)
	for _, handle := range handles {
		group := byHandle[handle]
		if len(group) < 2 {
			continue
		}
		result.DuplicatesFound += len(group) - 1

		survivor := pickSurvivor(group)
		for _, product := range group {
			if product.ID != survivor.ID {
				victims = append(victims, product.ID)
			}
		}
	}

	deleted, err := store.DeleteProductsByID(victims)
	if err != nil {
		return nil, fmt.Errorf("delete duplicate products: %w", err)
	}
	result.RowsDeleted = deleted

	remaining, err := store.CountProducts()
	if err != nil {
		return nil, fmt.Errorf("count remaining products: %w", err)
	}
	result.RowsRemaining = remaining

	return result, nil
}

func groupByHandle(products []catalog.Product) map[string][]catalog.Product {
	byHandle := make(map[string][]catalog.Product)
	for _, product := range products {
		byHandle[product.HandleID] = append(byHandle[product.HandleID], product)
	}
	return byHandle
}

func sortedKeys(groups map[string][]catalog.Product) []string {
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// pickSurvivor keeps the most recently uploaded row. Rows with equal
// timestamps fall back to the highest row ID, the latest insert.
func pickSurvivor(group []catalog.Product) catalog.Product {
	survivor := group[0]
	for _, product := range group[1:] {
		if product.DateUploaded > survivor.DateUploaded {
			survivor = product
			continue
		}
		if product.DateUploaded == survivor.DateUploaded && product.ID > survivor.ID {
			survivor = product
		}
	}
	return survivor
}
