package classify

import "shopfeed/catalog"

// Conflict pairs an incoming product with a stored one that shares its
// handle but differs in content.
type Conflict struct {
	Incoming catalog.Product
	Existing catalog.Product
}

// ClassifyProducts splits incoming records by import outcome against the
// stored catalog. Exact duplicates (equivalent content) are counted and
// skipped; handle conflicts are reported but still imported, since the
// newer record supersedes the stored one at prune time.
func ClassifyProducts(incoming, existing []catalog.Product) ([]catalog.Product, []Conflict, int) {
	toAdd := make([]catalog.Product, 0, len(incoming))
	conflicts := make([]Conflict, 0)
	duplicates := 0

	for _, candidate := range incoming {
		isDuplicate := false
		for _, stored := range existing {
			if candidate.Equivalent(stored) {
				isDuplicate = true
				break
			}
		}
		if isDuplicate {
			duplicates++
			continue
		}

		for _, stored := range existing {
			if candidate.HandleID == stored.HandleID {
				conflicts = append(conflicts, Conflict{
					Incoming: candidate,
					Existing: stored,
				})
				break
			}
		}

		toAdd = append(toAdd, candidate)
	}

	return toAdd, conflicts, duplicates
}
