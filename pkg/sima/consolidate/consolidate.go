// Package consolidate merges extracted record batches into the single
// canonical quotation table.
package consolidate

import (
	"fmt"
	"sort"

	"github.com/simaquote/simaquote-go/pkg/sima/models"
)

// dedupKey identifies one observation. Two records agreeing on date,
// product, and mean price are the same quotation regardless of which file
// carried them.
func dedupKey(r models.PriceRecord) string {
	return fmt.Sprintf("%s|%s|%.2f", r.DateString(), r.Product, r.PriceMean)
}

// Dedupe removes duplicate observations, keeping the first-seen record for
// each key. Input order is preserved for survivors.
func Dedupe(records []models.PriceRecord) []models.PriceRecord {
	seen := make(map[string]struct{}, len(records))
	out := records[:0]
	for _, r := range records {
		k := dedupKey(r)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Sort orders records ascending by (year, month, day, product), placing
// records with unknown dates last. The sort is stable so equal keys keep
// their dedup order.
func Sort(records []models.PriceRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.HasDate() != b.HasDate() {
			return a.HasDate()
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		return a.Product < b.Product
	})
}

// Consolidate dedupes and sorts a concatenated record set. It is a pure
// function of the input multiset: applying it twice yields the same table.
func Consolidate(records []models.PriceRecord) []models.PriceRecord {
	out := Dedupe(records)
	Sort(out)
	return out
}
