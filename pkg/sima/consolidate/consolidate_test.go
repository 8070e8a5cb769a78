package consolidate

import (
	"testing"
	"time"

	"github.com/simaquote/simaquote-go/pkg/sima/models"
)

func rec(day int, product string, mean float64, file string) models.PriceRecord {
	r := models.PriceRecord{
		Product:    product,
		Unit:       "sc 60 Kg",
		Category:   "Graos",
		PriceMean:  mean,
		QuoteCount: 1,
		SourceFile: file,
	}
	if day > 0 {
		r.SetDate(time.Date(2020, time.May, day, 0, 0, 0, 0, time.UTC))
	}
	return r
}

func TestDedupeFirstSeenWins(t *testing.T) {
	in := []models.PriceRecord{
		rec(12, "Soja industrial tipo 1", 121.25, "a.xlsx"),
		rec(12, "Soja industrial tipo 1", 121.25, "b.xlsx"),
		rec(12, "Soja industrial tipo 1", 122.00, "b.xlsx"),
		rec(13, "Soja industrial tipo 1", 121.25, "a.xlsx"),
	}
	out := Dedupe(in)
	if len(out) != 3 {
		t.Fatalf("got %d records, want 3", len(out))
	}
	if out[0].SourceFile != "a.xlsx" {
		t.Errorf("survivor SourceFile = %q, want first-seen a.xlsx", out[0].SourceFile)
	}
}

func TestSortMissingDatesLast(t *testing.T) {
	in := []models.PriceRecord{
		rec(0, "Milho", 50, "x"),
		rec(13, "Soja industrial tipo 1", 121, "x"),
		rec(12, "Trigo", 80, "x"),
		rec(12, "Soja industrial tipo 1", 120, "x"),
	}
	Sort(in)

	want := []struct {
		day     int
		product string
	}{
		{12, "Soja industrial tipo 1"},
		{12, "Trigo"},
		{13, "Soja industrial tipo 1"},
		{0, "Milho"},
	}
	for i, w := range want {
		if in[i].Day != w.day || in[i].Product != w.product {
			t.Errorf("pos %d = %d/%q, want %d/%q", i, in[i].Day, in[i].Product, w.day, w.product)
		}
	}
}

func TestConsolidateIdempotent(t *testing.T) {
	in := []models.PriceRecord{
		rec(13, "Soja industrial tipo 1", 121, "a.xlsx"),
		rec(12, "Milho", 50, "a.xlsx"),
		rec(12, "Milho", 50, "b.xlsx"),
	}
	once := Consolidate(in)
	twice := Consolidate(append([]models.PriceRecord(nil), once...))
	if len(once) != 2 || len(twice) != len(once) {
		t.Fatalf("len once = %d, twice = %d, want 2", len(once), len(twice))
	}
	for i := range once {
		if once[i].Product != twice[i].Product || once[i].Day != twice[i].Day {
			t.Errorf("pos %d differs after second pass", i)
		}
	}
}
