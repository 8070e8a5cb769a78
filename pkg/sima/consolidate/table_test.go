package consolidate

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/simaquote/simaquote-go/pkg/sima/models"
)

func TestWriteReadTableRoundTrip(t *testing.T) {
	min, max := 120.0, 122.5
	dated := models.PriceRecord{
		Product:    "Soja industrial tipo 1",
		Unit:       "sc 60 Kg",
		Category:   "Graos",
		PriceMean:  121.25,
		PriceMin:   &min,
		PriceMax:   &max,
		QuoteCount: 2,
		SourceFile: "cotacao.xlsx",
	}
	dated.SetDate(time.Date(2020, time.May, 12, 0, 0, 0, 0, time.UTC))
	bare := models.PriceRecord{
		Product:    "Milho",
		Category:   "Graos",
		PriceMean:  50,
		QuoteCount: 1,
		SourceFile: "velho.xls",
	}

	path := filepath.Join(t.TempDir(), "consolidated.csv")
	if err := WriteTable(path, []models.PriceRecord{dated, bare}); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(raw, utf8BOM) {
		t.Error("table must start with a UTF-8 BOM")
	}

	got, err := ReadTable(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}

	r := got[0]
	if !r.HasDate() || r.Year != 2020 || r.Month != 5 || r.Day != 12 {
		t.Errorf("date = %d-%d-%d, want 2020-5-12", r.Year, r.Month, r.Day)
	}
	if r.PriceMean != 121.25 {
		t.Errorf("mean = %v", r.PriceMean)
	}
	if r.PriceMin == nil || *r.PriceMin != 120 {
		t.Errorf("min = %v, want 120", r.PriceMin)
	}
	if r.PriceMax == nil || *r.PriceMax != 122.5 {
		t.Errorf("max = %v, want 122.5", r.PriceMax)
	}
	if r.QuoteCount != 2 {
		t.Errorf("QuoteCount = %d", r.QuoteCount)
	}
	if r.SourceFile != "cotacao.xlsx" {
		t.Errorf("SourceFile = %q", r.SourceFile)
	}

	b := got[1]
	if b.HasDate() || b.Year != 0 {
		t.Errorf("bare record must stay dateless, got %d-%d-%d", b.Year, b.Month, b.Day)
	}
	if b.PriceMin != nil || b.PriceMax != nil {
		t.Error("absent price bounds must stay nil")
	}
}

func TestReadTableScrapedDefaults(t *testing.T) {
	csv := "data,produto,preco_medio,arquivo\n" +
		"2021-03-01,Soja industrial tipo 1,\"130,50\",\n" +
		",sem preco,,\n" +
		",,99,\n"
	path := filepath.Join(t.TempDir(), "scrape.csv")
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadTable(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1 (rows without price or product dropped)", len(got))
	}
	r := got[0]
	if r.PriceMean != 130.5 {
		t.Errorf("mean = %v, want 130.5 (Brazilian decimal comma)", r.PriceMean)
	}
	if r.SourceFile != "web_scrape" {
		t.Errorf("SourceFile = %q, want web_scrape default", r.SourceFile)
	}
	if r.QuoteCount != 1 {
		t.Errorf("QuoteCount = %d, want 1 default", r.QuoteCount)
	}
	if r.Category != "Graos" {
		t.Errorf("Category = %q, want recomputed Graos", r.Category)
	}
}

func TestReadTableWindows1252(t *testing.T) {
	// "Feijão" in Windows-1252: 0xE3 for ã.
	payload := []byte("produto,preco_medio\nFeij\xE3o,10.50\n")
	path := filepath.Join(t.TempDir(), "legacy.csv")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadTable(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	if got[0].Product != "Feijão" {
		t.Errorf("Product = %q, want Feijão decoded from cp1252", got[0].Product)
	}
}
