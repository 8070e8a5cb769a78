package consolidate

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/simaquote/simaquote-go/pkg/sima/models"
	"github.com/simaquote/simaquote-go/pkg/sima/normalize"
)

// tableColumns is the canonical table schema, unchanged across revisions of
// the dataset.
var tableColumns = []string{
	"data", "ano", "mes", "dia", "produto", "unidade", "categoria",
	"preco_medio", "preco_minimo", "preco_maximo", "num_cotacoes", "arquivo",
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteTable writes the canonical table as UTF-8 CSV with a BOM, replacing
// any previous file. Absent values are written as empty fields, never 0.
func WriteTable(path string, records []models.PriceRecord) error {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(tableColumns); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.DateString(),
			intField(r.Year), intField(r.Month), intField(r.Day),
			r.Product, r.Unit, r.Category,
			formatPrice(r.PriceMean),
			floatField(r.PriceMin), floatField(r.PriceMax),
			strconv.Itoa(r.QuoteCount),
			r.SourceFile,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// ReadTable loads a canonical table (or a scraped batch with the same
// schema). It tolerates a BOM and Windows-1252 payloads from older runs.
func ReadTable(path string) ([]models.PriceRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decoded, err := normalize.DecodeTable(raw)
	if err != nil {
		return nil, fmt.Errorf("decode table %s: %w", path, err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse table %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[name] = i
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var records []models.PriceRecord
	for _, row := range rows[1:] {
		mean, ok := normalize.ParseNumberString(field(row, "preco_medio"))
		if !ok {
			continue
		}
		r := models.PriceRecord{
			Product:    field(row, "produto"),
			Unit:       field(row, "unidade"),
			Category:   field(row, "categoria"),
			PriceMean:  mean,
			SourceFile: field(row, "arquivo"),
		}
		if r.Product == "" {
			continue
		}
		if r.SourceFile == "" {
			r.SourceFile = "web_scrape"
		}
		if t, err := time.Parse("2006-01-02", field(row, "data")); err == nil {
			r.SetDate(t)
		}
		if v, ok := normalize.ParseNumberString(field(row, "preco_minimo")); ok {
			r.PriceMin = &v
		}
		if v, ok := normalize.ParseNumberString(field(row, "preco_maximo")); ok {
			r.PriceMax = &v
		}
		if n, err := strconv.Atoi(field(row, "num_cotacoes")); err == nil && n > 0 {
			r.QuoteCount = n
		} else {
			r.QuoteCount = 1
		}
		if r.Category == "" {
			r.Category = normalize.DetectCategory(r.Product)
		}
		records = append(records, r)
	}
	return records, nil
}

func intField(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func floatField(v *float64) string {
	if v == nil {
		return ""
	}
	return formatPrice(*v)
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
