// Package views builds the pre-aggregated JSON payloads the dashboard and
// forecast adapters consume from the canonical quotation table.
package views

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/simaquote/simaquote-go/pkg/sima/consolidate"
	"github.com/simaquote/simaquote-go/pkg/sima/models"
	"github.com/simaquote/simaquote-go/pkg/sima/normalize"
	"github.com/simaquote/simaquote-go/pkg/sima/output"
)

// detailedSampleSize caps detailed.json; beyond it a deterministic sample
// is taken.
const detailedSampleSize = 50000

// sampleSeed pins the detailed.json sample so reruns produce identical
// output.
const sampleSeed = 42

// Dataset is the canonical table loaded and repaired for aggregation:
// dated records only, mojibake fixed, each product forced to its majority
// category.
type Dataset struct {
	Records []models.PriceRecord
	// Periods holds the period key ("YYYY-MM", or "YYYY" when the month
	// is unknown) per record.
	Periods []string
}

// Load reads the canonical table and prepares it for view generation.
// Records without a resolved year or a positive mean are excluded here:
// every view below is period- or product-keyed.
func Load(path string) (*Dataset, error) {
	records, err := consolidate.ReadTable(path)
	if err != nil {
		return nil, err
	}

	kept := records[:0]
	for _, r := range records {
		if r.PriceMean <= 0 || r.Year == 0 {
			continue
		}
		r.Product = normalize.FixEncoding(r.Product)
		kept = append(kept, r)
	}

	applyMajorityCategory(kept)

	ds := &Dataset{Records: kept, Periods: make([]string, len(kept))}
	for i, r := range kept {
		ds.Periods[i] = periodKey(r)
	}
	return ds, nil
}

// applyMajorityCategory assigns each product its most frequent category so
// spelling variants cannot split a product across categories.
func applyMajorityCategory(records []models.PriceRecord) {
	counts := make(map[string]map[string]int)
	for _, r := range records {
		byCat := counts[r.Product]
		if byCat == nil {
			byCat = make(map[string]int)
			counts[r.Product] = byCat
		}
		byCat[r.Category]++
	}

	majority := make(map[string]string, len(counts))
	for product, byCat := range counts {
		best, bestCount := "", -1
		for cat, n := range byCat {
			if n > bestCount || (n == bestCount && cat < best) {
				best, bestCount = cat, n
			}
		}
		majority[product] = best
	}

	for i := range records {
		records[i].Category = majority[records[i].Product]
	}
}

func periodKey(r models.PriceRecord) string {
	if r.Month > 0 {
		return fmt.Sprintf("%d-%02d", r.Year, r.Month)
	}
	return fmt.Sprintf("%d", r.Year)
}

// PriceStat is a mean/count pair used across views.
type PriceStat struct {
	Mean  float64 `json:"media"`
	Count int     `json:"registros"`
}

// Aggregated is the aggregated.json payload.
type Aggregated struct {
	Metadata   Metadata               `json:"metadata"`
	ByYear     map[int]PriceStat      `json:"by_year"`
	ByCategory map[string]PriceStat   `json:"by_category"`
	ByProduct  map[string]ProductStat `json:"by_product"`
}

// Metadata describes the generated dataset.
type Metadata struct {
	GeneratedAt  string `json:"generated_at"`
	TotalRecords int    `json:"total_records"`
	YearMin      int    `json:"year_min"`
	YearMax      int    `json:"year_max"`
}

// ProductStat is a per-product aggregate.
type ProductStat struct {
	Mean     float64 `json:"media"`
	Category string  `json:"categoria"`
}

// Aggregated builds year/category/product rollups.
func (d *Dataset) Aggregated() Aggregated {
	agg := Aggregated{
		ByYear:     make(map[int]PriceStat),
		ByCategory: make(map[string]PriceStat),
		ByProduct:  make(map[string]ProductStat),
	}

	yearMean := make(map[int]*meanPair)
	catMean := newMeanAcc()
	prodMean := newMeanAcc()
	prodCat := make(map[string]string)
	yearMin, yearMax := 0, 0

	for _, r := range d.Records {
		mp := yearMean[r.Year]
		if mp == nil {
			mp = &meanPair{}
			yearMean[r.Year] = mp
		}
		mp.sum += r.PriceMean
		mp.n++
		catMean.add(r.Category, r.PriceMean)
		prodMean.add(r.Product, r.PriceMean)
		prodCat[r.Product] = r.Category
		if yearMin == 0 || r.Year < yearMin {
			yearMin = r.Year
		}
		if r.Year > yearMax {
			yearMax = r.Year
		}
	}

	for year, mp := range yearMean {
		agg.ByYear[year] = PriceStat{
			Mean:  normalize.Round2(mp.sum / float64(mp.n)),
			Count: mp.n,
		}
	}
	for cat := range catMean.n {
		agg.ByCategory[cat] = PriceStat{
			Mean:  normalize.Round2(catMean.mean(cat)),
			Count: catMean.count(cat),
		}
	}

	for _, product := range topKeys(prodMean, 100) {
		agg.ByProduct[product] = ProductStat{
			Mean:     normalize.Round2(prodMean.mean(product)),
			Category: prodCat[product],
		}
	}

	agg.Metadata = Metadata{
		GeneratedAt:  time.Now().Format(time.RFC3339),
		TotalRecords: len(d.Records),
		YearMin:      yearMin,
		YearMax:      yearMax,
	}
	return agg
}

// TimeSeries is the timeseries.json payload.
type TimeSeries struct {
	ByPeriod   map[string]PeriodStat         `json:"by_period"`
	ByCategory map[string]map[string]float64 `json:"by_category"`
}

// PeriodStat is a per-period aggregate.
type PeriodStat struct {
	Mean  float64 `json:"media"`
	Count int     `json:"count"`
}

// TimeSeries builds per-period aggregates, overall and per category.
func (d *Dataset) TimeSeries() TimeSeries {
	ts := TimeSeries{
		ByPeriod:   make(map[string]PeriodStat),
		ByCategory: make(map[string]map[string]float64),
	}

	periodMean := newMeanAcc()
	catPeriodMean := newMeanAcc()
	for i, r := range d.Records {
		period := d.Periods[i]
		periodMean.add(period, r.PriceMean)
		catPeriodMean.add(r.Category+"\x00"+period, r.PriceMean)
	}

	for i, r := range d.Records {
		period := d.Periods[i]
		ts.ByPeriod[period] = PeriodStat{
			Mean:  normalize.Round2(periodMean.mean(period)),
			Count: periodMean.count(period),
		}
		byPeriod := ts.ByCategory[r.Category]
		if byPeriod == nil {
			byPeriod = make(map[string]float64)
			ts.ByCategory[r.Category] = byPeriod
		}
		byPeriod[period] = normalize.Round2(catPeriodMean.mean(r.Category + "\x00" + period))
	}
	return ts
}

// DetailedRecord is a compact record for detailed.json.
type DetailedRecord struct {
	Date     string  `json:"d"`
	Year     int     `json:"a"`
	Product  string  `json:"p"`
	Category string  `json:"c"`
	Unit     string  `json:"u"`
	Mean     float64 `json:"pm"`
}

// Detailed is the detailed.json payload.
type Detailed struct {
	Records      []DetailedRecord  `json:"records"`
	Filters      Filters           `json:"filters"`
	ProductUnits map[string]string `json:"product_units"`
}

// Filters lists the filterable values.
type Filters struct {
	Years      []int    `json:"anos"`
	Categories []string `json:"categorias"`
	Products   []string `json:"produtos"`
}

// Detailed builds the record sample plus filter values. Large tables are
// sampled deterministically.
func (d *Dataset) Detailed() Detailed {
	idx := make([]int, len(d.Records))
	for i := range idx {
		idx[i] = i
	}
	if len(idx) > detailedSampleSize {
		rng := rand.New(rand.NewSource(sampleSeed))
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		idx = idx[:detailedSampleSize]
		sort.Ints(idx)
	}

	det := Detailed{ProductUnits: make(map[string]string)}
	for _, i := range idx {
		r := d.Records[i]
		det.Records = append(det.Records, DetailedRecord{
			Date:     r.DateString(),
			Year:     r.Year,
			Product:  r.Product,
			Category: r.Category,
			Unit:     r.Unit,
			Mean:     normalize.Round2(r.PriceMean),
		})
	}

	yearSet := make(map[int]struct{})
	catSet := make(map[string]struct{})
	prodSet := make(map[string]struct{})
	unitCounts := make(map[string]map[string]int)
	for _, r := range d.Records {
		yearSet[r.Year] = struct{}{}
		catSet[r.Category] = struct{}{}
		prodSet[r.Product] = struct{}{}
		if r.Unit != "" {
			byUnit := unitCounts[r.Product]
			if byUnit == nil {
				byUnit = make(map[string]int)
				unitCounts[r.Product] = byUnit
			}
			byUnit[r.Unit]++
		}
	}

	for y := range yearSet {
		det.Filters.Years = append(det.Filters.Years, y)
	}
	sort.Ints(det.Filters.Years)
	for c := range catSet {
		det.Filters.Categories = append(det.Filters.Categories, c)
	}
	sort.Strings(det.Filters.Categories)
	for p := range prodSet {
		det.Filters.Products = append(det.Filters.Products, p)
	}
	sort.Strings(det.Filters.Products)
	if len(det.Filters.Products) > 500 {
		det.Filters.Products = det.Filters.Products[:500]
	}

	for product, byUnit := range unitCounts {
		best, bestCount := "", -1
		for unit, n := range byUnit {
			if n > bestCount || (n == bestCount && unit < best) {
				best, bestCount = unit, n
			}
		}
		det.ProductUnits[product] = best
	}
	return det
}

// FilterMaps is the filters.json payload: per category, its top products by
// record count.
type FilterMaps struct {
	CategoryProducts map[string][]string `json:"category_products"`
}

// FilterMaps builds the category→products hierarchy.
func (d *Dataset) FilterMaps() FilterMaps {
	counts := make(map[string]map[string]int)
	for _, r := range d.Records {
		byProd := counts[r.Category]
		if byProd == nil {
			byProd = make(map[string]int)
			counts[r.Category] = byProd
		}
		byProd[r.Product]++
	}

	fm := FilterMaps{CategoryProducts: make(map[string][]string, len(counts))}
	for cat, byProd := range counts {
		fm.CategoryProducts[cat] = topByCount(byProd, 100)
	}
	return fm
}

// Generator writes every view file from one loaded dataset.
type Generator struct {
	log *zap.Logger
}

// NewGenerator creates a view generator. A nil logger disables logging.
func NewGenerator(log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{log: log}
}

// viewFile pairs an output name with its builder.
type viewFile struct {
	name  string
	build func(*Dataset) interface{}
}

var viewFiles = []viewFile{
	{"aggregated.json", func(d *Dataset) interface{} { return d.Aggregated() }},
	{"detailed.json", func(d *Dataset) interface{} { return d.Detailed() }},
	{"timeseries.json", func(d *Dataset) interface{} { return d.TimeSeries() }},
	{"filters.json", func(d *Dataset) interface{} { return d.FilterMaps() }},
	{"daily_series.json", func(d *Dataset) interface{} { return d.DailySeries(20) }},
	{"volatility.json", func(d *Dataset) interface{} { return d.Volatility() }},
	{"regional_spread.json", func(d *Dataset) interface{} { return d.RegionalSpread() }},
	{"monthly_series.json", func(d *Dataset) interface{} { return d.MonthlyAll(20) }},
}

// WriteAll loads the canonical table and writes every dashboard view into
// dir.
func (g *Generator) WriteAll(tablePath, dir string) error {
	ds, err := Load(tablePath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for _, vf := range viewFiles {
		path := filepath.Join(dir, vf.name)
		if err := output.WriteJSON(path, vf.build(ds), false); err != nil {
			return fmt.Errorf("write %s: %w", vf.name, err)
		}
		g.log.Info("view written", zap.String("file", vf.name))
	}
	return nil
}

// meanPair is one sum/count cell.
type meanPair struct {
	sum float64
	n   int
}

// meanAcc accumulates running means per key.
type meanAcc struct {
	sum map[string]float64
	n   map[string]int
}

func newMeanAcc() *meanAcc {
	return &meanAcc{sum: make(map[string]float64), n: make(map[string]int)}
}

func (m *meanAcc) add(key string, v float64) {
	m.sum[key] += v
	m.n[key]++
}

func (m *meanAcc) mean(key string) float64 {
	if m.n[key] == 0 {
		return 0
	}
	return m.sum[key] / float64(m.n[key])
}

func (m *meanAcc) count(key string) int {
	return m.n[key]
}

// topKeys returns up to n keys ordered by descending count, ties broken
// alphabetically.
func topKeys(m *meanAcc, n int) []string {
	keys := make([]string, 0, len(m.n))
	for k := range m.n {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if m.n[keys[i]] != m.n[keys[j]] {
			return m.n[keys[i]] > m.n[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

func topByCount(counts map[string]int, n int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
