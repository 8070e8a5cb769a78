package views

import (
	"math"
	"sort"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/simaquote/simaquote-go/pkg/sima/normalize"
)

// minVolatilityRecords is the per-product floor for volatility metrics.
const minVolatilityRecords = 10

// minPeriodObservations is the per-period floor for a volatility point.
const minPeriodObservations = 3

// DailyPoint is one dated mean price.
type DailyPoint struct {
	Date string  `json:"d"`
	Mean float64 `json:"p"`
}

// DailySeries is the daily_series.json payload: dated price points for the
// top products, the input for volatility analysis.
type DailySeries struct {
	Products    map[string][]DailyPoint `json:"products"`
	GeneratedAt string                  `json:"generated_at"`
}

// DailySeries builds date-ordered mean prices for the topN products by
// record count.
func (d *Dataset) DailySeries(topN int) DailySeries {
	counts := make(map[string]int)
	for _, r := range d.Records {
		if r.HasDate() {
			counts[r.Product]++
		}
	}

	ds := DailySeries{
		Products:    make(map[string][]DailyPoint),
		GeneratedAt: time.Now().Format(time.RFC3339),
	}
	for _, product := range topByCount(counts, topN) {
		var points []DailyPoint
		for _, r := range d.Records {
			if r.Product != product || !r.HasDate() {
				continue
			}
			points = append(points, DailyPoint{
				Date: r.DateString(),
				Mean: normalize.Round2(r.PriceMean),
			})
		}
		sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
		if len(points) > 0 {
			ds.Products[product] = points
		}
	}
	return ds
}

// VolatilityPoint holds dispersion metrics for one product-period.
type VolatilityPoint struct {
	Std      float64 `json:"std"`
	CV       float64 `json:"cv"`
	RangePct float64 `json:"range_pct"`
	N        int     `json:"n"`
}

// Volatility is the volatility.json payload.
type Volatility struct {
	ByProduct   map[string]map[string]VolatilityPoint `json:"by_product"`
	GeneratedAt string                                `json:"generated_at"`
}

// Volatility computes per product-period standard deviation, coefficient of
// variation, and relative range over the mean prices.
func (d *Dataset) Volatility() Volatility {
	productTotals := make(map[string]int)
	for _, r := range d.Records {
		productTotals[r.Product]++
	}

	grouped := make(map[string]map[string][]float64)
	for i, r := range d.Records {
		if productTotals[r.Product] < minVolatilityRecords {
			continue
		}
		byPeriod := grouped[r.Product]
		if byPeriod == nil {
			byPeriod = make(map[string][]float64)
			grouped[r.Product] = byPeriod
		}
		byPeriod[d.Periods[i]] = append(byPeriod[d.Periods[i]], r.PriceMean)
	}

	vol := Volatility{
		ByProduct:   make(map[string]map[string]VolatilityPoint),
		GeneratedAt: time.Now().Format(time.RFC3339),
	}
	for product, byPeriod := range grouped {
		for period, prices := range byPeriod {
			if len(prices) < minPeriodObservations {
				continue
			}
			s := series.New(prices, series.Float, "preco_medio")
			mean := s.Mean()
			if mean <= 0 {
				continue
			}
			std := s.StdDev()
			points := vol.ByProduct[product]
			if points == nil {
				points = make(map[string]VolatilityPoint)
				vol.ByProduct[product] = points
			}
			points[period] = VolatilityPoint{
				Std:      normalize.Round2(std),
				CV:       round1(std / mean * 100),
				RangePct: round1((s.Max() - s.Min()) / mean * 100),
				N:        len(prices),
			}
		}
	}
	return vol
}

// SpreadPoint approximates regional dispersion from the min/max quotation
// band.
type SpreadPoint struct {
	SpreadPct float64 `json:"spread_pct"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Mean      float64 `json:"mean"`
}

// Spread is the regional_spread.json payload.
type Spread struct {
	ByProduct   map[string]map[string]SpreadPoint `json:"by_product"`
	GeneratedAt string                            `json:"generated_at"`
}

// RegionalSpread averages the min/max price band per product-period.
// Records lacking either bound are excluded.
func (d *Dataset) RegionalSpread() Spread {
	type bandAcc struct {
		min, max, mean float64
		n              int
	}
	grouped := make(map[string]map[string]*bandAcc)
	for i, r := range d.Records {
		lo, hi, ok := r.PriceBounds()
		if !ok {
			continue
		}
		byPeriod := grouped[r.Product]
		if byPeriod == nil {
			byPeriod = make(map[string]*bandAcc)
			grouped[r.Product] = byPeriod
		}
		acc := byPeriod[d.Periods[i]]
		if acc == nil {
			acc = &bandAcc{}
			byPeriod[d.Periods[i]] = acc
		}
		acc.min += lo
		acc.max += hi
		acc.mean += r.PriceMean
		acc.n++
	}

	spread := Spread{
		ByProduct:   make(map[string]map[string]SpreadPoint),
		GeneratedAt: time.Now().Format(time.RFC3339),
	}
	for product, byPeriod := range grouped {
		for period, acc := range byPeriod {
			n := float64(acc.n)
			pmin, pmax, pmean := acc.min/n, acc.max/n, acc.mean/n
			if pmean <= 0 || pmax < pmin {
				continue
			}
			points := spread.ByProduct[product]
			if points == nil {
				points = make(map[string]SpreadPoint)
				spread.ByProduct[product] = points
			}
			points[period] = SpreadPoint{
				SpreadPct: round1((pmax - pmin) / pmean * 100),
				Min:       normalize.Round2(pmin),
				Max:       normalize.Round2(pmax),
				Mean:      normalize.Round2(pmean),
			}
		}
	}
	return spread
}

// MonthlyPoint is one month of a product's series: the contract consumed by
// the forecasting models.
type MonthlyPoint struct {
	Period string  `json:"period"`
	Mean   float64 `json:"preco_medio"`
	Min    float64 `json:"preco_minimo"`
	Max    float64 `json:"preco_maximo"`
	Count  int     `json:"n"`
}

// MonthlySeries aggregates one product's dated records to calendar months:
// mean of means, min of mins, max of maxes, observation count. The result
// is period-ordered.
func (d *Dataset) MonthlySeries(product string) []MonthlyPoint {
	var periods []string
	var means, mins, maxs []float64
	for i, r := range d.Records {
		if r.Product != product || r.Month == 0 {
			continue
		}
		periods = append(periods, d.Periods[i])
		means = append(means, r.PriceMean)
		lo, hi, ok := r.PriceBounds()
		if !ok {
			lo, hi = r.PriceMean, r.PriceMean
		}
		mins = append(mins, lo)
		maxs = append(maxs, hi)
	}
	if len(periods) == 0 {
		return nil
	}

	df := dataframe.New(
		series.New(periods, series.String, "period"),
		series.New(means, series.Float, "preco_medio"),
		series.New(mins, series.Float, "preco_minimo"),
		series.New(maxs, series.Float, "preco_maximo"),
	)
	agg := df.GroupBy("period").Aggregation(
		[]dataframe.AggregationType{
			dataframe.Aggregation_MEAN,
			dataframe.Aggregation_MIN,
			dataframe.Aggregation_MAX,
			dataframe.Aggregation_COUNT,
		},
		[]string{"preco_medio", "preco_minimo", "preco_maximo", "preco_medio"},
	)

	periodCol := agg.Col("period").Records()
	meanCol := agg.Col("preco_medio_MEAN").Float()
	minCol := agg.Col("preco_minimo_MIN").Float()
	maxCol := agg.Col("preco_maximo_MAX").Float()
	countCol := agg.Col("preco_medio_COUNT").Float()

	points := make([]MonthlyPoint, len(periodCol))
	for i, period := range periodCol {
		points[i] = MonthlyPoint{
			Period: period,
			Mean:   normalize.Round2(meanCol[i]),
			Min:    normalize.Round2(minCol[i]),
			Max:    normalize.Round2(maxCol[i]),
			Count:  int(countCol[i]),
		}
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Period < points[j].Period })
	return points
}

// MonthlyAll builds monthly series for the topN products by record count.
func (d *Dataset) MonthlyAll(topN int) map[string][]MonthlyPoint {
	counts := make(map[string]int)
	for _, r := range d.Records {
		if r.Month > 0 {
			counts[r.Product]++
		}
	}

	out := make(map[string][]MonthlyPoint)
	for _, product := range topByCount(counts, topN) {
		if pts := d.MonthlySeries(product); len(pts) > 0 {
			out[product] = pts
		}
	}
	return out
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
