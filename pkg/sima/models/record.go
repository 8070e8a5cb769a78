package models

import "time"

// PriceRecord is one normalized price observation for a product on a date.
// Date and the denormalized parts are zero when the source gave nothing to
// resolve a date from; such records survive extraction but are excluded from
// period-keyed aggregation.
type PriceRecord struct {
	// Date is the quotation date, nil when undeterminable.
	Date *time.Time `json:"data"`
	// Year, Month, Day are denormalized date parts for fast grouping
	// (0 = unknown).
	Year  int `json:"ano"`
	Month int `json:"mes"`
	Day   int `json:"dia"`

	// ProductRaw is the product string as extracted, before
	// canonicalization.
	ProductRaw string `json:"-"`
	// Product is the canonical product name, the stable join key.
	Product string `json:"produto"`
	// Unit is the canonical unit of measure ("" = unknown). Units are
	// descriptive, not convertible.
	Unit string `json:"unidade"`
	// Category is derived from Product via keyword containment and is
	// recomputed whenever Product changes.
	Category string `json:"categoria"`

	// PriceMean is the arithmetic mean over the regional observations.
	// Always present on a valid record.
	PriceMean float64 `json:"preco_medio"`
	// PriceMin and PriceMax are nil when the source carried no usable
	// value; absence is never encoded as zero.
	PriceMin *float64 `json:"preco_minimo"`
	PriceMax *float64 `json:"preco_maximo"`

	// QuoteCount is the number of regional observations averaged into
	// PriceMean.
	QuoteCount int `json:"num_cotacoes"`
	// SourceFile records provenance (filename or "web_scrape").
	SourceFile string `json:"arquivo"`
}

// SetDate fills Date and the denormalized parts from t.
func (r *PriceRecord) SetDate(t time.Time) {
	d := t
	r.Date = &d
	r.Year = t.Year()
	r.Month = int(t.Month())
	r.Day = t.Day()
}

// HasDate reports whether the record carries a resolved date.
func (r *PriceRecord) HasDate() bool {
	return r.Date != nil
}

// DateString returns the date as YYYY-MM-DD, or "" when unknown.
func (r *PriceRecord) DateString() string {
	if r.Date == nil {
		return ""
	}
	return r.Date.Format("2006-01-02")
}

// PriceBounds reports min and max when both are present.
func (r *PriceRecord) PriceBounds() (min, max float64, ok bool) {
	if r.PriceMin == nil || r.PriceMax == nil {
		return 0, 0, false
	}
	return *r.PriceMin, *r.PriceMax, true
}
