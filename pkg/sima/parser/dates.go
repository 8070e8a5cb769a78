package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// yearPivot resolves two-digit years: 00-49 map to 2000s, 50-99 to 1900s.
// Inherited behavior; the archive spans 2003 onward.
const yearPivot = 50

var (
	dmySepRe  = regexp.MustCompile(`(\d{2})[-_](\d{2})[-_](\d{2,4})`)
	dmyPackRe = regexp.MustCompile(`(\d{2})(\d{2})(\d{2,4})`)
	bareDayRe = regexp.MustCompile(`^(\d{2})$`)
	yearRe    = regexp.MustCompile(`(19|20)\d{2}`)
)

// monthNames maps Portuguese month names (accent-free, as they appear in
// filenames) to month numbers.
var monthNames = map[string]time.Month{
	"janeiro": time.January, "fevereiro": time.February,
	"marco": time.March, "abril": time.April,
	"maio": time.May, "junho": time.June,
	"julho": time.July, "agosto": time.August,
	"setembro": time.September, "outubro": time.October,
	"novembro": time.November, "dezembro": time.December,
}

// ResolveDate determines the quotation date for one worksheet, trying in
// order: day-month-year in the sheet name, day-month-year in the filename,
// a bare day in the sheet name combined with a month name and year from the
// filename, and finally January 1st of any year in the filename. ok is
// false when nothing resolves.
func ResolveDate(sheetName, fileName string) (time.Time, bool) {
	if t, ok := parseDMY(sheetName); ok {
		return t, true
	}
	if t, ok := parseDMY(fileName); ok {
		return t, true
	}
	if t, ok := combineDayWithFilename(sheetName, fileName); ok {
		return t, true
	}
	if m := yearRe.FindString(fileName); m != "" {
		year, _ := strconv.Atoi(m)
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

func parseDMY(s string) (time.Time, bool) {
	for _, re := range []*regexp.Regexp{dmySepRe, dmyPackRe} {
		for _, m := range re.FindAllStringSubmatch(s, -1) {
			day, _ := strconv.Atoi(m[1])
			month, _ := strconv.Atoi(m[2])
			year, _ := strconv.Atoi(m[3])
			if t, ok := makeDate(year, month, day); ok {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func combineDayWithFilename(sheetName, fileName string) (time.Time, bool) {
	m := bareDayRe.FindStringSubmatch(strings.TrimSpace(sheetName))
	if m == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])

	ym := yearRe.FindString(fileName)
	if ym == "" {
		return time.Time{}, false
	}
	year, _ := strconv.Atoi(ym)

	lower := strings.ToLower(fileName)
	for name, month := range monthNames {
		if strings.Contains(lower, name) {
			if t, ok := makeDate(year, int(month), day); ok {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// makeDate validates the triple and applies the two-digit year pivot.
func makeDate(year, month, day int) (time.Time, bool) {
	if year < 100 {
		if year < yearPivot {
			year += 2000
		} else {
			year += 1900
		}
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// Reject sheet names like 31-02: Date normalizes them into March.
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}
