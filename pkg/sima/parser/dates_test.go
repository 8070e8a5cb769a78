package parser

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveDate(t *testing.T) {
	cases := []struct {
		sheet, file string
		want        time.Time
		ok          bool
	}{
		// Day-month-year in the sheet name wins.
		{"12-05-2020", "cotacao_2019", date(2020, time.May, 12), true},
		{"05-03-10", "sima_diaria", date(2010, time.March, 5), true},
		{"05_03_10", "sima_diaria", date(2010, time.March, 5), true},
		// Two-digit year pivot: 50-99 land in the 1900s.
		{"05-03-98", "sima_diaria", date(1998, time.March, 5), true},
		// Packed digits without separators.
		{"120520", "x", date(2020, time.May, 12), true},
		// Fallback to the filename.
		{"Planilha1", "cotacao_25-08-2015", date(2015, time.August, 25), true},
		// Bare day plus month name and year from the filename.
		{"07", "cotacoes_marco_2012", date(2012, time.March, 7), true},
		{"31", "precos_dezembro_2008", date(2008, time.December, 31), true},
		// Last resort: January 1st of a filename year.
		{"Planilha1", "historico_2006", date(2006, time.January, 1), true},
		// Nothing resolvable.
		{"Planilha1", "sem_data", time.Time{}, false},
		// Impossible calendar dates are rejected, not normalized.
		{"31-02-2020", "sem_data", time.Time{}, false},
		{"00-05-2020", "sem_data", time.Time{}, false},
	}
	for _, c := range cases {
		got, ok := ResolveDate(c.sheet, c.file)
		if ok != c.ok {
			t.Errorf("ResolveDate(%q, %q) ok = %v, want %v", c.sheet, c.file, ok, c.ok)
			continue
		}
		if ok && !got.Equal(c.want) {
			t.Errorf("ResolveDate(%q, %q) = %v, want %v", c.sheet, c.file, got, c.want)
		}
	}
}

func TestResolveDateSheetBeatsFilename(t *testing.T) {
	got, ok := ResolveDate("10-10-2011", "cotacao_20-20-2012")
	if !ok || !got.Equal(date(2011, time.October, 10)) {
		t.Fatalf("got %v ok=%v, want sheet date 2011-10-10", got, ok)
	}
}

func TestMakeDatePivot(t *testing.T) {
	if got, ok := makeDate(49, 1, 1); !ok || got.Year() != 2049 {
		t.Errorf("year 49 -> %v, want 2049", got)
	}
	if got, ok := makeDate(50, 1, 1); !ok || got.Year() != 1950 {
		t.Errorf("year 50 -> %v, want 1950", got)
	}
}
