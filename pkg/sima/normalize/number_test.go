package normalize

import (
	"testing"

	"github.com/simaquote/simaquote-go/pkg/sima/models"
)

func TestParseNumberString(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1.234,56", 1234.56, true},
		{"12,5", 12.5, true},
		{"120,00", 120.0, true},
		{"R$ 45,90", 45.9, true},
		{"1234.56", 1234.56, true},
		{"42", 42, true},
		{"-", 0, false},
		{"--", 0, false},
		{"SINF", 0, false},
		{"AUS", 0, false},
		{"", 0, false},
		{`\\\`, 0, false},
		{"0", 0, false},
		{"-10,5", 0, false},
		{"2000000", 0, false},
		{"abc", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseNumberString(c.in)
		if ok != c.ok {
			t.Errorf("ParseNumberString(%q) ok = %v, want %v", c.in, ok, c.ok)
			continue
		}
		if ok && got != c.want {
			t.Errorf("ParseNumberString(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseNumberCell(t *testing.T) {
	if _, ok := ParseNumber(models.Cell{}); ok {
		t.Error("empty cell should not parse")
	}
	if v, ok := ParseNumber(models.Cell{Kind: models.CellNumber, Number: 99.5}); !ok || v != 99.5 {
		t.Errorf("number cell = %v, %v; want 99.5, true", v, ok)
	}
	if _, ok := ParseNumber(models.Cell{Kind: models.CellNumber, Number: -1}); ok {
		t.Error("negative number should be absent")
	}
	if v, ok := ParseNumber(models.Cell{Kind: models.CellText, Text: "1.234,56"}); !ok || v != 1234.56 {
		t.Errorf("text cell = %v, %v; want 1234.56, true", v, ok)
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(121.255); got != 121.26 && got != 121.25 {
		t.Errorf("Round2(121.255) = %v", got)
	}
	if got := Round2(120.0); got != 120.0 {
		t.Errorf("Round2(120.0) = %v", got)
	}
}
