package normalize

import "testing"

func TestIsUnit(t *testing.T) {
	units := []string{"sc 60 kg", "SC 60 Kg", "arroba", "kg renda", "sc60kg", "sc 50 k"}
	for _, u := range units {
		if !IsUnit(u) {
			t.Errorf("IsUnit(%q) = false, want true", u)
		}
	}
	notUnits := []string{"", "Soja", "tipo 1", "sc kg"}
	for _, u := range notUnits {
		if IsUnit(u) {
			t.Errorf("IsUnit(%q) = true, want false", u)
		}
	}
}

func TestIsTypeVariety(t *testing.T) {
	if !IsTypeVariety("tipo 1") || !IsTypeVariety("Sequeiro") || !IsTypeVariety("bebida dura") {
		t.Error("known type/variety descriptors not recognized")
	}
	if IsTypeVariety("Soja industrial") || IsTypeVariety("") {
		t.Error("non-descriptor recognized as type/variety")
	}
}

func TestIsInvalidEntry(t *testing.T) {
	invalid := []string{"", "MIN", "m_c", "produto", "TOTAL", "12", "ab", `\\\`, "sc 60", "(vivo)", "em barranco"}
	for _, s := range invalid {
		if !IsInvalidEntry(s) {
			t.Errorf("IsInvalidEntry(%q) = false, want true", s)
		}
	}
	valid := []string{"Soja", "Milho amarelo", "Boi gordo"}
	for _, s := range valid {
		if IsInvalidEntry(s) {
			t.Errorf("IsInvalidEntry(%q) = true, want false", s)
		}
	}
}

func TestSplitUnitSuffix(t *testing.T) {
	cases := []struct {
		in          string
		wantProduct string
		wantUnit    string
	}{
		{"Soja industrial tipo 1    sc 60 Kg", "Soja industrial tipo 1", "sc 60 Kg"},
		{"Boi em pé  arroba", "Boi em pé", "arroba"},
		{"Café em coco kg renda", "Café em coco", "kg renda"},
		{"Frango de corte kg", "Frango de corte", "kg"},
		{"Mandioca industrial tonelada", "Mandioca industrial", "tonelada"},
		{"Soja industrial", "Soja industrial", ""},
		{"", "", ""},
	}
	for _, c := range cases {
		product, unit := SplitUnitSuffix(c.in)
		if product != c.wantProduct || unit != c.wantUnit {
			t.Errorf("SplitUnitSuffix(%q) = (%q, %q), want (%q, %q)",
				c.in, product, unit, c.wantProduct, c.wantUnit)
		}
	}
}
