package normalize

import (
	"testing"

	"github.com/simaquote/simaquote-go/pkg/sima/models"
)

func TestCanonicalProduct(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"soja industrial tipo 1", "Soja industrial tipo 1"},
		{"SOJA INDUSTRIAL", "Soja industrial tipo 1"},
		{"soja", "Soja industrial tipo 1"},
		{"milho amarelo", "Milho amarelo tipo 1"},
		{"milho", "Milho"},
		{"trigo ph 78", "Trigo pão"},
		{"feijao preto", "Feijão preto tipo 1"},
		{"cafe beneficado bebida dura", "Café beneficiado bebida dura tipo 6"},
		{"cafe em coco", "Café em coco"},
		{"boi gordo", "Boi gordo"},
		{"boi em pe", "Boi em pé"},
		{"suino em pe tipo carne nao integrado", "Suíno em pé tipo carne não integrado"},
		{"erva mate", "Erva-mate"},
		{"mandioca p/ amido", "Mandioca industrial"},
	}
	for _, c := range cases {
		got, ok := CanonicalProduct(c.in)
		if !ok {
			t.Errorf("CanonicalProduct(%q) rejected, want %q", c.in, c.want)
			continue
		}
		if got != c.want {
			t.Errorf("CanonicalProduct(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCanonicalProductSpecificBeforeGeneric(t *testing.T) {
	// "soja industrial tipo 1" must hit its own rule, not the bare-soja
	// fallback; both map to the same canonical name, so check a pair
	// where the outcome differs.
	if got, _ := CanonicalProduct("milho comum"); got != "Milho comum" {
		t.Errorf("milho comum = %q, want Milho comum", got)
	}
	if got, _ := CanonicalProduct("milho tipo 1"); got != "Milho amarelo tipo 1" {
		t.Errorf("milho tipo 1 = %q, want Milho amarelo tipo 1", got)
	}
}

func TestCanonicalProductRejectsFragments(t *testing.T) {
	fragments := []string{
		"sc 60", "arroba", "kg", "tipo 2", "irrigado", "sequeiro",
		"em barranco", "(vivo)", "gr.longo fino", "tipo carne",
		"nao integrado", "vaca bebida dura", "vaca café",
	}
	for _, f := range fragments {
		if got, ok := CanonicalProduct(f); ok {
			t.Errorf("CanonicalProduct(%q) = %q, want rejection", f, got)
		}
	}
}

func TestCanonicalProductFallbackTitleCase(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"TOMATE LONGA VIDA", "Tomate Longa Vida"},
		{"batata de mesa", "Batata de Mesa"},
		{"ALHO EM RESTIA", "Alho em Restia"},
	}
	for _, c := range cases {
		got, ok := CanonicalProduct(c.in)
		if !ok || got != c.want {
			t.Errorf("CanonicalProduct(%q) = (%q, %v), want %q", c.in, got, ok, c.want)
		}
	}
}

func TestCleanProductName(t *testing.T) {
	if got := CleanProductName("  Soja   industrial . "); got != "Soja industrial" {
		t.Errorf("CleanProductName = %q", got)
	}
	if got := CleanProductName(" ..; "); got != "" {
		t.Errorf("CleanProductName of punctuation = %q, want empty", got)
	}
}

func TestCanonicalUnit(t *testing.T) {
	cases := []struct {
		product string
		want    string
	}{
		{"Soja industrial tipo 1", "sc 60 Kg"},
		{"Boi em pé", "arroba"},
		{"Café em coco", "kg renda"},
		{"Café beneficiado bebida dura tipo 6", "sc 60 Kg"},
		{"Frango de corte", "kg"},
		{"Mandioca industrial", "tonelada"},
		{"Milho branco especial", "sc 60 Kg"}, // substring heuristic
		{"Tomate Longa Vida", ""},
	}
	for _, c := range cases {
		if got := CanonicalUnit(c.product); got != c.want {
			t.Errorf("CanonicalUnit(%q) = %q, want %q", c.product, got, c.want)
		}
	}
}

func TestRecordsRecomputesCategory(t *testing.T) {
	in := []models.PriceRecord{
		{Product: "soja", Category: "Outros", PriceMean: 100},
		{Product: "arroba", Category: "Pecuaria", PriceMean: 50},
	}
	out := Records(in)
	if len(out) != 1 {
		t.Fatalf("Records kept %d, want 1 (fragment dropped)", len(out))
	}
	r := out[0]
	if r.Product != "Soja industrial tipo 1" {
		t.Errorf("Product = %q", r.Product)
	}
	if r.Category != "Graos" {
		t.Errorf("Category = %q, want Graos (recomputed from canonical name)", r.Category)
	}
	if r.Unit != "sc 60 Kg" {
		t.Errorf("Unit = %q, want sc 60 Kg", r.Unit)
	}
	if r.ProductRaw != "soja" {
		t.Errorf("ProductRaw = %q, want original raw name", r.ProductRaw)
	}
}
