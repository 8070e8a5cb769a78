package normalize

import "testing"

func TestText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Feijão", "FEIJAO"},
		{"  café beneficiado ", "CAFE BENEFICIADO"},
		{"Suíno", "SUINO"},
		{"MILHO", "MILHO"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Text(c.in); got != c.want {
			t.Errorf("Text(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDetectCategory(t *testing.T) {
	cases := []struct {
		product string
		want    string
	}{
		{"Soja industrial tipo 1", "Graos"},
		{"Feijão preto tipo 1", "Graos"},
		{"Boi em pé", "Pecuaria"},
		{"Suíno em pé tipo carne", "Pecuaria"},
		{"Tomate", "Hortalicas"},
		{"Erva-mate folha em barranco", "Florestal"},
		{"Laranja", "Frutas"},
		{"Produto desconhecido", "Outros"},
	}
	for _, c := range cases {
		if got := DetectCategory(c.product); got != c.want {
			t.Errorf("DetectCategory(%q) = %q, want %q", c.product, got, c.want)
		}
	}
}

func TestDetectCategoryDeterministic(t *testing.T) {
	// Same input must always yield the same category, accent or not.
	for i := 0; i < 3; i++ {
		if got := DetectCategory("Café em coco"); got != "Graos" {
			t.Fatalf("DetectCategory(Café em coco) = %q, want Graos", got)
		}
		if got := DetectCategory("CAFE EM COCO"); got != "Graos" {
			t.Fatalf("DetectCategory(CAFE EM COCO) = %q, want Graos", got)
		}
	}
}
