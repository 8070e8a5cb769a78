package normalize

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// mojibakeFixes undo the recurring Windows-1252-as-UTF-8 double encoding in
// legacy files. Order matters: longer sequences first.
var mojibakeFixes = []struct{ bad, good string }{
	{"Ã£", "ã"}, {"Ã¡", "á"}, {"Ã©", "é"}, {"Ã­", "í"}, {"Ãº", "ú"},
	{"Ã³", "ó"}, {"Ã§", "ç"}, {"Ãµ", "õ"}, {"Ã¢", "â"}, {"Ãª", "ê"},
	{"Ã´", "ô"}, {"Ã", "à"},
	{"�", ""},
	{"ã£", "ã"}, {"ã©", "é"}, {"ã­", "í"}, {"ãº", "ú"},
}

// FixEncoding repairs common mojibake in a text value.
func FixEncoding(s string) string {
	for _, f := range mojibakeFixes {
		s = strings.ReplaceAll(s, f.bad, f.good)
	}
	return s
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeTable makes raw CSV bytes safe to parse: strips a UTF-8 BOM and,
// when the payload is not valid UTF-8, decodes it as Windows-1252 (the
// encoding of the older exports).
func DecodeTable(raw []byte) ([]byte, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return raw, nil
	}
	return charmap.Windows1252.NewDecoder().Bytes(raw)
}
