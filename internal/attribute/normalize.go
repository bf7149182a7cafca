package attribute

import "strings"

var turkishFolder = strings.NewReplacer(
	"ı", "i", "I", "i", "İ", "i",
	"ğ", "g", "Ğ", "g",
	"ü", "u", "Ü", "u",
	"ş", "s", "Ş", "s",
	"ö", "o", "Ö", "o",
	"ç", "c", "Ç", "c",
)

// unitTokens are measurement words stripped before text comparison so
// that "1,5 Lt" and "1,5" compare equal.
var unitTokens = []string{"lt", "litre", "ml", "parca", "adet", "cm", "mm"}

// fold lowercases text with Turkish characters mapped to their ASCII
// counterparts, so "Türkiye" and "TURKİYE" normalize identically.
func fold(s string) string {
	return strings.ToLower(turkishFolder.Replace(s))
}

// stripUnits removes unit tokens from already-folded text.
func stripUnits(s string) string {
	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		unit := false
		for _, token := range unitTokens {
			if f == token {
				unit = true
				break
			}
		}
		if !unit {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}

// commaToDot makes decimal-separator style irrelevant for comparison.
func commaToDot(s string) string {
	return strings.ReplaceAll(s, ",", ".")
}
