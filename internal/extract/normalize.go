package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/payslips-extractor/internal/patterns"
)

var reCanonicalAmount = regexp.MustCompile(`^\d+(\.\d+)?$`)

// Amount is a normalized monetary value: Text keeps the captured scale.
type Amount struct {
	Text  string
	Value decimal.Decimal
}

// normalizeAmount canonicalizes a captured monetary string. Thousands separators
// are dropped and the decimal separator becomes '.'. The number of fraction
// digits is kept as captured, so "120.50" stays "120.50".
func normalizeAmount(raw string) (Amount, bool) {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "()")
	s = strings.TrimSpace(s)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimLeft(s, "-")
	s = strings.TrimRight(s, ".,")
	if s == "" {
		return Amount{}, false
	}

	dec, thousands := separators(s)
	if thousands != 0 {
		s = strings.ReplaceAll(s, string(thousands), "")
	}
	if dec != 0 {
		if strings.Count(s, string(dec)) > 1 {
			return Amount{}, false
		}
		s = strings.Replace(s, string(dec), ".", 1)
	}
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	if !reCanonicalAmount.MatchString(s) {
		return Amount{}, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, false
	}
	scale := int32(0)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		scale = int32(len(s) - i - 1)
	}
	if neg {
		d = d.Neg()
	}
	text := d.StringFixed(scale)
	if neg && !strings.HasPrefix(text, "-") {
		text = "-" + text
	}
	return Amount{Text: text, Value: d}, true
}

// separators works out which of ',' and '.' is the decimal separator.
// With both present the last one wins. A lone comma is decimal only when at
// most two digits follow it; repeated dots are thousands separators.
func separators(s string) (dec, thousands rune) {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			return ',', '.'
		}
		return '.', ','
	case lastComma >= 0:
		if strings.Count(s, ",") == 1 && len(s)-lastComma-1 <= 2 {
			return ',', 0
		}
		return 0, ','
	case lastDot >= 0:
		if strings.Count(s, ".") > 1 {
			return 0, '.'
		}
		return '.', 0
	}
	return 0, 0
}

func normalizeText(raw string) (string, bool) {
	s := strings.Join(strings.Fields(raw), " ")
	return s, s != ""
}

func normalize(kind patterns.Kind, raw string) (string, bool) {
	switch kind {
	case patterns.KindAmount:
		a, ok := normalizeAmount(raw)
		return a.Text, ok
	case patterns.KindDate:
		s, ok := normalizeText(raw)
		if !ok {
			return "", false
		}
		return standardizeDate(s), true
	default:
		return normalizeText(raw)
	}
}
