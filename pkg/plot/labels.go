package plot

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/aretw0/thermoprops/pkg/domain"
)

var printer = message.NewPrinter(language.English)

// FormatValue prints v with at most four significant digits and grouping.
func FormatValue(v float64) string {
	return printer.Sprint(number.Decimal(v, number.Precision(4)))
}

// IsolineLabel joins symbol, formatted value and unit, skipping empty parts.
func IsolineLabel(value float64, property string) string {
	parts := []string{property, FormatValue(value)}
	if p, ok := domain.LookupProperty(property); ok && p.Unit != "" {
		parts = append(parts, p.Unit)
	}
	var out []string
	for _, s := range parts {
		if s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, " ")
}

// AxisTitle renders "symbol (unit)", or the symbol alone when it has no unit.
func AxisTitle(property string) string {
	p, ok := domain.LookupProperty(property)
	if !ok || p.Unit == "" {
		return property
	}
	return property + " (" + p.Unit + ")"
}
