// Package numeric turns locale-ambiguous user text into canonical dot-decimal strings.
package numeric

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/aretw0/thermoprops/pkg/domain"
)

var punctuationRun = regexp.MustCompile(`[.,]{2,}`)

// Normalize converts free-form decimal text into a canonical dot-decimal string.
//
// Comma and dot are both accepted. When both appear, the one appearing last is the decimal
// separator and the other is grouping. Several commas (or several dots) alone are grouping;
// a single comma is a decimal separator. Runs like "1..2" are malformed.
// An empty result means the input is invalid.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, trimmed)

	if punctuationRun.MatchString(compact) {
		return ""
	}

	commas := strings.Count(compact, ",")
	dots := strings.Count(compact, ".")

	switch {
	case commas > 0 && dots > 0:
		if strings.LastIndex(compact, ",") > strings.LastIndex(compact, ".") {
			return strings.ReplaceAll(strings.ReplaceAll(compact, ".", ""), ",", ".")
		}
		return strings.ReplaceAll(compact, ",", "")
	case commas > 1:
		return strings.ReplaceAll(compact, ",", "")
	case commas == 1:
		return strings.Replace(compact, ",", ".", 1)
	case dots > 1:
		return strings.ReplaceAll(compact, ".", "")
	}
	return compact
}

// Parse normalizes raw and parses it as a finite float.
func Parse(raw string) (float64, error) {
	return ParseCanonical(Normalize(raw))
}

// ParseCanonical parses an already normalized value.
func ParseCanonical(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", domain.ErrInvalidNumber)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidNumber, s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not finite", domain.ErrInvalidNumber, s)
	}
	return v, nil
}
