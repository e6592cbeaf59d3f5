package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Money is an amount in the currency's minor unit.
type Money int64

// DefaultCurrency is used when neither the input nor the project names one.
const DefaultCurrency = "USD"

// DateLayout is the wire format of calendar dates (due, paid, payment dates).
const DateLayout = "2006-01-02"

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// NormalizeCurrency upper-cases an ISO 4217 code and checks its shape.
// An empty code yields fallback.
func NormalizeCurrency(code, fallback string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = fallback
	}
	if !currencyPattern.MatchString(code) {
		return "", fmt.Errorf("currency must be a 3-letter ISO code")
	}
	return code, nil
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

func validDate(s *string) bool {
	if s == nil || *s == "" {
		return true
	}
	_, err := ParseDate(*s)
	return err == nil
}

// appendLine joins line onto notes, one note per line.
func appendLine(notes *string, line string) *string {
	if notes == nil || *notes == "" {
		return &line
	}
	joined := *notes + "\n" + line
	return &joined
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
