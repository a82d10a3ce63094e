package resolver

import (
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholder values for missing data.
const (
	MissingMoney   = "0.00"
	MissingDate    = "TBD"
	OngoingEndDate = "Present"
)

// DateLayout is the long month-day-year layout used on every document.
const DateLayout = "January 2, 2006"

// inputDateLayouts are tried in order when parsing stored dates.
var inputDateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// FormatMoney formats v with thousands separators and exactly two decimals.
// A nil value formats as "0.00".
func FormatMoney(v *float64) string {
	if v == nil {
		return MissingMoney
	}
	return message.NewPrinter(language.English).Sprintf("%.2f", *v)
}

// FormatAmount formats v with thousands separators, omitting decimals for whole
// amounts: 1500 → "1,500", 1234.5 → "1,234.50". A nil value formats as "0.00".
func FormatAmount(v *float64) string {
	if v == nil {
		return MissingMoney
	}
	p := message.NewPrinter(language.English)
	if *v == math.Trunc(*v) {
		return p.Sprintf("%.0f", *v)
	}
	return p.Sprintf("%.2f", *v)
}

// FormatDate renders a stored date in the long layout.
// Nil or blank values render as "TBD"; values that fail to parse pass through unchanged.
func FormatDate(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return MissingDate
	}
	if t, ok := parseDate(*s); ok {
		return t.Format(DateLayout)
	}
	return *s
}

// FormatEndDate is FormatDate with "Present" for an absent date.
func FormatEndDate(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return OngoingEndDate
	}
	return FormatDate(s)
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range inputDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// JoinAddress joins the non-empty parts with ", ".
func JoinAddress(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// sum adds the non-nil values.
func sum(values ...*float64) float64 {
	var total float64
	for _, v := range values {
		if v != nil {
			total += *v
		}
	}
	return total
}
