package services

import (
	"strings"
	"time"
)

const dateOnlyLayout = "2006-01-02"

// layouts without a zone are read as UTC
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
}

// DateFormatHint names the accepted report filter formats
const DateFormatHint = "use YYYY-MM-DD or an ISO 8601 date-time"

// ParseDateBound parses a report filter value. Empty input means no bound.
// When endOfDay is set, a date without a time covers the whole day.
func ParseDateBound(value string, endOfDay bool) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	if d, err := time.ParseInLocation(dateOnlyLayout, value, time.UTC); err == nil {
		if endOfDay {
			d = d.Add(24*time.Hour - time.Nanosecond)
		}
		return &d, nil
	}

	var lastErr error
	for _, layout := range dateTimeLayouts {
		t, err := time.ParseInLocation(layout, value, time.UTC)
		if err == nil {
			t = t.UTC()
			return &t, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// ReportRange is an inclusive created_at window; nil sides are open
type ReportRange struct {
	From *time.Time
	To   *time.Time
}

// ParseReportRange parses the from/to filters strictly: the first bad value
// is reported as a BadRequest naming the parameter.
func ParseReportRange(from, to string) (ReportRange, error) {
	var r ReportRange
	var err error

	if r.From, err = ParseDateBound(from, false); err != nil {
		return ReportRange{}, badRequest("INVALID_DATE", "invalid from_date %q, %s", from, DateFormatHint)
	}
	if r.To, err = ParseDateBound(to, true); err != nil {
		return ReportRange{}, badRequest("INVALID_DATE", "invalid to_date %q, %s", to, DateFormatHint)
	}
	return r, nil
}

// ParseReportRangeLenient drops unparsable bounds instead of failing.
// The backoffice report page uses it so a typo never breaks the page.
func ParseReportRangeLenient(from, to string) ReportRange {
	var r ReportRange
	r.From, _ = ParseDateBound(from, false)
	r.To, _ = ParseDateBound(to, true)
	return r
}
