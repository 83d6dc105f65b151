package timeline

import (
	"strings"
	"time"

	"github.com/matzehuels/timeline/pkg/errors"
)

// DateLayout is the canonical Go layout of the DD.MM.YYYY input pattern.
const DateLayout = "02.01.2006"

// parseLayout also accepts single-digit days and months ("5.3.2024").
// Years must have four digits.
const parseLayout = "2.1.2006"

// ParseDate parses a DD.MM.YYYY date. Surrounding whitespace is ignored.
// The returned time is midnight UTC.
func ParseDate(s string) (time.Time, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return time.Time{}, errors.New(errors.ErrCodeInvalidDate, "empty date, expected DD.MM.YYYY")
	}
	t, err := time.Parse(parseLayout, text)
	if err != nil {
		return time.Time{}, errors.Wrap(errors.ErrCodeInvalidDate, err, "invalid date %q, expected DD.MM.YYYY", s)
	}
	return t, nil
}

// FormatDate renders t in the canonical DD.MM.YYYY pattern.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
