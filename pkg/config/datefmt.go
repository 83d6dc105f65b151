package config

import (
	"fmt"
	"strings"
	"time"
)

var strftime = map[byte]string{
	'd': "02",
	'e': "_2",
	'm': "01",
	'y': "06",
	'Y': "2006",
	'b': "Jan",
	'h': "Jan",
	'B': "January",
	'a': "Mon",
	'A': "Monday",
	'H': "15",
	'I': "03",
	'M': "04",
	'S': "05",
	'p': "PM",
	'j': "002",
}

// FormatStrftime formats t with a strftime pattern such as "%d.%m.%Y".
// Text outside directives is copied verbatim, so "Q1 %Y" keeps its "Q1".
// Unknown or dangling directives are an error.
func FormatStrftime(t time.Time, pattern string) (string, error) {
	if pattern == "" {
		return "", fmt.Errorf("empty date format")
	}
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		ch := pattern[i]
		if ch != '%' {
			b.WriteByte(ch)
			continue
		}
		if i+1 == len(pattern) {
			return "", fmt.Errorf("dangling %% in %q", pattern)
		}
		i++
		if pattern[i] == '%' {
			b.WriteByte('%')
			continue
		}
		layout, ok := strftime[pattern[i]]
		if !ok {
			return "", fmt.Errorf("unsupported directive %%%c in %q", pattern[i], pattern)
		}
		b.WriteString(t.Format(layout))
	}
	return b.String(), nil
}

// FormatDisplayDate formats t with the configured display pattern,
// falling back to DD.MM.YYYY for an invalid pattern.
func (v Visual) FormatDisplayDate(t time.Time) string {
	s, err := FormatStrftime(t, v.DateFormatDisplay)
	if err != nil {
		return t.Format("02.01.2006")
	}
	return s
}
