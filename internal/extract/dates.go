package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DateLayout is the canonical output form, e.g. 01-Jul-25.
const DateLayout = "02-Jan-06"

var months = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

var (
	reDashes     = regexp.MustCompile(`-{2,}`)
	reDayMonYear = regexp.MustCompile(`(?i)(\d{1,2})-([A-Za-z]{3,9})-(\d{4}|\d{2})`)
	reISO        = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`)
	reNumeric    = regexp.MustCompile(`(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{4}|\d{2})`)
	reDayLong    = regexp.MustCompile(`(?i)(\d{1,2})(?:st|nd|rd|th)?\s+([A-Za-z]+)\s+(\d{4}|\d{2})`)
	reMonthFirst = regexp.MustCompile(`(?i)([A-Za-z]+)\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4}|\d{2})`)
)

// standardizeDate rewrites the recognised date shapes as DD-Mon-YY. Anything
// else is returned unchanged.
func standardizeDate(s string) string {
	s = reDashes.ReplaceAllString(strings.TrimSpace(s), "-")

	if m := reDayMonYear.FindStringSubmatch(s); m != nil {
		if out, ok := formatDate(m[1], monthIndex(m[2]), m[3]); ok {
			return out
		}
	}
	if m := reISO.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[2])
		if out, ok := formatDate(m[3], n, m[1]); ok {
			return out
		}
	}
	if m := reNumeric.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[2])
		if out, ok := formatDate(m[1], n, m[3]); ok {
			return out
		}
	}
	if m := reDayLong.FindStringSubmatch(s); m != nil {
		if out, ok := formatDate(m[1], monthIndex(m[2]), m[3]); ok {
			return out
		}
	}
	if m := reMonthFirst.FindStringSubmatch(s); m != nil {
		if out, ok := formatDate(m[2], monthIndex(m[1]), m[3]); ok {
			return out
		}
	}
	return s
}

// monthIndex maps a month name or its three letter abbreviation to 1..12, 0 if unknown.
func monthIndex(name string) int {
	if len(name) < 3 {
		return 0
	}
	prefix := strings.ToLower(name[:3])
	for i, m := range months {
		if m == prefix {
			return i + 1
		}
	}
	return 0
}

func formatDate(day string, month int, year string) (string, bool) {
	d, err := strconv.Atoi(day)
	if err != nil || d < 1 || d > 31 || month < 1 || month > 12 {
		return "", false
	}
	yy := year[len(year)-2:]
	return fmt.Sprintf("%02d-%s-%s", d, cases.Title(language.English).String(months[month-1]), yy), true
}

// monthEnd returns the last day of the month of a DD-Mon-YY date.
func monthEnd(date string) (string, bool) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", false
	}
	last := time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
	return last.Format(DateLayout), true
}
