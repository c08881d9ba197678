// Package dates resolves the ambiguous date representations found in gym
// membership spreadsheets: Excel serial numbers, French month abbreviations
// ("04-août"), day/month tokens without a year, and full DD/MM/YYYY values.
//
// Parsed dates are normalized to 12:00 UTC (see biztime) so downstream
// comparisons never flip across a midnight boundary.
package dates

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"pulsefit/internal/shared/biztime"
)

// excelEpoch is day zero of the 1900 date system (accounting for the
// historical Lotus leap-year bug, serial 1 is 1899-12-31).
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// frenchMonths maps accent-folded, lowercased French month abbreviations to
// month numbers. Keys are matched as prefixes so "janv", "janvier" and
// "sept." all resolve.
var frenchMonths = []struct {
	abbrev string
	month  time.Month
}{
	{"janv", time.January},
	{"fevr", time.February},
	{"fev", time.February},
	{"mars", time.March},
	{"avr", time.April},
	{"mai", time.May},
	{"juin", time.June},
	{"juil", time.July},
	{"aout", time.August},
	{"sept", time.September},
	{"oct", time.October},
	{"nov", time.November},
	{"dec", time.December},
}

var (
	dayMonthYearRe = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})$`)
	dayMonthRe     = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})$`)
	dayAbbrevRe    = regexp.MustCompile(`^(\d{1,2})[ /-]([\p{L}.]+)$`)
	serialRe       = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// genericLayouts are tried as a last resort. Matches keep their day and month
// but the year is overridden by the batch fallback year (when non-zero) so a
// whole import reports against a single year.
var genericLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006/01/02",
	"02 Jan 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldAccents lowercases s and strips combining marks, so "Août" == "aout".
func foldAccents(s string) string {
	folded, _, err := transform.String(accentFolder, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}

// ParseFlexible parses a raw spreadsheet cell into a calendar date.
// fallbackYear is applied to year-less tokens and overrides the year of
// generic-format matches; pass 0 to keep whatever year the value carries.
// The boolean is false when nothing matched.
func ParseFlexible(raw string, fallbackYear int) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	// Excel date serial, e.g. "45385" for 2024-04-03.
	if serialRe.MatchString(s) {
		serial, err := strconv.ParseFloat(s, 64)
		if err == nil && serial >= 1 && serial <= 2958465 {
			d := excelEpoch.AddDate(0, 0, int(serial))
			return biztime.NoonUTC(d), true
		}
		return time.Time{}, false
	}

	// DD/MM/YYYY or DD-MM-YYYY, two-digit years normalized to 20YY.
	if m := dayMonthYearRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if len(m[3]) == 2 {
			year += 2000
		}
		return makeDate(year, time.Month(month), day)
	}

	// DD/MM or DD-MM, year supplied by the batch.
	if m := dayMonthRe.FindStringSubmatch(s); m != nil {
		if fallbackYear == 0 {
			return time.Time{}, false
		}
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		return makeDate(fallbackYear, time.Month(month), day)
	}

	// DD-<french month abbreviation>, e.g. "04-août".
	if m := dayAbbrevRe.FindStringSubmatch(s); m != nil {
		if fallbackYear == 0 {
			return time.Time{}, false
		}
		day, _ := strconv.Atoi(m[1])
		token := foldAccents(strings.TrimSuffix(m[2], "."))
		for _, fm := range frenchMonths {
			if strings.HasPrefix(token, fm.abbrev) {
				return makeDate(fallbackYear, fm.month, day)
			}
		}
		return time.Time{}, false
	}

	// Generic fallback: keep day and month, override the year.
	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			year := t.Year()
			if fallbackYear != 0 {
				year = fallbackYear
			}
			return makeDate(year, t.Month(), t.Day())
		}
	}

	return time.Time{}, false
}

// makeDate validates the day/month combination by checking that time.Date did
// not normalize an out-of-range value (e.g. 31/02 rolling into March).
func makeDate(year int, month time.Month, day int) (time.Time, bool) {
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != month {
		return time.Time{}, false
	}
	return t, true
}

// DaysBetween returns the ceiling of the whole-day difference from a to b.
// "2.1 days left" reports as 3, never 2; an exact multiple stays exact.
func DaysBetween(a, b time.Time) int {
	return int(math.Ceil(b.Sub(a).Hours() / 24))
}
