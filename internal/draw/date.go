package draw

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// BuddhistEraOffset is the number of years the Thai solar calendar runs ahead
// of the Gregorian calendar.
const BuddhistEraOffset = 543

// DateLayout is the canonical form produced by Normalize ("January 2, 2006").
const DateLayout = "January 2, 2006"

// drawMarker is the Thai word for "draw"/"period" that precedes every draw date.
const drawMarker = "งวด"

// ErrInvalidDate is returned when a date is not in the canonical layout.
var ErrInvalidDate = errors.New("invalid draw date")

var thaiMonths = map[string]string{
	"มกราคม":      "January",
	"กุมภาพันธ์":  "February",
	"มีนาคม":      "March",
	"เมษายน":      "April",
	"พฤษภาคม":     "May",
	"มิถุนายน":    "June",
	"กรกฎาคม":     "July",
	"สิงหาคม":     "August",
	"กันยายน":     "September",
	"ตุลาคม":      "October",
	"พฤศจิกายน":   "November",
	"ธันวาคม":     "December",
}

var thaiDigits = map[rune]rune{
	'๐': '0', '๑': '1', '๒': '2', '๓': '3', '๔': '4',
	'๕': '5', '๖': '6', '๗': '7', '๘': '8', '๙': '9',
}

var westernDigits = invertDigits(thaiDigits)

// Pattern for "งวด 16 มีนาคม 2567" once digits are western.
var drawDatePattern = regexp.MustCompile(drawMarker + `\s+(\d+)\s+(\S+)\s+(\d+)`)

func invertDigits(m map[rune]rune) map[rune]rune {
	inv := make(map[rune]rune, len(m))
	for k, v := range m {
		inv[v] = k
	}
	return inv
}

func digitMapper(table map[rune]rune) transform.Transformer {
	return runes.Map(func(r rune) rune {
		if mapped, ok := table[r]; ok {
			return mapped
		}
		return r
	})
}

// ThaiDigits replaces Thai numeral glyphs with their western equivalents.
func ThaiDigits(s string) string {
	out, _, err := transform.String(digitMapper(thaiDigits), s)
	if err != nil {
		return s
	}
	return out
}

// ToThaiDigits is the inverse of ThaiDigits.
func ToThaiDigits(s string) string {
	out, _, err := transform.String(digitMapper(westernDigits), s)
	if err != nil {
		return s
	}
	return out
}

// DateResult is the outcome of NormalizeDate. When Normalized is false, Text
// holds the original input untouched.
type DateResult struct {
	Text       string
	Normalized bool
}

// NormalizeDate converts a Thai draw label such as "งวด ๑ มกราคม ๒๕๖๗" into
// "January 1, 2024". Month names it does not know are passed through, as are
// non-numeric years. It never fails: text without the draw marker comes back
// unchanged with Normalized set to false.
func NormalizeDate(text string) DateResult {
	western := ThaiDigits(text)

	if m := drawDatePattern.FindStringSubmatch(western); m != nil {
		return DateResult{Text: formatDate(m[1], m[2], m[3]), Normalized: true}
	}

	// Fallback: positional tokens after the marker
	parts := strings.Fields(western)
	for i, part := range parts {
		if part == drawMarker && i+3 < len(parts) {
			return DateResult{Text: formatDate(parts[i+1], parts[i+2], parts[i+3]), Normalized: true}
		}
	}

	return DateResult{Text: text}
}

// Normalize is NormalizeDate without the tag.
func Normalize(text string) string {
	return NormalizeDate(text).Text
}

func formatDate(day, thaiMonth, year string) string {
	month, ok := thaiMonths[thaiMonth]
	if !ok {
		month = thaiMonth
	}
	if be, err := strconv.Atoi(year); err == nil {
		year = strconv.Itoa(GregorianYear(be))
	}
	return fmt.Sprintf("%s %s, %s", month, day, year)
}

// BuddhistYear converts a Gregorian year to the Buddhist Era.
func BuddhistYear(gregorian int) int {
	return gregorian + BuddhistEraOffset
}

// GregorianYear converts a Buddhist Era year to the Gregorian calendar.
func GregorianYear(be int) int {
	return be - BuddhistEraOffset
}

// ParseDate parses a canonical draw date ("March 16, 2024").
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: expected format like %q", ErrInvalidDate, s, DateLayout)
	}
	return t, nil
}
