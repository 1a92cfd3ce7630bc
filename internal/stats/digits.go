// Package stats tabulates positional digit frequencies of the three-digit
// front numbers.
package stats

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pfrederiksen/thai-lottery/internal/draw"
)

// Place names a digit position in a three-digit number.
type Place string

const (
	Hundreds Place = "Hundreds Place"
	Tens     Place = "Tens Place"
	Ones     Place = "Ones Place"
)

// Places lists the positions in chart order.
var Places = []Place{Hundreds, Tens, Ones}

// DigitCount maps a digit value to how often it occurred.
type DigitCount map[int]int

func newDigitCount() DigitCount {
	dc := make(DigitCount, 10)
	for d := 0; d <= 9; d++ {
		dc[d] = 0
	}
	return dc
}

// Number is one front number exploded from a draw.
type Number struct {
	Date  string
	Value int
}

// Frequency holds the per-place digit counts. Digits 0-9 are always present.
//
// Values outside 0-999 are tabulated with plain divide/modulo arithmetic, so a
// hundreds "digit" of 10 or more (or a negative one) can appear. Such values
// are also counted in OutOfRange.
type Frequency struct {
	Hundreds   DigitCount `json:"hundreds"`
	Tens       DigitCount `json:"tens"`
	Ones       DigitCount `json:"ones"`
	Numbers    int        `json:"numbers"`
	Skipped    int        `json:"skipped"`
	OutOfRange int        `json:"out_of_range"`
}

// Row is one line of the aligned frequency table.
type Row struct {
	Digit    int `json:"digit"`
	Hundreds int `json:"hundreds"`
	Tens     int `json:"tens"`
	Ones     int `json:"ones"`
}

// FrontNumbers splits each draw's front numbers on whitespace and returns one
// Number per token, paired with the draw date. Tokens that are not integers
// are dropped; the second return value counts them.
func FrontNumbers(ds draw.Dataset) ([]Number, int) {
	numbers := make([]Number, 0, len(ds)*2)
	skipped := 0
	for _, rec := range ds {
		for _, token := range strings.Fields(rec.ThreeFront) {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			n, err := strconv.Atoi(token)
			if err != nil {
				skipped++
				continue
			}
			numbers = append(numbers, Number{Date: rec.Date, Value: n})
		}
	}
	return numbers, skipped
}

// Aggregate counts hundreds, tens and ones digits of every front number in ds.
func Aggregate(ds draw.Dataset) *Frequency {
	numbers, skipped := FrontNumbers(ds)

	f := &Frequency{
		Hundreds: newDigitCount(),
		Tens:     newDigitCount(),
		Ones:     newDigitCount(),
		Numbers:  len(numbers),
		Skipped:  skipped,
	}

	for _, num := range numbers {
		n := num.Value
		if n < 0 || n > 999 {
			f.OutOfRange++
		}
		f.Hundreds[n/100]++
		f.Tens[(n/10)%10]++
		f.Ones[n%10]++
	}

	return f
}

// Count returns the count for digit at place.
func (f *Frequency) Count(place Place, digit int) int {
	switch place {
	case Hundreds:
		return f.Hundreds[digit]
	case Tens:
		return f.Tens[digit]
	case Ones:
		return f.Ones[digit]
	}
	return 0
}

// Digits returns every digit value present in any place, ascending.
func (f *Frequency) Digits() []int {
	seen := make(map[int]bool)
	for _, dc := range []DigitCount{f.Hundreds, f.Tens, f.Ones} {
		for d := range dc {
			seen[d] = true
		}
	}
	digits := make([]int, 0, len(seen))
	for d := range seen {
		digits = append(digits, d)
	}
	sort.Ints(digits)
	return digits
}

// Table returns the counts aligned by digit, ascending.
func (f *Frequency) Table() []Row {
	digits := f.Digits()
	rows := make([]Row, len(digits))
	for i, d := range digits {
		rows[i] = Row{
			Digit:    d,
			Hundreds: f.Hundreds[d],
			Tens:     f.Tens[d],
			Ones:     f.Ones[d],
		}
	}
	return rows
}

// Max returns the largest single count, for chart scaling.
func (f *Frequency) Max() int {
	max := 0
	for _, row := range f.Table() {
		for _, v := range []int{row.Hundreds, row.Tens, row.Ones} {
			if v > max {
				max = v
			}
		}
	}
	return max
}
