package draw

// Columns is the header of the exported results sheet.
var Columns = []string{"Date", "First Prize", "3 Front Numbers", "3 Last Numbers", "2 Last Numbers"}

// PrizeCount is the number of prize cells a results row must carry.
const PrizeCount = 4

// Record represents a single lottery draw
type Record struct {
	Date       string `json:"date"`
	FirstPrize string `json:"first_prize"`
	ThreeFront string `json:"three_front"` // Whitespace-separated 3-digit numbers
	ThreeLast  string `json:"three_last"`
	TwoLast    string `json:"two_last"`
	Year       int    `json:"year"`       // Buddhist year of the page the row came from
	SourceURL  string `json:"source_url"`
}

// NewRecord builds a Record from a normalized date and the prize cells of a
// results row, in page order. It reports false if fewer than four prizes are
// given; extra cells are ignored.
func NewRecord(date string, prizes []string, year int, sourceURL string) (*Record, bool) {
	if len(prizes) < PrizeCount {
		return nil, false
	}
	return &Record{
		Date:       date,
		FirstPrize: prizes[0],
		ThreeFront: prizes[1],
		ThreeLast:  prizes[2],
		TwoLast:    prizes[3],
		Year:       year,
		SourceURL:  sourceURL,
	}, true
}

// Row returns the record's cells in Columns order.
func (r *Record) Row() []string {
	return []string{r.Date, r.FirstPrize, r.ThreeFront, r.ThreeLast, r.TwoLast}
}
