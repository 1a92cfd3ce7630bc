package draw

import (
	"fmt"
	"sort"
	"time"
)

// Dataset is the full set of draws ordered newest first.
type Dataset []*Record

// Build parses every record's date and returns the records sorted newest
// first. Records sharing a date keep their input order. An unparseable date
// fails the whole build since no order can be established without it.
func Build(records []*Record) (Dataset, error) {
	type keyed struct {
		rec  *Record
		date time.Time
	}

	rows := make([]keyed, 0, len(records))
	for _, rec := range records {
		t, err := ParseDate(rec.Date)
		if err != nil {
			if rec.SourceURL != "" {
				return nil, fmt.Errorf("building dataset (from %s): %w", rec.SourceURL, err)
			}
			return nil, fmt.Errorf("building dataset: %w", err)
		}
		rows = append(rows, keyed{rec: rec, date: t})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].date.After(rows[j].date)
	})

	ds := make(Dataset, len(rows))
	for i, row := range rows {
		ds[i] = row.rec
	}
	return ds, nil
}

// Len returns the number of draws.
func (d Dataset) Len() int {
	return len(d)
}

// Rows returns the sheet cells for every draw, without a header.
func (d Dataset) Rows() [][]string {
	rows := make([][]string, len(d))
	for i, rec := range d {
		rows[i] = rec.Row()
	}
	return rows
}
