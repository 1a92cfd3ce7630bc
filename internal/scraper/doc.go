// Package scraper provides HTTP fetching and HTML parsing for the yearly Thai
// lottery result pages.
//
// Each Buddhist-era year has its own page with a results table. The scraper
// fetches pages one at a time, newest year first, and extracts one draw per
// table row: the Thai draw date (converted to a Gregorian date) and the four
// prize cells. A year that fails to load or has no table contributes no draws
// and the run continues with the next year.
package scraper
