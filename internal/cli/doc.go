// Package cli implements the command-line interface for thai-lottery.
//
// The cli package provides the Cobra-based command that resolves its settings
// from flags, THAI_LOTTERY_* environment variables and an optional .env file,
// then runs the pipeline: fetch the yearly pages, build the newest-first
// dataset, tabulate front-number digits, save the workbook and print the
// report (text chart or JSON).
package cli
