// Package draw provides the lottery draw record, Thai date normalization and
// the newest-first dataset.
//
// Dates arrive as Thai labels such as "งวด ๑๖ มีนาคม ๒๕๖๗" and are normalized to
// "March 16, 2024". Normalization never fails; labels it cannot read come back
// unchanged and are rejected later by Build, which needs a parseable date for
// every draw.
package draw
