// Package invoice defines the invoice document edited by the wizard and
// persisted by the draft store.
//
// JSON field names follow the camelCase layout the remote invoice API
// expects, so an Invoice can be posted as-is.
//
// Totals are derived data. Line totals and the subtotal are only brought up
// to date by RecomputeTotals; editing an item does not touch them. Tax,
// discount and shipping records are carried through untouched and never
// enter the total.
//
// Validation is schema driven: schema.cue declares the constraints and a
// Validator checks any subset of Field paths against it.
package invoice
