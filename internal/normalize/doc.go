// Package normalize maps positional data blob rows onto schedule and roster records.
//
// The upstream site exposes its rows only as arrays with an undocumented,
// versionless field order. FieldMap and RosterFieldMap keep every offset in one
// configurable place. Normalizer.Row applies the date, time, opponent and
// home/away rules to a single row, Aggregate isolates per-row failures, and
// Normalizer.Page runs the whole locate, parse, normalize and aggregate pipeline
// over a fetched page without ever failing.
package normalize
