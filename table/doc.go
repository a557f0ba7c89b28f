// Package table provides the small column-oriented table engine used by
// the prediction normalizer and the numeric formatter.
//
// A Table is an ordered set of named, typed columns of equal length.
// Three column kinds exist: float64 (with an explicit validity mask for
// missing values), int64, and string. Missing numeric values are carried
// in the mask rather than as NaN sentinels, so downstream code never has
// to guess whether a NaN is data or absence.
//
// Beyond construction and lookup, the package provides the two reshaping
// primitives the prediction normalizer depends on:
//
//   - LongFromMatrix: per-category matrix → canonical long format,
//     ordered category-major then row-major
//   - Join: inner join on key columns, preserving left-row order
package table
