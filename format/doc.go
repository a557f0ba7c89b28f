// Package format converts numeric vectors into display strings for
// reporting: fixed-point, scientific, significant-digit and percent
// forms, with integer protection, missing-value replacement and width
// padding.
//
// The package is a pure utility with no model awareness. The central
// type is Spec, a value describing one formatting pass:
//
//	out := format.Format([]float64{100000, 0.001}, format.DefaultSpec())
//	// ["1.00e+05", "1.00e-03"]
//
// On the []float64 boundary NaN is the missing marker; each NaN maps to
// Spec.Missing (empty string by default). Table input is formatted per
// column with the same spec via FormatTable, preserving column order.
package format
