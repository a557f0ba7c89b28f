// Package model defines the abstraction over fitted regression models.
//
// Model fitting lives in external libraries; this package only describes
// what a fitted model must expose for the rest of the module to work:
// the data it was fit on, its response metadata, its family, and a
// native prediction operation. The predict package dispatches on
// Family and reconciles the heterogeneous NativeOutput shapes into one
// canonical long-format table.
package model

import (
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/statkit/insight/table"
)

// Family identifies the model family, which selects the prediction
// adapter in the predict package.
type Family uint8

const (
	// FamilyLinear represents a plain linear regression model.
	FamilyLinear Family = iota
	// FamilyRobustLinear represents a robust linear regression model.
	FamilyRobustLinear
	// FamilyOrdinal represents an ordinal cumulative-link model.
	FamilyOrdinal
	// FamilyMultinomial represents a multinomial logistic model.
	FamilyMultinomial
	// FamilyOrderedLogit represents an ordered-logit variant that shares
	// the multinomial prediction contract.
	FamilyOrderedLogit
	// FamilyBRMultinomial represents a bias-reduced multinomial variant
	// that shares the multinomial prediction contract.
	FamilyBRMultinomial
)

// familyNames maps Family to their string representations.
var familyNames = map[Family]string{
	FamilyLinear:        "linear",
	FamilyRobustLinear:  "robust-linear",
	FamilyOrdinal:       "ordinal",
	FamilyMultinomial:   "multinomial",
	FamilyOrderedLogit:  "ordered-logit",
	FamilyBRMultinomial: "br-multinomial",
}

// String returns the string representation of the family.
func (f Family) String() string {
	if name, exists := familyNames[f]; exists {
		return name
	}

	return "unknown"
}

// familyFromString maps string names to Family.
var familyFromString = map[string]Family{
	"linear":         FamilyLinear,
	"robust-linear":  FamilyRobustLinear,
	"ordinal":        FamilyOrdinal,
	"multinomial":    FamilyMultinomial,
	"ordered-logit":  FamilyOrderedLogit,
	"br-multinomial": FamilyBRMultinomial,
}

// FamilyFromString returns the Family for a given string name.
// Returns Family(255) for unknown names.
func FamilyFromString(name string) Family {
	if family, exists := familyFromString[strings.ToLower(name)]; exists {
		return family
	}

	return Family(255) // Invalid Family
}

// Kind is the native prediction type tag understood by a model's
// prediction routine.
type Kind string

const (
	// KindResponse requests scalar predictions on the response scale.
	KindResponse Kind = "response"
	// KindProbs requests a per-category probability matrix.
	KindProbs Kind = "probs"
	// KindClass requests discrete class labels.
	KindClass Kind = "class"
)

// NativeRequest parameterizes one call to a model's native prediction
// routine.
type NativeRequest struct {
	// Data is the table to predict on. Nil means the model's own fitting
	// data; implementations must treat an explicit nil exactly like an
	// omitted table.
	Data *table.Table
	// Kind selects the native output shape.
	Kind Kind
	// Level is the confidence level for interval output, in (0,1].
	// Zero means no intervals.
	Level float64
	// FreeResponse asks ordinal models to predict over every response
	// category instead of conditioning on the observed response levels.
	// Without it the native routine changes output shape depending on
	// whether the response is present in Data.
	FreeResponse bool
}

// NativeOutput is the raw result of a native prediction call, before the
// predict package reconciles it into canonical long format.
//
// Exactly one of Values, Probs or Labels is populated:
//   - Values: one scalar prediction per observation (KindResponse)
//   - Probs: observations x categories matrix (KindProbs), with
//     Categories naming the columns in the model's natural order
//   - Labels: one class label per observation (KindClass)
//
// SE, Lower and Upper are optional and, when present, have the same
// shape as the point estimates (an n x 1 matrix for scalar output).
type NativeOutput struct {
	Values     []float64
	Probs      *mat.Dense
	Labels     []string
	Categories []string

	SE    *mat.Dense
	Lower *mat.Dense
	Upper *mat.Dense
}

// HasIntervals reports whether the output carries CI bound matrices.
func (o *NativeOutput) HasIntervals() bool {
	return o.Lower != nil && o.Upper != nil
}

// Model is the read-only view of a fitted regression model.
//
// Implementations must not be mutated by any operation in this module;
// prediction calls derive request objects instead of rebinding model
// internals.
type Model interface {
	// Family returns the model family used for adapter dispatch.
	Family() Family
	// Data returns the data frame the model was fit on, including the
	// response column.
	Data() *table.Table
	// Response returns the response column name in Data.
	Response() string
	// ResponseExpression returns the source-level response expression,
	// e.g. "log(y + 2)". Empty when the model has no term structure.
	ResponseExpression() string
	// Categories returns the response category labels in the model's
	// natural order, or nil for scalar outcomes.
	Categories() []string
	// Predict invokes the model's native prediction routine.
	Predict(req NativeRequest) (*NativeOutput, error)
}
