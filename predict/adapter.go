package predict

import (
	"fmt"

	"github.com/statkit/insight/model"
	"github.com/statkit/insight/table"
)

// adapter translates one model family's native prediction API into the
// common NativeOutput contract. Adapters are pure: they derive a request
// and call the model, never mutating it.
type adapter interface {
	predict(m model.Model, data *table.Table, sem Semantics, level float64) (*model.NativeOutput, error)
}

// adapterFor selects the prediction adapter for a model family.
func adapterFor(f model.Family) (adapter, error) {
	switch f {
	case model.FamilyOrdinal:
		return ordinalAdapter{}, nil
	case model.FamilyMultinomial, model.FamilyOrderedLogit, model.FamilyBRMultinomial:
		// Ordered-logit and bias-reduced multinomial variants share the
		// multinomial prediction contract verbatim.
		return multinomialAdapter{}, nil
	case model.FamilyRobustLinear:
		return robustLinearAdapter{}, nil
	case model.FamilyLinear:
		return linearAdapter{}, nil
	default:
		return nil, fmt.Errorf("no prediction adapter for model family %q", f)
	}
}

// ordinalAdapter handles cumulative-link models.
//
// For expectation output it always requests a free response: without
// it, the native routine conditions on observed response levels when
// the response column is present in the data, changing the output from
// a per-category matrix to a per-observation vector.
type ordinalAdapter struct{}

func (ordinalAdapter) predict(m model.Model, data *table.Table, sem Semantics, level float64) (*model.NativeOutput, error) {
	switch sem {
	case Classification:
		// Intervals are unsupported here; the normalizer has already
		// dropped any interval request before dispatch.
		return m.Predict(model.NativeRequest{Data: data, Kind: model.KindClass})
	case Expectation:
		return m.Predict(model.NativeRequest{
			Data:         data,
			Kind:         model.KindProbs,
			Level:        level,
			FreeResponse: true,
		})
	default:
		return nil, fmt.Errorf("%w: %s for ordinal models", ErrUnsupportedSemantics, sem)
	}
}

// multinomialAdapter handles multinomial models and their ordered-logit
// and bias-reduced variants: classification maps to class mode,
// expectation to the category-probability matrix.
type multinomialAdapter struct{}

func (multinomialAdapter) predict(m model.Model, data *table.Table, sem Semantics, level float64) (*model.NativeOutput, error) {
	// An explicitly-nil table reaches the native call as "absent" so
	// routines that treat null new-data specially see no difference.
	switch sem {
	case Classification:
		return m.Predict(model.NativeRequest{Data: data, Kind: model.KindClass})
	case Expectation:
		return m.Predict(model.NativeRequest{Data: data, Kind: model.KindProbs, Level: level})
	default:
		return nil, fmt.Errorf("%w: %s for multinomial models", ErrUnsupportedSemantics, sem)
	}
}

// linearAdapter handles plain linear models: scalar response-scale
// predictions, with optional interval output.
type linearAdapter struct{}

func (linearAdapter) predict(m model.Model, data *table.Table, sem Semantics, level float64) (*model.NativeOutput, error) {
	if sem != Expectation {
		return nil, fmt.Errorf("%w: %s for linear models", ErrUnsupportedSemantics, sem)
	}

	return m.Predict(model.NativeRequest{Data: data, Kind: model.KindResponse, Level: level})
}

// robustLinearAdapter handles robust linear regression. Only
// expectation is supported; once the semantics is validated it defers
// entirely to the plain linear contract.
type robustLinearAdapter struct{}

func (robustLinearAdapter) predict(m model.Model, data *table.Table, sem Semantics, level float64) (*model.NativeOutput, error) {
	if sem == Classification {
		return nil, fmt.Errorf("classification is not supported for robust linear models: %w", ErrUnsupportedSemantics)
	}

	return linearAdapter{}.predict(m, data, sem, level)
}
