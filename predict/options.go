package predict

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/statkit/insight/internal/options"
	"github.com/statkit/insight/model"
	"github.com/statkit/insight/table"
)

// Semantics selects what a prediction means.
type Semantics uint8

const (
	// SemanticsUnset means the caller supplied no semantics; Predict
	// requires either explicit semantics or a native-kind override.
	SemanticsUnset Semantics = iota
	// Expectation requests mean/probability-weighted predictions.
	Expectation
	// Classification requests discrete predicted categories.
	Classification
)

// String returns the string representation of the prediction semantics.
func (s Semantics) String() string {
	switch s {
	case Expectation:
		return "expectation"
	case Classification:
		return "classification"
	default:
		return "unset"
	}
}

// config holds the resolved prediction request.
type config struct {
	semantics  Semantics
	nativeKind model.Kind
	newData    *table.Table
	level      float64 // 0 means no intervals
	verbose    bool
	logger     *zap.Logger
}

func defaultConfig() *config {
	return &config{logger: zap.NewNop()}
}

// Option is a functional option for a prediction request.
type Option = options.Option[*config]

// WithSemantics sets the requested prediction semantics.
func WithSemantics(s Semantics) Option {
	return options.New(func(cfg *config) error {
		if s != Expectation && s != Classification {
			return fmt.Errorf("%w: %d", ErrUnsupportedSemantics, s)
		}
		cfg.semantics = s

		return nil
	})
}

// WithNativeKind supplies a native prediction-type override in place of
// semantics. KindClass implies classification; KindProbs and
// KindResponse imply expectation.
func WithNativeKind(k model.Kind) Option {
	return options.NoError(func(cfg *config) {
		cfg.nativeKind = k
	})
}

// WithNewData sets the table to predict on. Passing nil is identical to
// omitting the option: the model's own fitting data is used with the
// response column stripped. Some native routines distinguish an
// explicitly-null table from an absent one; this layer deliberately
// does not.
func WithNewData(t *table.Table) Option {
	return options.NoError(func(cfg *config) {
		cfg.newData = t
	})
}

// WithCILevel requests confidence intervals at the given level.
//
// The level must lie in (0,1]; NaN is treated as absent and leaves the
// request unchanged.
func WithCILevel(level float64) Option {
	return options.New(func(cfg *config) error {
		if math.IsNaN(level) {
			return nil
		}
		if level <= 0 || level > 1 {
			return fmt.Errorf("%w: %g", ErrInvalidCILevel, level)
		}
		cfg.level = level

		return nil
	})
}

// WithVerbose enables diagnostic warnings on the configured logger.
func WithVerbose(verbose bool) Option {
	return options.NoError(func(cfg *config) {
		cfg.verbose = verbose
	})
}

// WithLogger sets the logger used for diagnostic warnings.
// The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return options.New(func(cfg *config) error {
		if logger == nil {
			return fmt.Errorf("logger must not be nil")
		}
		cfg.logger = logger

		return nil
	})
}

// semanticsForKind maps a native-kind override onto prediction semantics.
func semanticsForKind(k model.Kind) (Semantics, error) {
	switch k {
	case model.KindClass:
		return Classification, nil
	case model.KindProbs, model.KindResponse:
		return Expectation, nil
	default:
		return SemanticsUnset, fmt.Errorf("unknown native prediction kind %q", k)
	}
}
