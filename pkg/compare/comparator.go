package compare

import (
	"context"

	"github.com/baditaflorin/l"

	"github.com/baditaflorin/go_rtf_validation/internal/adapters/logger"
	"github.com/baditaflorin/go_rtf_validation/internal/adapters/normalizer"
	"github.com/baditaflorin/go_rtf_validation/internal/core/compare"
	"github.com/baditaflorin/go_rtf_validation/internal/core/domain"
	"github.com/baditaflorin/go_rtf_validation/internal/ports"
)

// Comparator provides tolerance-based comparison of generated text against
// an expected reference.
type Comparator struct {
	calculator *compare.Comparator
	logger     ports.Logger
	normalizer ports.Normalizer
}

// ComparatorOption defines a functional option for configuring Comparator.
type ComparatorOption func(*comparatorConfig)

type comparatorConfig struct {
	Threshold  float64
	Logger     ports.Logger
	Normalizer ports.Normalizer
}

// WithThreshold sets a custom similarity threshold.
func WithThreshold(th float64) ComparatorOption {
	return func(cfg *comparatorConfig) {
		cfg.Threshold = th
	}
}

// WithLogger sets a custom logger.
func WithLogger(l l.Logger) ComparatorOption {
	return func(cfg *comparatorConfig) {
		cfg.Logger = logger.FromExisting(l)
	}
}

// WithNormalizer sets a custom normalizer.
func WithNormalizer(n ports.Normalizer) ComparatorOption {
	return func(cfg *comparatorConfig) {
		cfg.Normalizer = n
	}
}

// New creates a new Comparator instance.
func New(opts ...ComparatorOption) (*Comparator, error) {
	defaultConfig := compare.DefaultConfig()

	config := &comparatorConfig{
		Threshold: defaultConfig.Threshold,
	}
	for _, opt := range opts {
		opt(config)
	}

	if config.Logger == nil {
		var err error
		config.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}
	if config.Normalizer == nil {
		config.Normalizer = normalizer.NewDefaultNormalizer()
	}

	calculator, err := compare.NewComparator(compare.ComparatorConfig{
		Threshold: config.Threshold,
	}, config.Logger, config.Normalizer)
	if err != nil {
		return nil, err
	}

	return &Comparator{
		calculator: calculator,
		logger:     config.Logger,
		normalizer: config.Normalizer,
	}, nil
}

// Compute compares actual against expected and returns the outcome as data.
func (c *Comparator) Compute(ctx context.Context, actual, expected string) domain.Result {
	return c.calculator.Compute(ctx, actual, expected)
}

// Assert runs Compute and converts a failing result into an error.
func (c *Comparator) Assert(ctx context.Context, actual, expected string) error {
	return c.calculator.Assert(ctx, actual, expected)
}

// Normalize returns the canonical comparable form of text.
func (c *Comparator) Normalize(text string) string {
	return c.normalizer.Normalize(text)
}
