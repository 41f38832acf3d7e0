package rtf

import (
	"github.com/baditaflorin/l"

	"github.com/baditaflorin/go_rtf_validation/internal/adapters/extractor"
	"github.com/baditaflorin/go_rtf_validation/internal/adapters/logger"
	"github.com/baditaflorin/go_rtf_validation/internal/core/domain"
	"github.com/baditaflorin/go_rtf_validation/internal/core/rtf"
	"github.com/baditaflorin/go_rtf_validation/internal/ports"
)

// Validator provides structural validation and visible-text extraction for
// candidate RTF documents.
type Validator struct {
	validator ports.DocumentValidator
	extractor ports.Extractor
	logger    ports.Logger
}

// ValidatorOption defines a functional option for configuring Validator.
type ValidatorOption func(*validatorConfig)

type validatorConfig struct {
	RequireParagraphMarkers bool
	Logger                  ports.Logger
	Extractor               ports.Extractor
}

// WithRequireParagraphMarkers additionally requires \par or \line to be
// present for a document to validate.
func WithRequireParagraphMarkers() ValidatorOption {
	return func(cfg *validatorConfig) {
		cfg.RequireParagraphMarkers = true
	}
}

// WithLogger sets a custom logger.
func WithLogger(l l.Logger) ValidatorOption {
	return func(cfg *validatorConfig) {
		cfg.Logger = logger.FromExisting(l)
	}
}

// WithExtractor sets a custom visible-text extractor.
func WithExtractor(e ports.Extractor) ValidatorOption {
	return func(cfg *validatorConfig) {
		cfg.Extractor = e
	}
}

// New creates a new Validator instance.
func New(opts ...ValidatorOption) (*Validator, error) {
	config := &validatorConfig{}
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
	if config.Extractor == nil {
		config.Extractor = extractor.NewRTFExtractor()
	}

	core := rtf.NewValidator(rtf.ValidatorConfig{
		RequireParagraphMarkers: config.RequireParagraphMarkers,
	}, config.Logger)

	return &Validator{
		validator: core,
		extractor: config.Extractor,
		logger:    config.Logger,
	}, nil
}

// Validate checks the structural well-formedness of content.
func (v *Validator) Validate(content string) domain.ValidationResult {
	return v.validator.Validate(content)
}

// ExtractVisibleText returns the approximate visible text of content.
func (v *Validator) ExtractVisibleText(content string) string {
	return v.extractor.Extract(content)
}
