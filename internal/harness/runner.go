package harness

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/baditaflorin/go_rtf_validation/internal/core/domain"
	"github.com/baditaflorin/go_rtf_validation/internal/ports"
)

// ReportStore persists finished run reports.
type ReportStore interface {
	SaveReport(ctx context.Context, report *domain.Report) error
}

// Config holds the fixture layout and run parameters for a golden run.
type Config struct {
	// InputDir holds one .txt prompt file per sample.
	InputDir string
	// ExpectedDir holds <sample>_expected.rtf reference documents.
	ExpectedDir string
	// OutputDir receives raw generator output as <sample>_output.rtf.
	OutputDir string
	// Model is recorded in the report for traceability.
	Model string
	// Tolerance is recorded in the report; the comparator enforces it.
	Tolerance float64
}

// Deps carries the collaborators a Runner needs.
type Deps struct {
	Generator  ports.Generator
	Validator  ports.DocumentValidator
	Comparator ports.ComparisonCalculator
	Extractor  ports.Extractor
	Logger     ports.Logger
	// Store is optional; when set, finished reports are persisted.
	Store ReportStore
}

// Runner executes the golden pipeline for every sample prompt:
// generate, save raw output, validate structure, extract visible text,
// compare against the expected reference.
type Runner struct {
	config Config
	deps   Deps
}

// NewRunner creates a new golden-run pipeline.
func NewRunner(config Config, deps Deps) (*Runner, error) {
	if config.InputDir == "" {
		return nil, errors.New("harness: input directory is required")
	}
	if deps.Generator == nil || deps.Validator == nil || deps.Comparator == nil || deps.Extractor == nil {
		return nil, errors.New("harness: generator, validator, comparator and extractor are required")
	}
	return &Runner{config: config, deps: deps}, nil
}

// Run executes every sample and returns the aggregated report.
// Individual sample failures are recorded in the report, not returned as
// errors; Run fails only when the run itself cannot proceed.
func (r *Runner) Run(ctx context.Context) (*domain.Report, error) {
	samples, err := r.listSamples()
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("harness: no .txt samples in %s", r.config.InputDir)
	}

	if r.config.OutputDir != "" {
		if err := os.MkdirAll(r.config.OutputDir, 0o755); err != nil {
			return nil, fmt.Errorf("harness: create output dir: %w", err)
		}
	}

	report := &domain.Report{
		RunID:     uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Model:     r.config.Model,
		Tolerance: r.config.Tolerance,
	}

	r.deps.Logger.Info("Starting golden run",
		"run_id", report.RunID,
		"samples", len(samples),
		"model", r.config.Model,
	)

	for _, sample := range samples {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result := r.runSample(ctx, sample)
		report.Samples = append(report.Samples, result)
		if result.Passed {
			report.Passed++
		} else {
			report.Failed++
		}
	}

	r.deps.Logger.Info("Golden run finished",
		"run_id", report.RunID,
		"passed", report.Passed,
		"failed", report.Failed,
	)

	if r.deps.Store != nil {
		if err := r.deps.Store.SaveReport(ctx, report); err != nil {
			return report, fmt.Errorf("harness: save report: %w", err)
		}
	}
	return report, nil
}

func (r *Runner) runSample(ctx context.Context, sample string) domain.SampleResult {
	result := domain.SampleResult{Sample: sample}

	prompt, err := os.ReadFile(filepath.Join(r.config.InputDir, sample+".txt"))
	if err != nil {
		result.Error = fmt.Sprintf("read prompt: %v", err)
		return result
	}

	output, err := r.deps.Generator.Generate(ctx, string(prompt))
	if err != nil {
		r.deps.Logger.Error("Generation failed", "sample", sample, "error", err)
		result.Error = fmt.Sprintf("generate: %v", err)
		return result
	}

	if r.config.OutputDir != "" {
		outPath := filepath.Join(r.config.OutputDir, sample+"_output.rtf")
		if err := os.WriteFile(outPath, []byte(output), 0o644); err != nil {
			r.deps.Logger.Warn("Could not save raw output", "sample", sample, "error", err)
		} else {
			result.OutputPath = outPath
		}
	}

	validation := r.deps.Validator.Validate(output)
	result.Valid = validation.Valid
	result.ValidationReason = validation.Reason

	expected, err := os.ReadFile(filepath.Join(r.config.ExpectedDir, sample+"_expected.rtf"))
	if err != nil {
		result.Error = fmt.Sprintf("read expected reference: %v", err)
		return result
	}

	comparison := r.deps.Comparator.Compute(ctx,
		r.deps.Extractor.Extract(output),
		r.deps.Extractor.Extract(string(expected)),
	)
	result.Similarity = comparison.Score
	result.Passed = validation.Valid && comparison.Passed

	r.deps.Logger.Info("Sample finished",
		"sample", sample,
		"valid", result.Valid,
		"reason", result.ValidationReason,
		"similarity", result.Similarity,
		"passed", result.Passed,
	)
	return result
}

// listSamples returns the sample names (file basenames without extension)
// of every .txt prompt in the input directory, in directory order.
func (r *Runner) listSamples() ([]string, error) {
	entries, err := os.ReadDir(r.config.InputDir)
	if err != nil {
		return nil, fmt.Errorf("harness: read input dir: %w", err)
	}
	var samples []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		samples = append(samples, strings.TrimSuffix(e.Name(), ".txt"))
	}
	return samples, nil
}
