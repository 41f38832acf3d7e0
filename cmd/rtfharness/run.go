package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_rtf_validation/internal/adapters/extractor"
	"github.com/baditaflorin/go_rtf_validation/internal/adapters/generator"
	"github.com/baditaflorin/go_rtf_validation/internal/adapters/logger"
	"github.com/baditaflorin/go_rtf_validation/internal/adapters/normalizer"
	"github.com/baditaflorin/go_rtf_validation/internal/core/compare"
	"github.com/baditaflorin/go_rtf_validation/internal/core/rtf"
	"github.com/baditaflorin/go_rtf_validation/internal/harness"
	"github.com/baditaflorin/go_rtf_validation/internal/storage/sqlite"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the golden samples against the generation service",
	Long: "For every .txt prompt in the input directory: call the generator, save the raw " +
		"output, validate its RTF structure and compare its visible text against the " +
		"expected reference. Requires OPENAI_API_KEY (optionally OPENAI_MODEL_ID and " +
		"OPENAI_BASE_URL), loaded from the environment or a .env file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		inputDir, _ := cmd.Flags().GetString("input")
		expectedDir, _ := cmd.Flags().GetString("expected")
		outputDir, _ := cmd.Flags().GetString("output")
		tolerance, _ := cmd.Flags().GetFloat64("tolerance")
		dbPath, _ := cmd.Flags().GetString("db")
		reportPath, _ := cmd.Flags().GetString("report")

		log, err := logger.NewStdLogger()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		defer log.Close()

		gen, err := generator.New(generator.Config{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: os.Getenv("OPENAI_BASE_URL"),
			Model:   os.Getenv("OPENAI_MODEL_ID"),
		})
		if err != nil {
			return err
		}

		comparator, err := compare.NewComparator(compare.ComparatorConfig{
			Threshold: tolerance,
		}, log, normalizer.NewDefaultNormalizer())
		if err != nil {
			return err
		}

		deps := harness.Deps{
			Generator:  gen,
			Validator:  rtf.NewValidator(rtf.DefaultValidatorConfig(), log),
			Comparator: comparator,
			Extractor:  extractor.NewRTFExtractor(),
			Logger:     log,
		}

		if dbPath != "" {
			store, err := sqlite.Open(dbPath)
			if err != nil {
				return fmt.Errorf("open run store: %w", err)
			}
			defer store.Close()
			if err := store.CreateTables(ctx); err != nil {
				return fmt.Errorf("create tables: %w", err)
			}
			deps.Store = store
		}

		runner, err := harness.NewRunner(harness.Config{
			InputDir:    inputDir,
			ExpectedDir: expectedDir,
			OutputDir:   outputDir,
			Model:       gen.Model(),
			Tolerance:   tolerance,
		}, deps)
		if err != nil {
			return err
		}

		report, err := runner.Run(ctx)
		if err != nil {
			return err
		}

		if reportPath != "" {
			if err := harness.WriteReport(report, reportPath); err != nil {
				return err
			}
		}

		fmt.Printf("run %s: %d passed, %d failed\n", report.RunID, report.Passed, report.Failed)
		for _, s := range report.Samples {
			status := "PASS"
			if !s.Passed {
				status = "FAIL"
			}
			fmt.Printf("  %-4s %s (valid=%v, similarity=%.2f%%)\n",
				status, s.Sample, s.Valid, s.Similarity*100)
			if s.Error != "" {
				fmt.Printf("       error: %s\n", s.Error)
			}
		}
		if report.Failed > 0 {
			os.Exit(1)
		}
		return nil
	},
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent harness runs from the run store",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, _ := cmd.Flags().GetString("db")
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := sqlite.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open run store: %w", err)
		}
		defer store.Close()
		if err := store.CreateTables(cmd.Context()); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}

		runs, err := store.ListRuns(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("no runs recorded")
			return nil
		}
		for _, r := range runs {
			fmt.Printf("%s  %s  model=%s  tolerance=%.2f  passed=%d  failed=%d\n",
				r.RunID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Model,
				r.Tolerance, r.Passed, r.Failed)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().String("input", filepath.Join("tests", "input"), "directory of .txt prompt samples")
	runCmd.Flags().String("expected", filepath.Join("tests", "expected"), "directory of <sample>_expected.rtf references")
	runCmd.Flags().String("output", filepath.Join("tests", "output"), "directory for raw generator output")
	runCmd.Flags().Float64("tolerance", 0.85, "minimum similarity ratio (0-1)")
	runCmd.Flags().String("db", "", "SQLite run-store path (empty = do not persist)")
	runCmd.Flags().String("report", "", "write the run report as JSON to this path")

	runsCmd.Flags().String("db", "data/runs.db", "SQLite run-store path")
	runsCmd.Flags().Int("limit", 20, "maximum number of runs to list")
}
