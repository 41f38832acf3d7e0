package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	rtfvalidation "github.com/baditaflorin/go_rtf_validation"
)

var rootCmd = &cobra.Command{
	Use:   "rtfharness",
	Short: "Validate and compare RTF output from a text-generation service",
	Long: "rtfharness checks whether generated text is structurally valid RTF " +
		"and whether its visible content matches an expected reference within a tolerance.",
	SilenceUsage: true,
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check that a file is structurally valid RTF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		requireParagraphs, _ := cmd.Flags().GetBool("require-paragraphs")
		var opts []rtfvalidation.Option
		if requireParagraphs {
			opts = append(opts, rtfvalidation.WithRequireParagraphMarkers())
		}

		result := rtfvalidation.NewRTFValidator(opts...).Validate(string(content))
		fmt.Printf("%s: %s\n", args[0], result.Reason)
		if !result.Valid {
			os.Exit(1)
		}
		return nil
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare <actual-file> <expected-file>",
	Short: "Compare the visible text of two RTF files with tolerance",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		actual, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		expected, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[1], err)
		}

		tolerance, _ := cmd.Flags().GetFloat64("tolerance")
		comparator := rtfvalidation.NewTextComparator(
			rtfvalidation.WithTolerance(tolerance),
		)

		err = comparator.Compare(
			rtfvalidation.ExtractVisibleText(string(actual)),
			rtfvalidation.ExtractVisibleText(string(expected)),
		)
		if err != nil {
			fmt.Println("FAIL:", err)
			os.Exit(1)
		}
		fmt.Println("OK: texts match within tolerance")
		return nil
	},
}

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Print the approximate visible text of an RTF file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		fmt.Println(rtfvalidation.ExtractVisibleText(string(content)))
		return nil
	},
}

func init() {
	validateCmd.Flags().Bool("require-paragraphs", false, "also require \\par or \\line markers")
	compareCmd.Flags().Float64("tolerance", rtfvalidation.DefaultTolerance, "minimum similarity ratio (0-1)")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(runsCmd)
}

func main() {
	godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
