package harness

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/baditaflorin/go_rtf_validation/internal/core/domain"
)

// WriteReport writes the report as indented JSON to path.
func WriteReport(report *domain.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("harness: marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("harness: write report: %w", err)
	}
	return nil
}
