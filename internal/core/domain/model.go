package domain

import "time"

// ValidationResult holds the outcome of a structural validation.
type ValidationResult struct {
	Valid  bool
	Reason string
}

// Result holds the outcome of a text comparison.
type Result struct {
	Name          string
	Score         float64
	Passed        bool
	ExpectedWords int
	MatchedWords  int
	Threshold     float64
	Details       map[string]interface{}
}

// SampleResult holds the outcome of one golden sample in a harness run.
type SampleResult struct {
	Sample           string  `json:"sample"`
	OutputPath       string  `json:"output_path,omitempty"`
	Valid            bool    `json:"valid"`
	ValidationReason string  `json:"validation_reason"`
	Similarity       float64 `json:"similarity"`
	Passed           bool    `json:"passed"`
	Error            string  `json:"error,omitempty"`
}

// Report aggregates the results of a full harness run.
type Report struct {
	RunID     string         `json:"run_id"`
	Timestamp time.Time      `json:"timestamp"`
	Model     string         `json:"model"`
	Tolerance float64        `json:"tolerance"`
	Samples   []SampleResult `json:"samples"`
	Passed    int            `json:"passed"`
	Failed    int            `json:"failed"`
}
