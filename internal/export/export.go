// Package export writes reports and explanations to files.
package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dshills/contractcheck/internal/explain"
	"github.com/dshills/contractcheck/internal/report"
)

// DefaultReportName is the file name used when a report is exported without
// an explicit path.
const DefaultReportName = "validation_report.json"

// DefaultExplanationName is where a JSON-format run writes its explanation
// when no path is given.
const DefaultExplanationName = "validation_explanation.json"

// WriteReport writes the report in its export form to path.
func WriteReport(path string, r *report.Report) error {
	if path == "" {
		path = DefaultReportName
	}
	data, err := report.Marshal(r)
	if err != nil {
		return fmt.Errorf("export.WriteReport: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("export.WriteReport: %w", err)
	}
	return nil
}

// MarshalExplanation renders an explanation as indented JSON with a trailing
// newline.
func MarshalExplanation(e *explain.Explanation) ([]byte, error) {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// WriteExplanation writes the explanation as indented JSON to path.
func WriteExplanation(path string, e *explain.Explanation) error {
	if path == "" {
		path = DefaultExplanationName
	}
	data, err := MarshalExplanation(e)
	if err != nil {
		return fmt.Errorf("export.WriteExplanation: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("export.WriteExplanation: %w", err)
	}
	return nil
}
