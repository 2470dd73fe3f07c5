package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// DefaultPromptIssues is how many issues are handed to the explanation model.
const DefaultPromptIssues = 15

// Head returns at most the first n issues. n <= 0 uses DefaultPromptIssues.
func Head(r *Report, n int) []Issue {
	if n <= 0 {
		n = DefaultPromptIssues
	}
	if len(r.Issues) <= n {
		return r.Issues
	}
	return r.Issues[:n]
}

// Marshal renders the report in its export form: two-space indented JSON with
// a trailing newline.
func Marshal(r *Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("report.Marshal: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode reads an exported report back. Unknown fields are rejected.
func Decode(data []byte) (*Report, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	dec.DisallowUnknownFields()
	var r Report
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("report.Decode: %w", err)
	}
	if r.Issues == nil {
		r.Issues = []Issue{}
	}
	return &r, nil
}

// ConsistencyError describes one violated report invariant.
type ConsistencyError struct {
	Path    string
	Message string
}

func (c ConsistencyError) Error() string {
	return fmt.Sprintf("%s: %s", c.Path, c.Message)
}

// CheckConsistency verifies that pass and issue_count agree with the issue
// list and that every issue names its message and validator.
func CheckConsistency(r *Report) error {
	var errs []error

	if r.IssueCount != len(r.Issues) {
		errs = append(errs, ConsistencyError{"issue_count", fmt.Sprintf("is %d but there are %d issues", r.IssueCount, len(r.Issues))})
	}
	if r.Pass != (len(r.Issues) == 0) {
		errs = append(errs, ConsistencyError{"pass", fmt.Sprintf("is %t with %d issues", r.Pass, len(r.Issues))})
	}
	for i, iss := range r.Issues {
		prefix := fmt.Sprintf("issues[%d]", i)
		if iss.Message == "" {
			errs = append(errs, ConsistencyError{prefix + ".message", "required"})
		}
		if iss.Validator == "" {
			errs = append(errs, ConsistencyError{prefix + ".validator", "required"})
		}
	}
	return errors.Join(errs...)
}
