package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"reportdesk/pkg/utils"
)

type progressLine struct {
	Type       string  `json:"type"`
	Percentage float64 `json:"percentage"`
	Timestamp  string  `json:"timestamp"`
}

type errorLine struct {
	Status    string `json:"status"`
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}

// Sample is the standalone simulated job run by `job sample`.
type Sample struct {
	Steps    int
	Interval time.Duration
	Now      utils.Clock
	Out      io.Writer
	// Required lists parameter keys that must be present.
	Required []string
	// Envelope wraps the success document with FormatResult.
	Envelope bool
}

// Run parses rawParams as a JSON object (empty means no params), then
// prints a start line, the params, one progress line per step and the
// final success document.
func (s *Sample) Run(ctx context.Context, rawParams string) error {
	params := map[string]any{}
	if rawParams != "" {
		if err := json.Unmarshal([]byte(rawParams), &params); err != nil {
			return fmt.Errorf("invalid params: %w", err)
		}
		if params == nil {
			params = map[string]any{}
		}
	}
	if !ValidateParams(params, s.Required) {
		return fmt.Errorf("missing required params: %v", s.Required)
	}

	fmt.Fprintf(s.Out, "Starting job at %s\n", timestamp(s.Now()))
	fmt.Fprintf(s.Out, "Received parameters: %v\n", params)

	enc := json.NewEncoder(s.Out)
	err := Simulate(ctx, s.Steps, s.Interval, func(step int, percentage float64) error {
		if err := enc.Encode(progressLine{Type: "progress", Percentage: percentage, Timestamp: timestamp(s.Now())}); err != nil {
			return err
		}
		_, err := fmt.Fprintf(s.Out, "Completed step %d/%d\n", step, s.Steps)
		return err
	})
	if err != nil {
		return err
	}

	now := s.Now()
	result := map[string]any{
		"status":           "success",
		"completed_at":     timestamp(now),
		"processed_params": params,
	}
	if s.Envelope {
		return enc.Encode(FormatResult(result, now))
	}
	return enc.Encode(result)
}

// WriteError prints the failure document for err to w.
func WriteError(w io.Writer, err error, now time.Time) error {
	return json.NewEncoder(w).Encode(errorLine{
		Status:    "error",
		Error:     err.Error(),
		Timestamp: timestamp(now),
	})
}
