package jobs

import (
	"math"
	"time"
)

const ResultVersion = "1.0"

// Result is the envelope produced by FormatResult.
type Result struct {
	Data      map[string]any `json:"data"`
	Timestamp string         `json:"timestamp"`
	Version   string         `json:"version"`
}

// ValidateParams reports whether every required key is present in params.
func ValidateParams(params map[string]any, required []string) bool {
	for _, field := range required {
		if _, ok := params[field]; !ok {
			return false
		}
	}
	return true
}

// FormatResult wraps data with a timestamp and the result format version.
func FormatResult(data map[string]any, now time.Time) Result {
	return Result{
		Data:      data,
		Timestamp: timestamp(now),
		Version:   ResultVersion,
	}
}

func timestamp(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
