package jobs

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time { return time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC) }

func TestSimulate(t *testing.T) {
	var got []float64
	err := Simulate(context.Background(), 5, time.Millisecond, func(step int, percentage float64) error {
		assert.Equal(t, len(got)+1, step)
		got = append(got, percentage)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{20, 40, 60, 80, 100}, got)
}

func TestSimulate_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Simulate(ctx, 5, time.Millisecond, func(step int, percentage float64) error {
		calls++
		if step == 2 {
			cancel()
		}
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, calls)
}

func TestSimulate_StopsOnStepError(t *testing.T) {
	errStep := errors.New("step failed")
	calls := 0
	err := Simulate(context.Background(), 5, time.Millisecond, func(step int, percentage float64) error {
		calls++
		return errStep
	})
	assert.ErrorIs(t, err, errStep)
	assert.Equal(t, 1, calls)
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		step, total int
		want        float64
	}{
		{1, 5, 20},
		{1, 3, 33.33},
		{2, 3, 66.67},
		{3, 3, 100},
		{1, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Percentage(tt.step, tt.total))
	}
}

func TestValidateParams(t *testing.T) {
	params := map[string]any{"a": 1, "b": nil}
	assert.True(t, ValidateParams(params, []string{"a", "b"}))
	assert.True(t, ValidateParams(params, nil))
	assert.False(t, ValidateParams(params, []string{"a", "c"}))
}

func TestFormatResult(t *testing.T) {
	res := FormatResult(map[string]any{"rows": 3}, fixedNow())
	assert.Equal(t, "1.0", res.Version)
	assert.Equal(t, "2024-01-01T09:00:00Z", res.Timestamp)
	assert.Equal(t, map[string]any{"rows": 3}, res.Data)
}

func TestSample_Run(t *testing.T) {
	var out bytes.Buffer
	s := &Sample{Steps: 5, Interval: time.Millisecond, Now: fixedNow, Out: &out}

	require.NoError(t, s.Run(context.Background(), `{"report_id": 7}`))
	raw := out.String()

	var (
		progress []float64
		final    map[string]any
	)
	scanner := bufio.NewScanner(strings.NewReader(raw))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "{") {
			continue
		}
		var doc map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &doc))
		if doc["type"] == "progress" {
			progress = append(progress, doc["percentage"].(float64))
			continue
		}
		final = doc
	}

	assert.Equal(t, []float64{20, 40, 60, 80, 100}, progress)
	require.NotNil(t, final)
	assert.Equal(t, "success", final["status"])
	assert.Equal(t, map[string]any{"report_id": float64(7)}, final["processed_params"])
	assert.Contains(t, raw, "Starting job at")
	assert.Contains(t, raw, "Completed step 5/5")
}

func TestSample_RunEnvelope(t *testing.T) {
	var out bytes.Buffer
	s := &Sample{Steps: 1, Interval: time.Millisecond, Now: fixedNow, Out: &out, Envelope: true}

	require.NoError(t, s.Run(context.Background(), `{"a":1}`))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	var final Result
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &final))
	assert.Equal(t, ResultVersion, final.Version)
	assert.Equal(t, "2024-01-01T09:00:00Z", final.Timestamp)
	assert.Equal(t, "success", final.Data["status"])
	assert.Equal(t, map[string]any{"a": float64(1)}, final.Data["processed_params"])
}

func TestSample_RunInvalidParams(t *testing.T) {
	var out bytes.Buffer
	s := &Sample{Steps: 1, Interval: time.Millisecond, Now: fixedNow, Out: &out}

	err := s.Run(context.Background(), `{not json`)
	require.Error(t, err)
	assert.Empty(t, out.String())

	var stderr bytes.Buffer
	require.NoError(t, WriteError(&stderr, err, fixedNow()))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(stderr.Bytes(), &doc))
	assert.Equal(t, "error", doc["status"])
	assert.Equal(t, "2024-01-01T09:00:00Z", doc["timestamp"])
	assert.Contains(t, doc["error"], "invalid params")
}

func TestSample_RunMissingRequired(t *testing.T) {
	var out bytes.Buffer
	s := &Sample{Steps: 1, Interval: time.Millisecond, Now: fixedNow, Out: &out, Required: []string{"report_id"}}

	err := s.Run(context.Background(), `{"name":"x"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required params")
	assert.Empty(t, out.String())
}
