package utils

import (
	"testing"
	"time"

	"reportdesk/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestGoSafe_RecoversPanic(t *testing.T) {
	done := make(chan struct{})
	GoSafe(logger.NewNop(), func() {
		defer close(done)
		panic("boom")
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("goroutine did not run")
	}
}

func TestToPointer(t *testing.T) {
	p := ToPointer("x")
	assert.Equal(t, "x", *p)
}

func TestNextRun(t *testing.T) {
	from := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC) // Monday

	tests := []struct {
		name    string
		expr    string
		want    time.Time
		wantErr bool
	}{
		{name: "every monday at nine", expr: "0 9 * * 1", want: time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)},
		{name: "hourly descriptor", expr: "@hourly", want: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{name: "every fifteen minutes", expr: "*/15 * * * *", want: time.Date(2024, 1, 1, 9, 45, 0, 0, time.UTC)},
		{name: "seconds field rejected", expr: "0 0 9 * * 1", wantErr: true},
		{name: "garbage", expr: "not a schedule", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextRun(tt.expr, from)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
