package model

import (
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &m))
	return m
}

func TestReportPatchFromMap(t *testing.T) {
	p, err := ReportPatchFromMap(decode(t, `{
		"name": "Weekly",
		"template": null,
		"meta": {"k": 1},
		"recipients": ["a@x.com", "b@x.com"]
	}`))
	require.NoError(t, err)

	require.NotNil(t, p.Name)
	assert.Equal(t, "Weekly", *p.Name)
	require.NotNil(t, p.Template)
	assert.Equal(t, "", *p.Template)
	require.NotNil(t, p.Meta)
	assert.Equal(t, map[string]any{"k": float64(1)}, *p.Meta)
	require.NotNil(t, p.Recipients)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, *p.Recipients)
	assert.Nil(t, p.CreatedBy)
}

func TestReportPatchFromMap_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown column", body: `{"id": 3}`},
		{name: "sql in key", body: `{"name = 'x' --": "y"}`},
		{name: "empty name", body: `{"name": ""}`},
		{name: "meta not object", body: `{"meta": [1]}`},
		{name: "recipients not strings", body: `{"recipients": [1, 2]}`},
		{name: "template not string", body: `{"template": 5}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReportPatchFromMap(decode(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalidPatch)
		})
	}
}

func TestTaskPatchFromMap(t *testing.T) {
	p, err := TaskPatchFromMap(decode(t, `{
		"name": "Updated Task",
		"is_active": 0,
		"report_id": null,
		"schedule": "*/5 * * * *"
	}`))
	require.NoError(t, err)

	require.NotNil(t, p.Name)
	assert.Equal(t, "Updated Task", *p.Name)
	require.NotNil(t, p.IsActive)
	assert.False(t, *p.IsActive)
	assert.Equal(t, &sql.NullInt64{}, p.ReportID)
	assert.Equal(t, &sql.NullString{String: "*/5 * * * *", Valid: true}, p.Schedule)
	assert.Nil(t, p.Meta)
	assert.Nil(t, p.Type)
}

func TestTaskPatchFromMap_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown column", body: `{"next_run_at": "2024-01-01"}`},
		{name: "fractional report id", body: `{"report_id": 1.5}`},
		{name: "negative report id", body: `{"report_id": -1}`},
		{name: "is_active out of range", body: `{"is_active": 2}`},
		{name: "schedule not string", body: `{"schedule": 5}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TaskPatchFromMap(decode(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalidPatch)
		})
	}
}

func TestReportCopy(t *testing.T) {
	r := Report{ID: 7, Name: "X", CreatedBy: "u", Template: "<h1/>", Recipients: []string{"a@x.com"}, Meta: map[string]any{"k": "v"}}
	c := r.Copy()
	assert.Equal(t, "X (Copy)", c.Name)
	assert.Equal(t, "u", c.CreatedBy)
	assert.Equal(t, r.Recipients, c.Recipients)
	assert.Equal(t, r.Meta, c.Meta)
	assert.Equal(t, r.Template, c.Template)
}
