package model

import "time"

// Report is a named template, recipient list and metadata bundle.
type Report struct {
	ID         int64          `json:"id"`
	Name       string         `json:"name"`
	CreatedBy  string         `json:"created_by"`
	Meta       map[string]any `json:"meta"`
	Template   string         `json:"template"`
	Recipients []string       `json:"recipients"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// NewReport holds the fields of a report to insert. Meta and Recipients
// default to empty values when nil.
type NewReport struct {
	Name       string
	CreatedBy  string
	Meta       map[string]any
	Template   string
	Recipients []string
}

// Copy returns the insert payload for a duplicate of r.
func (r *Report) Copy() NewReport {
	return NewReport{
		Name:       r.Name + " (Copy)",
		CreatedBy:  r.CreatedBy,
		Meta:       r.Meta,
		Template:   r.Template,
		Recipients: r.Recipients,
	}
}

// ReportPatch is a partial update. Nil fields are left untouched.
type ReportPatch struct {
	Name       *string
	CreatedBy  *string
	Meta       *map[string]any
	Template   *string
	Recipients *[]string
}
