package dto

import "reportdesk/internal/model"

type CreateReportRequest struct {
	Name       string         `json:"name" validate:"required"`
	CreatedBy  string         `json:"created_by" validate:"required"`
	Meta       map[string]any `json:"meta"`
	Template   string         `json:"template"`
	Recipients []string       `json:"recipients" validate:"omitempty,dive,required"`
}

func (r *CreateReportRequest) ToModel() model.NewReport {
	return model.NewReport{
		Name:       r.Name,
		CreatedBy:  r.CreatedBy,
		Meta:       r.Meta,
		Template:   r.Template,
		Recipients: r.Recipients,
	}
}
