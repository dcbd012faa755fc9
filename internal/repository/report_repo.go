package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"reportdesk/internal/model"
	"reportdesk/pkg/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type reportRecord struct {
	ID         int64          `gorm:"column:id;primaryKey;autoIncrement"`
	Name       string         `gorm:"column:name;not null"`
	CreatedBy  string         `gorm:"column:created_by;not null"`
	Meta       datatypes.JSON `gorm:"column:meta"`
	Template   sql.NullString `gorm:"column:template"`
	Recipients datatypes.JSON `gorm:"column:recipients"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`
}

func (reportRecord) TableName() string {
	return "reports"
}

func (rec *reportRecord) toModel() (*model.Report, error) {
	meta, err := decodeMeta(rec.Meta)
	if err != nil {
		return nil, err
	}
	recipients, err := decodeRecipients(rec.Recipients)
	if err != nil {
		return nil, err
	}
	return &model.Report{
		ID:         rec.ID,
		Name:       rec.Name,
		CreatedBy:  rec.CreatedBy,
		Meta:       meta,
		Template:   rec.Template.String,
		Recipients: recipients,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}, nil
}

type ReportRepository interface {
	Create(ctx context.Context, report model.NewReport, opts ...utils.DBOption) (int64, error)
	FindByID(ctx context.Context, id int64, opts ...utils.DBOption) (*model.Report, error)
	Update(ctx context.Context, id int64, patch model.ReportPatch, opts ...utils.DBOption) (bool, error)
	Delete(ctx context.Context, id int64, opts ...utils.DBOption) (bool, error)
	List(ctx context.Context, opts ...utils.DBOption) ([]model.Report, error)
}

type reportRepository struct {
	db  *gorm.DB
	now utils.Clock
}

func NewReportRepository(db *gorm.DB, now utils.Clock) ReportRepository {
	return &reportRepository{db: db, now: now}
}

func (r *reportRepository) Create(ctx context.Context, report model.NewReport, opts ...utils.DBOption) (int64, error) {
	meta, err := encodeMeta(report.Meta)
	if err != nil {
		return 0, err
	}
	recipients, err := encodeRecipients(report.Recipients)
	if err != nil {
		return 0, err
	}

	now := r.now()
	rec := reportRecord{
		Name:       report.Name,
		CreatedBy:  report.CreatedBy,
		Meta:       meta,
		Template:   sql.NullString{String: report.Template, Valid: true},
		Recipients: recipients,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).Create(&rec).Error; err != nil {
		return 0, writeErr("create report", err)
	}
	return rec.ID, nil
}

// FindByID returns nil without an error when the report does not exist.
func (r *reportRepository) FindByID(ctx context.Context, id int64, opts ...utils.DBOption) (*model.Report, error) {
	var rec reportRecord
	err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).Where("id = ?", id).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, readErr("get report", err)
	}
	return rec.toModel()
}

// Update applies the non-nil patch fields and refreshes updated_at in the
// same statement. It reports whether the row exists.
func (r *reportRepository) Update(ctx context.Context, id int64, patch model.ReportPatch, opts ...utils.DBOption) (bool, error) {
	values := map[string]interface{}{}
	if patch.Name != nil {
		values["name"] = *patch.Name
	}
	if patch.CreatedBy != nil {
		values["created_by"] = *patch.CreatedBy
	}
	if patch.Template != nil {
		values["template"] = *patch.Template
	}
	if patch.Meta != nil {
		meta, err := encodeMeta(*patch.Meta)
		if err != nil {
			return false, err
		}
		values["meta"] = meta
	}
	if patch.Recipients != nil {
		recipients, err := encodeRecipients(*patch.Recipients)
		if err != nil {
			return false, err
		}
		values["recipients"] = recipients
	}
	values["updated_at"] = r.now()

	res := utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Model(&reportRecord{}).
		Where("id = ?", id).
		Updates(values)
	if res.Error != nil {
		return false, writeErr("update report", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *reportRepository) Delete(ctx context.Context, id int64, opts ...utils.DBOption) (bool, error) {
	res := utils.ApplyOptions(r.db.WithContext(ctx), opts...).Where("id = ?", id).Delete(&reportRecord{})
	if res.Error != nil {
		return false, writeErr("delete report", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// List returns every report, newest first; equal created_at values fall
// back to the highest id first.
func (r *reportRepository) List(ctx context.Context, opts ...utils.DBOption) ([]model.Report, error) {
	var recs []reportRecord
	err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).
		Order("created_at DESC").
		Order("id DESC").
		Find(&recs).Error
	if err != nil {
		return nil, readErr("list reports", err)
	}

	reports := make([]model.Report, 0, len(recs))
	for i := range recs {
		report, err := recs[i].toModel()
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}
	return reports, nil
}
