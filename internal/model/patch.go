package model

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrInvalidPatch is returned when a partial update names a field outside
// the allow-list or carries a value of the wrong shape.
var ErrInvalidPatch = errors.New("invalid patch")

// ReportPatchFromMap converts a decoded JSON object into a ReportPatch.
// Only name, created_by, meta, template and recipients are accepted.
func ReportPatchFromMap(fields map[string]any) (ReportPatch, error) {
	var (
		p   ReportPatch
		err error
	)
	for key, value := range fields {
		switch key {
		case "name":
			p.Name, err = requiredString(key, value)
		case "created_by":
			p.CreatedBy, err = requiredString(key, value)
		case "template":
			p.Template, err = optionalString(key, value)
		case "meta":
			p.Meta, err = metaValue(key, value)
		case "recipients":
			p.Recipients, err = stringsValue(key, value)
		default:
			err = fmt.Errorf("%w: unknown field %q", ErrInvalidPatch, key)
		}
		if err != nil {
			return ReportPatch{}, err
		}
	}
	return p, nil
}

// TaskPatchFromMap converts a decoded JSON object into a TaskPatch.
// Only name, type, report_id, schedule, is_active and meta are accepted.
func TaskPatchFromMap(fields map[string]any) (TaskPatch, error) {
	var (
		p   TaskPatch
		err error
	)
	for key, value := range fields {
		switch key {
		case "name":
			p.Name, err = requiredString(key, value)
		case "type":
			p.Type, err = requiredString(key, value)
		case "report_id":
			p.ReportID, err = nullableID(key, value)
		case "schedule":
			p.Schedule, err = nullableString(key, value)
		case "is_active":
			p.IsActive, err = flagValue(key, value)
		case "meta":
			p.Meta, err = metaValue(key, value)
		default:
			err = fmt.Errorf("%w: unknown field %q", ErrInvalidPatch, key)
		}
		if err != nil {
			return TaskPatch{}, err
		}
	}
	return p, nil
}

func invalid(key, want string) error {
	return fmt.Errorf("%w: field %q must be %s", ErrInvalidPatch, key, want)
}

func requiredString(key string, value any) (*string, error) {
	s, ok := value.(string)
	if !ok || s == "" {
		return nil, invalid(key, "a non-empty string")
	}
	return &s, nil
}

func optionalString(key string, value any) (*string, error) {
	if value == nil {
		s := ""
		return &s, nil
	}
	s, ok := value.(string)
	if !ok {
		return nil, invalid(key, "a string")
	}
	return &s, nil
}

func nullableString(key string, value any) (*sql.NullString, error) {
	if value == nil {
		return &sql.NullString{}, nil
	}
	s, ok := value.(string)
	if !ok {
		return nil, invalid(key, "a string or null")
	}
	return &sql.NullString{String: s, Valid: true}, nil
}

func metaValue(key string, value any) (*map[string]any, error) {
	if value == nil {
		m := map[string]any{}
		return &m, nil
	}
	m, ok := value.(map[string]any)
	if !ok {
		return nil, invalid(key, "an object")
	}
	return &m, nil
}

func stringsValue(key string, value any) (*[]string, error) {
	out := []string{}
	switch v := value.(type) {
	case nil:
	case []string:
		out = append(out, v...)
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, invalid(key, "an array of strings")
			}
			out = append(out, s)
		}
	default:
		return nil, invalid(key, "an array of strings")
	}
	return &out, nil
}

func nullableID(key string, value any) (*sql.NullInt64, error) {
	if value == nil {
		return &sql.NullInt64{}, nil
	}
	id, ok := toInt64(value)
	if !ok || id <= 0 {
		return nil, invalid(key, "a positive integer or null")
	}
	return &sql.NullInt64{Int64: id, Valid: true}, nil
}

func flagValue(key string, value any) (*bool, error) {
	if b, ok := value.(bool); ok {
		return &b, nil
	}
	n, ok := toInt64(value)
	if !ok || (n != 0 && n != 1) {
		return nil, invalid(key, "a boolean, 0 or 1")
	}
	b := n == 1
	return &b, nil
}

func toInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	default:
		return 0, false
	}
}
