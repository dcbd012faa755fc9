package repository

import (
	"encoding/json"
	"fmt"

	"reportdesk/pkg/sqlite"

	"gorm.io/datatypes"
)

// Structured fields live in TEXT columns as JSON. Encoding and decoding
// happens here only; nothing above the repository sees raw JSON.

func encodeMeta(m map[string]any) (datatypes.JSON, error) {
	if m == nil {
		m = map[string]any{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("%w: encode meta: %w", sqlite.ErrStorageWrite, err)
	}
	return datatypes.JSON(b), nil
}

func encodeRecipients(r []string) (datatypes.JSON, error) {
	if r == nil {
		r = []string{}
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("%w: encode recipients: %w", sqlite.ErrStorageWrite, err)
	}
	return datatypes.JSON(b), nil
}

// decodeMeta maps NULL, empty and "null" to an empty object.
func decodeMeta(raw datatypes.JSON) (map[string]any, error) {
	m := map[string]any{}
	if len(raw) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: decode meta: %w", sqlite.ErrStorageRead, err)
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

// decodeRecipients maps NULL, empty and "null" to an empty sequence.
func decodeRecipients(raw datatypes.JSON) ([]string, error) {
	r := []string{}
	if len(raw) == 0 {
		return r, nil
	}
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("%w: decode recipients: %w", sqlite.ErrStorageRead, err)
	}
	if r == nil {
		r = []string{}
	}
	return r, nil
}

func readErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", sqlite.ErrStorageRead, op, err)
}

func writeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", sqlite.ErrStorageWrite, op, err)
}
