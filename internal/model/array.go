package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// FloatArray is a numeric profile stored as a JSONB column.
// Scanning enforces the array shape at the persistence boundary, so the
// rest of the code never sees stringly-typed profiles.
type FloatArray []float64

// Value implements driver.Valuer
func (a FloatArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner
func (a *FloatArray) Scan(src interface{}) error {
	return scanJSON(src, a)
}

// GormDataType tells gorm to map the column to jsonb
func (FloatArray) GormDataType() string {
	return "jsonb"
}

// FloatMatrix is a year-indexed set of profiles ([years][intervals])
// stored as a JSONB column.
type FloatMatrix [][]float64

// Value implements driver.Valuer
func (m FloatMatrix) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner
func (m *FloatMatrix) Scan(src interface{}) error {
	return scanJSON(src, m)
}

// GormDataType tells gorm to map the column to jsonb
func (FloatMatrix) GormDataType() string {
	return "jsonb"
}

func scanJSON(src, dst interface{}) error {
	if src == nil {
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
}
