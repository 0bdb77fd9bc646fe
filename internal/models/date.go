package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Dan9191/gastos-service/internal/utils"
)

// Date is a calendar day without a time component. It is rendered as
// yyyy-mm-dd and accepts dd/mm/yyyy or yyyy-mm-dd on input.
type Date struct {
	time.Time
}

// NewDate normalizes t to a UTC midnight day
func NewDate(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	return Date{Time: utils.DateOnly(t)}
}

// String formats the day as yyyy-mm-dd
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return utils.FormatDate(d.Time)
}

// MarshalJSON renders the day or null when unset
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON parses either supported day format
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	t, err := utils.ParseAnyDate(s)
	if err != nil {
		return err
	}
	*d = Date{Time: t}
	return nil
}

// Scan implements sql.Scanner for DATE columns
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
	case time.Time:
		*d = NewDate(v)
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
	return nil
}

func (d *Date) scanString(s string) error {
	if len(s) > 10 {
		s = s[:10]
	}
	t, err := utils.ParseStorageDate(s)
	if err != nil {
		return err
	}
	*d = Date{Time: t}
	return nil
}

// Value implements driver.Valuer
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}
