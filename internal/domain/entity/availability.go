package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// Availability is the ordered list of weekdays a doctor can be booked on.
// It is persisted as JSON text. A nil Availability means the column held
// NULL (or a JSON null), which is different from an empty list.
type Availability []string

// Value returns json value, implement driver.Valuer interface
func (a Availability) Value() (driver.Value, error) {
	b, err := json.Marshal([]string(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan scan value into Availability, implements sql.Scanner interface
func (a *Availability) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal availability value:", value))
	}

	var days []string
	if err := json.Unmarshal(bytes, &days); err != nil {
		return err
	}
	*a = Availability(days)
	return nil
}
