package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// StringList stores a []string column as JSON text so it works the same
// on sqlite and postgres.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return errors.New("type assertion to []byte failed")
}
