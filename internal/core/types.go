// AngelaMos | 2026
// types.go

package core

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is an ordered list of strings stored as a JSONB column.
// Order and duplicates are preserved exactly as written.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}

	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("marshal string list: %w", err)
	}

	return string(data), nil
}

func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = StringList{}
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("scan string list: unsupported type %T", src)
	}

	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("unmarshal string list: %w", err)
	}

	*l = items
	return nil
}

// Contains reports whether name is a member, by exact string match.
func (l StringList) Contains(name string) bool {
	for _, item := range l {
		if item == name {
			return true
		}
	}
	return false
}

// IntersectsWith reports whether the two lists share at least one member.
// Either list being empty yields false.
func (l StringList) IntersectsWith(other StringList) bool {
	if len(l) == 0 || len(other) == 0 {
		return false
	}

	set := make(map[string]struct{}, len(l))
	for _, item := range l {
		set[item] = struct{}{}
	}

	for _, item := range other {
		if _, ok := set[item]; ok {
			return true
		}
	}

	return false
}
