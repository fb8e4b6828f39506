// File: internal/api/due_date.go
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DateOnlyLayout 只有日期的到期日格式，以 UTC 午夜解讀
const DateOnlyLayout = "2006-01-02"

// DueDate 接受 RFC3339 或 YYYY-MM-DD 的到期日
type DueDate struct {
	time.Time
}

func (d *DueDate) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	for _, layout := range []string{time.RFC3339Nano, DateOnlyLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date %q: want RFC3339 or %s", s, DateOnlyLayout)
}

// TimePtr nil 時回傳 nil
func (d *DueDate) TimePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
