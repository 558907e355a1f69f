package models

import (
	"strings"
	"time"
)

// WireDateLayout is the dd-MM-yyyy format the vault API uses for all dates.
const WireDateLayout = "02-01-2006"

const isoDateLayout = "2006-01-02"

func FormatWireDate(t time.Time) string {
	return t.Format(WireDateLayout)
}

// ParseDate accepts dd-MM-yyyy or yyyy-MM-dd.
func ParseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{WireDateLayout, isoDateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, newValidationError(field, "expected a date as dd-mm-yyyy or yyyy-mm-dd")
}
