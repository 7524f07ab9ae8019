package util

import (
	"time"
)

func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// WholeDaysUntil counts full 24h periods between from and to,
// truncating partial days. Negative when to precedes from.
func WholeDaysUntil(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
