package models

import "time"

// dayKeyLayout matches the historical snapshot naming scheme
// (year, day of month, month abbreviation).
const dayKeyLayout = "2006_02_Jan"

// DayKey returns the stable key identifying t's calendar day.
func DayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}

// DayKeyAgo returns the key for the calendar day `days` before today.
func DayKeyAgo(days int) string {
	return DayKey(time.Now().AddDate(0, 0, -days))
}

// ParseDayKey parses a day key back into the calendar day it names.
func ParseDayKey(key string) (time.Time, error) {
	return time.Parse(dayKeyLayout, key)
}
