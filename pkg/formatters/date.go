package formatters

import (
	"strconv"
	"time"
)

// FormatDate renders t in UTC as "January 2nd, 2006".
func FormatDate(t time.Time) string {
	t = t.UTC()
	return t.Format("January ") + ordinal(t.Day()) + t.Format(", 2006")
}

// FormatDateTime renders t in UTC as "January 2nd, 2006 3:04 PM UTC".
func FormatDateTime(t time.Time) string {
	t = t.UTC()
	return FormatDate(t) + t.Format(" 3:04 PM") + " UTC"
}

// FormatDatePtr is FormatDate for optional values; nil renders as "".
func FormatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatDate(*t)
}

// FormatDateTimePtr is FormatDateTime for optional values; nil renders as "".
func FormatDateTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatDateTime(*t)
}

func ordinal(day int) string {
	suffix := "th"
	switch day % 100 {
	case 11, 12, 13:
	default:
		switch day % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(day) + suffix
}
