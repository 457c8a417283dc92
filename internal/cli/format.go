// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
)

// currency is the display currency code; amounts are stored and computed in
// minor units regardless.
var currency = money.USD

// SetCurrency switches the display currency. Unknown codes keep the default.
func SetCurrency(code string) {
	if money.GetCurrency(code) != nil {
		currency = code
	}
}

// FormatMoney formats minor currency units for display, e.g. 123456 -> "$1,234.56".
func FormatMoney(cents int64) string {
	return money.New(cents, currency).Display()
}

// FormatMoneyDelta formats a signed change, always carrying the sign.
func FormatMoneyDelta(cents int64) string {
	if cents >= 0 {
		return "+" + FormatMoney(cents)
	}
	return "-" + FormatMoney(-cents)
}

// FormatDate formats a calendar day as "Mon Jan 02".
func FormatDate(t time.Time) string {
	return t.Format("Mon Jan 02")
}

// FormatDateLong formats a calendar day with the year.
func FormatDateLong(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// FormatRelative renders how long ago a balance was confirmed.
// e.g., 90 minutes ago -> "1h ago", 3 days ago -> "3d ago".
func FormatRelative(t *time.Time, now time.Time) string {
	if t == nil {
		return "never"
	}
	d := now.Sub(*t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 48*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}

// FormatOrdinal renders a day of month as "1st", "2nd", "23rd" and so on.
func FormatOrdinal(day int) string {
	suffix := "th"
	switch {
	case day%100 >= 11 && day%100 <= 13:
	case day%10 == 1:
		suffix = "st"
	case day%10 == 2:
		suffix = "nd"
	case day%10 == 3:
		suffix = "rd"
	}
	return strconv.Itoa(day) + suffix
}
