package presentation

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	dateLayout     = "Jan 2, 2006"
	dateTimeLayout = "Jan 2, 2006, 03:04 PM"
)

// FormatDate renders a calendar date, e.g. "Jan 15, 2024".
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatDateTime renders a date with a 12-hour clock, e.g. "Jan 20, 2024, 10:30 AM".
func FormatDateTime(t time.Time) string {
	return t.Format(dateTimeLayout)
}

// FormatLastActive renders how long ago a user was last seen, in whole hours
// below a day and whole days above.
func FormatLastActive(now, t time.Time) string {
	hours := int(now.Sub(t) / time.Hour)
	switch {
	case hours < 1:
		return "Active now"
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	default:
		return fmt.Sprintf("%dd ago", hours/24)
	}
}

// FormatRelative renders t relative to now, e.g. "15 minutes ago".
func FormatRelative(now, t time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// FormatCount renders a counter with thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// FormatChange renders a signed stat delta, e.g. "+12" or "-2".
func FormatChange(n int) string {
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}

// StatusText replaces underscores with spaces: "under_review" -> "under review".
func StatusText(v string) string {
	return strings.ReplaceAll(v, "_", " ")
}

// Label renders an enum value as a title: "safety_officer" -> "Safety Officer".
func Label(v string) string {
	return cases.Title(language.English).String(StatusText(v))
}

// Initials returns the upper-cased first letter of each word of name.
func Initials(name string) string {
	var b strings.Builder
	for _, w := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(w)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
