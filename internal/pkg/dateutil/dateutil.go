// Package dateutil carries the date and number formats used by the legacy
// ERP booking API: compact YYYYMMDD dates, HHmm tee times, comma-grouped
// fee strings and DDHHmm cancellation rules.
package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const ymdLayout = "20060102"

var koreanWeekdays = [...]string{"일", "월", "화", "수", "목", "금", "토"}

// FormatYmd formats a time as compact YYYYMMDD.
func FormatYmd(t time.Time) string {
	return t.Format(ymdLayout)
}

// ParseDateString parses YYYYMMDD, YYYY-MM-DD or YYYY.MM.DD date strings.
func ParseDateString(s string) (time.Time, error) {
	cleaned := strings.NewReplacer("-", "", ".", "").Replace(strings.TrimSpace(s))
	return time.Parse(ymdLayout, cleaned)
}

// FormatTime converts an HHmm tee time to HH:mm. Anything that is not four
// characters long is returned unchanged.
func FormatTime(s string) string {
	if len(s) != 4 {
		return s
	}
	return s[:2] + ":" + s[2:]
}

// KoreanWeekday returns the single-character Korean weekday for a date.
func KoreanWeekday(t time.Time) string {
	return koreanWeekdays[int(t.Weekday())]
}

// FormatFullDateTimeWithDay renders "YYYY.MM.DD (요일) HH:mm" from a date
// string (YYYYMMDD, YYYY-MM-DD or YYYY.MM.DD) and a time string (HHmm or
// HH:mm). Unparseable input falls back to "<date> <time>".
func FormatFullDateTimeWithDay(dateStr, timeStr string) string {
	if dateStr == "" || timeStr == "" {
		return ""
	}

	date, err := ParseDateString(dateStr)
	if err != nil {
		return dateStr + " " + timeStr
	}

	cleanedTime := strings.ReplaceAll(timeStr, ":", "")
	if len(cleanedTime) != 4 {
		return dateStr + " " + timeStr
	}

	return fmt.Sprintf("%04d.%02d.%02d (%s) %s:%s",
		date.Year(), int(date.Month()), date.Day(),
		KoreanWeekday(date),
		cleanedTime[:2], cleanedTime[2:])
}

// CancellationDeadline computes the formatted cancellation deadline from a
// booking date (YYYYMMDD) and a DDHHmm rule string, e.g. "031700" meaning
// 3 days before at 17:00. Returns "" when either input is malformed.
func CancellationDeadline(baseDateStr, rule string) string {
	baseDateStr = strings.TrimSpace(baseDateStr)
	rule = strings.TrimSpace(rule)

	if len(baseDateStr) != 8 || len(rule) != 6 {
		return ""
	}

	baseDate, err := ParseDateString(baseDateStr)
	if err != nil {
		return ""
	}

	daysBefore, err1 := strconv.Atoi(rule[:2])
	hour, err2 := strconv.Atoi(rule[2:4])
	minute, err3 := strconv.Atoi(rule[4:6])
	if err1 != nil || err2 != nil || err3 != nil || hour > 23 || minute > 59 {
		return ""
	}

	deadline := time.Date(baseDate.Year(), baseDate.Month(), baseDate.Day()-daysBefore,
		hour, minute, 0, 0, baseDate.Location())

	return FormatFullDateTimeWithDay(FormatYmd(deadline), fmt.Sprintf("%02d%02d", hour, minute))
}

// ToNumber parses a possibly comma-grouped numeric string ("120,000").
// Empty or unparseable input yields 0, matching the lenient fee fields the
// ERP API sends.
func ToNumber(s string) int64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		return 0
	}
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// MonthsRange returns the first day of count consecutive months starting at
// startDate's month.
func MonthsRange(startDate time.Time, count int) []time.Time {
	months := make([]time.Time, 0, count)
	for i := 0; i < count; i++ {
		months = append(months, time.Date(startDate.Year(), startDate.Month()+time.Month(i), 1,
			0, 0, 0, 0, startDate.Location()))
	}
	return months
}
