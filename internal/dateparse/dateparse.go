// Package dateparse resolves natural-language date phrases ("yesterday",
// "last tuesday", "3 days ago", "jan 15", "01/15/2024") against a reference
// instant. Resolution is ordered, greedy, first-match-wins substring matching:
// it trades recall for determinism and needs no external dependency, which is
// acceptable because a wrong guess is always user-correctable in the edit UI.
package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var daysOfWeek = [7]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

var shortDays = [7]string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

var monthNames = [12]string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

var shortMonthNames = [12]string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

var (
	daysAgoRe     = regexp.MustCompile(`(\d+)\s*days?\s*ago`)
	daysFromNowRe = regexp.MustCompile(`(?:in\s*)?(\d+)\s*days?(?:\s*from\s*now)?`)

	// Checked most-specific-first so MM/DD/YYYY is not consumed as MM/DD/YY.
	slashDateRes = []*regexp.Regexp{
		regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`),
		regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{2})`),
		regexp.MustCompile(`(\d{1,2})/(\d{1,2})`),
	}

	monthDayRes [12]*regexp.Regexp
)

func init() {
	for i := range monthNames {
		monthDayRes[i] = regexp.MustCompile(`(?:` + monthNames[i] + `|` + shortMonthNames[i] + `)\s+(\d{1,2})`)
	}
}

// Resolve maps free text to one concrete calendar date relative to ref. It
// never fails: when nothing recognizable is found it returns the reference
// date. The result time is fixed to local noon to sidestep timezone and DST
// edge effects.
func Resolve(text string, ref time.Time) time.Time {
	normalized := strings.ToLower(strings.TrimSpace(text))
	today := atNoon(ref)

	if strings.Contains(normalized, "today") {
		return today
	}
	if strings.Contains(normalized, "yesterday") {
		return today.AddDate(0, 0, -1)
	}
	if strings.Contains(normalized, "tomorrow") {
		return today.AddDate(0, 0, 1)
	}

	if d, ok := resolveWeekday(normalized, today); ok {
		return d
	}

	if m := daysAgoRe.FindStringSubmatch(normalized); m != nil {
		n, _ := strconv.Atoi(m[1])
		return today.AddDate(0, 0, -n)
	}
	if m := daysFromNowRe.FindStringSubmatch(normalized); m != nil {
		n, _ := strconv.Atoi(m[1])
		return today.AddDate(0, 0, n)
	}

	for i, re := range slashDateRes {
		m := re.FindStringSubmatch(normalized)
		if m == nil {
			continue
		}
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year := today.Year()
		if i < 2 {
			year, _ = strconv.Atoi(m[3])
			if year < 100 {
				// Two-digit years: 00-49 are 2000s, 50-99 are 1900s.
				if year < 50 {
					year += 2000
				} else {
					year += 1900
				}
			}
		}
		return time.Date(year, time.Month(month), day, 12, 0, 0, 0, ref.Location())
	}

	for i, re := range monthDayRes {
		m := re.FindStringSubmatch(normalized)
		if m == nil {
			continue
		}
		day, _ := strconv.Atoi(m[1])
		target := time.Date(today.Year(), time.Month(i+1), day, 12, 0, 0, 0, ref.Location())
		// A month/day without a year refers to the past: roll back one year
		// when the resolved date would land after the reference date.
		if target.After(today) {
			target = target.AddDate(-1, 0, 0)
		}
		return target
	}

	return today
}

// resolveWeekday handles weekday names with optional "last "/"next "
// modifiers. Without a modifier the result is the most recent occurrence at
// or before the reference date; "last" shifts the signed day difference back
// a week and "next" shifts it forward a week.
func resolveWeekday(normalized string, today time.Time) (time.Time, bool) {
	isLast := strings.Contains(normalized, "last ")
	isNext := !isLast && strings.Contains(normalized, "next ")

	target := -1
	for i := range daysOfWeek {
		if strings.Contains(normalized, daysOfWeek[i]) || strings.Contains(normalized, shortDays[i]) {
			target = i
			break
		}
	}
	if target < 0 {
		return time.Time{}, false
	}

	diff := target - int(today.Weekday())
	var offset int
	switch {
	case isLast:
		offset = diff - 7
	case isNext:
		offset = diff + 7
	case diff == 0:
		offset = 0
	case diff < 0:
		offset = diff
	default:
		// That weekday has not occurred yet this week, so it was last week.
		offset = diff - 7
	}
	return today.AddDate(0, 0, offset), true
}

// FormatForDisplay renders a resolved date for human display: "Today",
// "Yesterday", or a short numeric date.
func FormatForDisplay(date, now time.Time) string {
	if sameDay(date, now) {
		return "Today"
	}
	if sameDay(date, now.AddDate(0, 0, -1)) {
		return "Yesterday"
	}
	return date.Format("1/2/2006")
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func atNoon(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, t.Location())
}
