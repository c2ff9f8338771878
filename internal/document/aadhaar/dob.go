package aadhaar

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	labeledDOBRe = regexp.MustCompile(`(?i)(?:dob|date of birth)\s*[:.\-]?\s*(\d{2})[/-](\d{2})[/-](\d{4})`)
	bareDateRe   = regexp.MustCompile(`\b(\d{2})[/-](\d{2})[/-](\d{4})\b`)
	yobRe        = regexp.MustCompile(`(?i)(?:year of birth|yob)\s*[:.\-]?\s*((?:19|20)\d{2})`)
)

// ExtractDOB locates a date of birth in extracted document text.
// Full DD/MM/YYYY dates are normalized to ISO YYYY-MM-DD; a bare
// year-of-birth match yields just the four-digit year.
func ExtractDOB(text string) (string, bool) {
	for _, re := range []*regexp.Regexp{labeledDOBRe, bareDateRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			if iso, ok := toISO(m[1], m[2], m[3]); ok {
				return iso, true
			}
		}
	}
	if m := yobRe.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}

func toISO(dd, mm, yyyy string) (string, bool) {
	d, _ := strconv.Atoi(dd)
	m, _ := strconv.Atoi(mm)
	y, _ := strconv.Atoi(yyyy)
	if d < 1 || d > 31 || m < 1 || m > 12 || y < 1900 || y > 2100 {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d), true
}
