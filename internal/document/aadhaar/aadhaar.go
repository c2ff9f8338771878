// Package aadhaar extracts and validates 12-digit Aadhaar-style national ID
// numbers from OCR'd or text-layer document text.
//
// Extraction tolerates the usual OCR digit confusions (O/0, I/1, S/5, B/8,
// Z/2); validation only ever accepts pure digits, and a single bounded repair
// pass maps confused characters back before giving up.
package aadhaar

import (
	"encoding/hex"
	"regexp"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Number length of an Aadhaar identifier.
const Length = 12

// Characters tesseract routinely confuses for digits on ID cards.
var ocrConfusions = map[rune]rune{
	'O': '0', 'o': '0',
	'I': '1', 'l': '1',
	'S': '5', 's': '5',
	'B': '8',
	'Z': '2', 'z': '2',
}

var (
	// Three 4-character groups, digits or confusable glyphs, separated by
	// optional space or a dash the way the number is printed on cards.
	// Newlines never join groups: a date or year on the line above must not
	// glom into the candidate.
	groupedRe = regexp.MustCompile(`[0-9OoIlSsBZz]{4}[ \t-]?[0-9OoIlSsBZz]{4}[ \t-]?[0-9OoIlSsBZz]{4}`)

	nonDigitRe = regexp.MustCompile(`[^0-9]`)
	stripRe    = regexp.MustCompile(`[ \t-]`)
)

func isCandChar(c byte) bool {
	return (c >= '0' && c <= '9') || strings.IndexByte("OoIlSsBZz", c) >= 0
}

// bounded rejects grouped matches that sit flush against further digits or
// glyphs, e.g. the tail of a longer digit run.
func bounded(text string, start, end int) bool {
	if start > 0 && isCandChar(text[start-1]) {
		return false
	}
	if end < len(text) && isCandChar(text[end]) {
		return false
	}
	return true
}

// candidates lists every plausible 12-character number in text, grouped
// matches first, then each 12-digit window of the flattened digit runs.
func candidates(text string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(c string) {
		if len(c) == Length && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}

	for _, loc := range groupedRe.FindAllStringIndex(text, -1) {
		if bounded(text, loc[0], loc[1]) {
			add(stripRe.ReplaceAllString(text[loc[0]:loc[1]], ""))
		}
	}

	flat := nonDigitRe.ReplaceAllString(text, "")
	for i := 0; i+Length <= len(flat); i++ {
		add(flat[i : i+Length])
	}
	return out
}

// Result is the outcome of extraction plus checksum validation.
type Result struct {
	// Candidate is the extracted number (repaired form when repair succeeded),
	// empty when no candidate was found. Never persist or log it raw.
	Candidate string
	// ChecksumOK reports whether the candidate passed Verhoeff validation.
	ChecksumOK bool
	// Repaired reports whether the OCR-confusion repair pass produced the
	// validated candidate.
	Repaired bool
}

// Extract locates a candidate number in text.
// It first looks for the printed 4-4-4 grouping (allowing OCR confusions),
// then falls back to any 12 consecutive digits after stripping non-digits.
func Extract(text string) (string, bool) {
	cands := candidates(text)
	if len(cands) == 0 {
		return "", false
	}
	return cands[0], true
}

// Repair applies the fixed OCR-confusion substitution table once.
func Repair(candidate string) string {
	return strings.Map(func(r rune) rune {
		if d, ok := ocrConfusions[r]; ok {
			return d
		}
		return r
	}, candidate)
}

// ExtractAndValidate runs extraction, Verhoeff validation and at most one
// repair pass per candidate. When several plausible candidates appear in the
// text (a date run next to the number, overlapping digit windows) the first
// one that validates wins. A checksum failure is a normal outcome, not an
// error.
func ExtractAndValidate(text string) Result {
	cands := candidates(text)
	if len(cands) == 0 {
		return Result{}
	}
	for _, c := range cands {
		if Validate(c) {
			return Result{Candidate: c, ChecksumOK: true}
		}
	}
	// Single repair attempt per candidate; no further retries.
	for _, c := range cands {
		if repaired := Repair(c); repaired != c && Validate(repaired) {
			return Result{Candidate: repaired, ChecksumOK: true, Repaired: true}
		}
	}
	return Result{Candidate: cands[0]}
}

// Mask renders a display-only form with just the last four digits visible.
func Mask(number string) string {
	if len(number) < 4 {
		return strings.Repeat("X", len(number))
	}
	return "XXXX XXXX " + number[len(number)-4:]
}

// Digest returns the hex SHA3-256 digest persisted in place of the number.
func Digest(number string) string {
	sum := sha3.Sum256([]byte(number))
	return hex.EncodeToString(sum[:])
}
