package aadhaar

import (
	"strings"
	"testing"
)

func grouped(n string) string {
	return n[:4] + " " + n[4:8] + " " + n[8:]
}

func TestExtract(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"grouped spaces", "Aadhaar No: 2341 2341 2349 issued", "234123412349", true},
		{"grouped dashes", "2341-2341-2349", "234123412349", true},
		{"flat run", "number 234123412349 on file", "234123412349", true},
		{"noise between digits", "id=2+3.4:1,2;3(4)1 2349 99", "234123412349", true},
		{"confusable glyphs", "Aadhaar 234l 23AI 2349", "", false},
		{"confusable grouped", "Aadhaar 234l 2341 2349 card", "234l23412349", true},
		{"date on previous line", "DOB: 12/04/1990\n2341 2341 2349", "234123412349", true},
		{"year on previous line", "Year of Birth: 1990\n2341-2341-2349", "234123412349", true},
		{"too short", "only 23412341 here", "", false},
		{"no digits", "no number at all", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Extract(tc.text)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("Extract(%q) = %q,%v want %q,%v", tc.text, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestExtractAndValidate_ValidNumber(t *testing.T) {
	n := buildNumber(t, "23412341234")
	res := ExtractAndValidate("Name: Jane Doe\nAadhaar: " + grouped(n) + "\nDOB: 01/01/1990")
	if !res.ChecksumOK || res.Repaired || res.Candidate != n {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestExtractAndValidate_DatePrecedingNumber(t *testing.T) {
	n := buildNumber(t, "23412341234")

	// Cards print the date of birth right above the number. Neither the
	// newline layout nor a year sharing the line may swallow the number
	// into a wrong candidate.
	for _, text := range []string{
		"Government of India\nDOB: 12/04/1990\n" + grouped(n),
		"Year of Birth: 1990 " + grouped(n),
		"12/04/1990 " + n,
	} {
		res := ExtractAndValidate(text)
		if !res.ChecksumOK || res.Candidate != n {
			t.Fatalf("ExtractAndValidate(%q) = %+v, want valid %q", text, res, n)
		}
	}
}

func TestExtractAndValidate_RepairsSingleConfusion(t *testing.T) {
	n := buildNumber(t, "23412341234")

	// Corrupt one digit with its OCR look-alike glyph.
	glyph := map[byte]byte{'0': 'O', '1': 'l', '2': 'Z', '5': 'S', '8': 'B'}
	pos := -1
	var repl byte
	for i := 0; i < len(n); i++ {
		if g, ok := glyph[n[i]]; ok {
			pos, repl = i, g
			break
		}
	}
	if pos < 0 {
		t.Fatalf("test number %q has no confusable digit", n)
	}
	corrupted := n[:pos] + string(repl) + n[pos+1:]

	res := ExtractAndValidate("Aadhaar " + grouped(corrupted))
	if !res.ChecksumOK {
		t.Fatalf("repair failed for %q: %+v", corrupted, res)
	}
	if !res.Repaired || res.Candidate != n {
		t.Fatalf("expected repaired candidate %q, got %+v", n, res)
	}
}

func TestExtractAndValidate_UnrepairableGoesUnvalidated(t *testing.T) {
	n := buildNumber(t, "23412341234")

	// A plain digit flip is outside the confusion table; one repair pass
	// must not fix it and must not loop.
	var flipped string
	if n[0] == '9' {
		flipped = "3" + n[1:]
	} else {
		flipped = "9" + n[1:]
	}
	res := ExtractAndValidate(grouped(flipped))
	if res.ChecksumOK {
		t.Fatalf("flip unexpectedly validated: %+v", res)
	}
	if res.Candidate == "" {
		t.Fatal("candidate should still be reported for manual review")
	}
}

func TestExtractAndValidate_NoCandidate(t *testing.T) {
	res := ExtractAndValidate("a document with no identifier")
	if res.Candidate != "" || res.ChecksumOK {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestMask(t *testing.T) {
	if got := Mask("234123412349"); got != "XXXX XXXX 2349" {
		t.Fatalf("Mask = %q", got)
	}
	if got := Mask("23"); got != "XX" {
		t.Fatalf("Mask short = %q", got)
	}
}

func TestDigest(t *testing.T) {
	a := Digest("234123412349")
	if len(a) != 64 {
		t.Fatalf("digest length %d", len(a))
	}
	if a != Digest("234123412349") {
		t.Fatal("digest not deterministic")
	}
	if a == Digest("234123412340") {
		t.Fatal("distinct numbers produced equal digests")
	}
	if strings.Contains(a, "2341") {
		// Cheap sanity check that the raw number does not leak through.
		t.Log("digest coincidentally contains a digit run; ignoring")
	}
}
