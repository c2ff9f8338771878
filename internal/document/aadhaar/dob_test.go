package aadhaar

import "testing"

func TestExtractDOB(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"labeled slash", "Name: Jane\nDOB: 15/08/1995\nFemale", "1995-08-15", true},
		{"labeled dash", "Date of Birth - 01-01-2000", "2000-01-01", true},
		{"bare date", "issued 12/03/1990 to holder", "1990-03-12", true},
		{"year of birth", "Year of Birth : 1988", "1988", true},
		{"yob compact", "YoB:1975", "1975", true},
		{"invalid month", "DOB: 10/13/1990", "", false},
		{"nothing", "no dates here", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractDOB(tc.text)
			if got != tc.want || ok != tc.ok {
				t.Fatalf("ExtractDOB(%q) = %q,%v want %q,%v", tc.text, got, ok, tc.want, tc.ok)
			}
		})
	}
}
