package aadhaar

import "testing"

// buildNumber appends the Verhoeff check digit to an 11-digit payload.
func buildNumber(t *testing.T, payload string) string {
	t.Helper()
	cd, ok := CheckDigit(payload)
	if !ok {
		t.Fatalf("CheckDigit rejected payload %q", payload)
	}
	return payload + string(cd)
}

func TestValidate_AcceptsGeneratedNumbers(t *testing.T) {
	for _, payload := range []string{
		"23412341234",
		"99999999999",
		"00000000000",
		"12345678901",
		"86098680891",
	} {
		n := buildNumber(t, payload)
		if len(n) != Length {
			t.Fatalf("bad length %d for %q", len(n), n)
		}
		if !Validate(n) {
			t.Fatalf("generated number %q did not validate", n)
		}
	}
}

func TestValidate_DetectsEverySingleDigitSubstitution(t *testing.T) {
	n := buildNumber(t, "23412341234")
	for pos := 0; pos < len(n); pos++ {
		for d := byte('0'); d <= '9'; d++ {
			if n[pos] == d {
				continue
			}
			mutated := n[:pos] + string(d) + n[pos+1:]
			if Validate(mutated) {
				t.Fatalf("substitution at pos %d (%c->%c) not detected: %q", pos, n[pos], d, mutated)
			}
		}
	}
}

func TestValidate_RejectsMalformedInput(t *testing.T) {
	for _, bad := range []string{"", "12345678901a", "1234 5678 9012", "O3412341234x"} {
		if Validate(bad) {
			t.Fatalf("Validate accepted %q", bad)
		}
	}
}

func TestCheckDigit_RejectsNonDigits(t *testing.T) {
	if _, ok := CheckDigit("1234567890O"); ok {
		t.Fatal("CheckDigit accepted non-digit payload")
	}
}
