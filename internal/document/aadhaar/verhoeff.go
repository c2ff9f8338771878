package aadhaar

// Verhoeff check-digit scheme over the dihedral group D5.
// Detects all single-digit substitutions and adjacent transpositions,
// which is exactly the error class OCR introduces on printed ID numbers.

var verhoeffD = [10][10]int{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
	{1, 2, 3, 4, 0, 6, 7, 8, 9, 5},
	{2, 3, 4, 0, 1, 7, 8, 9, 5, 6},
	{3, 4, 0, 1, 2, 8, 9, 5, 6, 7},
	{4, 0, 1, 2, 3, 9, 5, 6, 7, 8},
	{5, 9, 8, 7, 6, 0, 4, 3, 2, 1},
	{6, 5, 9, 8, 7, 1, 0, 4, 3, 2},
	{7, 6, 5, 9, 8, 2, 1, 0, 4, 3},
	{8, 7, 6, 5, 9, 3, 2, 1, 0, 4},
	{9, 8, 7, 6, 5, 4, 3, 2, 1, 0},
}

var verhoeffP = [8][10]int{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
	{1, 5, 7, 6, 2, 8, 3, 0, 9, 4},
	{5, 8, 0, 3, 7, 9, 6, 1, 4, 2},
	{8, 9, 1, 6, 0, 4, 3, 5, 2, 7},
	{9, 4, 5, 3, 1, 2, 6, 8, 7, 0},
	{4, 2, 8, 6, 5, 7, 3, 9, 0, 1},
	{2, 7, 9, 3, 8, 0, 6, 4, 1, 5},
	{7, 0, 4, 6, 9, 1, 3, 2, 5, 8},
}

var verhoeffInv = [10]int{0, 4, 3, 2, 1, 5, 6, 7, 8, 9}

// Validate reports whether number is a well-formed Verhoeff number:
// digits only, with the trailing check digit reducing the checksum to zero.
func Validate(number string) bool {
	if number == "" {
		return false
	}
	c := 0
	for i := 0; i < len(number); i++ {
		ch := number[len(number)-1-i]
		if ch < '0' || ch > '9' {
			return false
		}
		c = verhoeffD[c][verhoeffP[i%8][ch-'0']]
	}
	return c == 0
}

// CheckDigit computes the Verhoeff check digit for a digits-only payload.
func CheckDigit(payload string) (byte, bool) {
	c := 0
	for i := 0; i < len(payload); i++ {
		ch := payload[len(payload)-1-i]
		if ch < '0' || ch > '9' {
			return 0, false
		}
		// Positions shift by one to leave room for the check digit.
		c = verhoeffD[c][verhoeffP[(i+1)%8][ch-'0']]
	}
	return byte('0' + verhoeffInv[c]), true
}
