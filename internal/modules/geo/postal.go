// README: Coarse postal-code proximity scoring for carpool matching.
package geo

import "strings"

// PostalProximity scores how close two postal codes are on a coarse scale:
// 100 for an identical full code, 75 for the same outward (district) code,
// 40 for the same broad area letters, 10 otherwise. Empty codes score 10.
func PostalProximity(a, b string) int {
	na := normalizePostal(a)
	nb := normalizePostal(b)
	if na == "" || nb == "" {
		return 10
	}
	if na == nb {
		return 100
	}
	if outwardCode(na) == outwardCode(nb) {
		return 75
	}
	if areaLetters(na) == areaLetters(nb) {
		return 40
	}
	return 10
}

func normalizePostal(code string) string {
	return strings.ToUpper(strings.Join(strings.Fields(code), ""))
}

// outwardCode returns the district part of a normalized code. UK codes end in
// a three-character inward part (digit + two letters); shorter codes are
// returned whole.
func outwardCode(norm string) string {
	if len(norm) <= 3 {
		return norm
	}
	return norm[:len(norm)-3]
}

// areaLetters returns the leading letters of a normalized code (e.g. "LS"
// from "LS1 4AP").
func areaLetters(norm string) string {
	for i := 0; i < len(norm); i++ {
		if norm[i] >= '0' && norm[i] <= '9' {
			return norm[:i]
		}
	}
	return norm
}
