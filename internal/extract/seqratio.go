package extract

// Ratio computes the Ratcliff/Obershelp similarity of two strings: twice the
// total number of matching characters (found by recursively locating the
// longest common substring) divided by the combined length. The result is in
// [0, 1]; identical strings score 1. Comparison is rune-based and
// case-sensitive; callers lowercase beforehand.
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 1.0
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0.0
	}
	matched := matchingChars(ra, rb)
	return 2.0 * float64(matched) / float64(len(ra)+len(rb))
}

// matchingChars returns the total length of the recursively matched blocks.
func matchingChars(a, b []rune) int {
	ai, bi, size := longestCommonSubstring(a, b)
	if size == 0 {
		return 0
	}
	total := size
	total += matchingChars(a[:ai], b[:bi])
	total += matchingChars(a[ai+size:], b[bi+size:])
	return total
}

// longestCommonSubstring finds the longest run of runes common to a and b,
// returning its start in each and its length. Of equal-length candidates the
// earliest in a (then b) wins, matching the sequence-matcher convention.
func longestCommonSubstring(a, b []rune) (ai, bi, size int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}

	// lengths[j] holds the common-suffix length ending at a[i-1], b[j-1]
	// for the previous row of the DP table.
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > size {
					size = cur[j]
					ai = i - size
					bi = j - size
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}
	return ai, bi, size
}
