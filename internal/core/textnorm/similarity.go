package textnorm

// Similarity returns the Ratcliff/Obershelp ratio of two strings in [0,1]:
// twice the number of matching characters over the total length, where
// matches are found by recursively locating the longest common substring.
// The calibration thresholds used by the classifier were tuned against this
// ratio, so the measure must not be swapped for another without re-tuning.
func Similarity(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}

	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	matched := matchingChars([]byte(a), []byte(b))

	return 2 * float64(matched) / float64(len(a)+len(b))
}

func matchingChars(a, b []byte) int {
	ai, bi, size := longestCommonSubstring(a, b)
	if size == 0 {
		return 0
	}

	total := size
	total += matchingChars(a[:ai], b[:bi])
	total += matchingChars(a[ai+size:], b[bi+size:])

	return total
}

func longestCommonSubstring(a, b []byte) (ai, bi, size int) {
	// lengths[j] holds the run length ending at b[j-1] for the previous row.
	lengths := make([]int, len(b)+1)

	for i := range a {
		// Walk backwards so the row can be updated in place.
		for j := len(b); j > 0; j-- {
			if a[i] == b[j-1] {
				lengths[j] = lengths[j-1] + 1
				if lengths[j] > size {
					size = lengths[j]
					ai = i + 1 - size
					bi = j - size
				}
			} else {
				lengths[j] = 0
			}
		}
	}

	return ai, bi, size
}
