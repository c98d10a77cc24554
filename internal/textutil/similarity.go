package textutil

// Similarity returns the longest-matching-block ratio of a and b in [0,1].
// Comparison is rune-wise and case-sensitive; callers fold case first when
// they need case-insensitive scores. Two empty strings are identical (1.0).
func Similarity(a, b string) float64 {
	ar := []rune(a)
	br := []rune(b)
	total := len(ar) + len(br)
	if total == 0 {
		return 1.0
	}
	matched := matchedRunes(ar, br)
	return 2.0 * float64(matched) / float64(total)
}

type span struct {
	alo, ahi, blo, bhi int
}

// matchedRunes sums the sizes of all matching blocks between a and b.
func matchedRunes(a, b []rune) int {
	index := make(map[rune][]int, len(b))
	for j, r := range b {
		index[r] = append(index[r], j)
	}

	matched := 0
	queue := []span{{0, len(a), 0, len(b)}}
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		i, j, size := longestMatch(a, index, s)
		if size == 0 {
			continue
		}
		matched += size
		if s.alo < i && s.blo < j {
			queue = append(queue, span{s.alo, i, s.blo, j})
		}
		if i+size < s.ahi && j+size < s.bhi {
			queue = append(queue, span{i + size, s.ahi, j + size, s.bhi})
		}
	}
	return matched
}

// longestMatch finds the longest block a[i:i+k] == b[j:j+k] inside s.
// Ties resolve to the earliest i, then the earliest j.
func longestMatch(a []rune, index map[rune][]int, s span) (int, int, int) {
	bestI, bestJ, bestSize := s.alo, s.blo, 0
	lengths := map[int]int{}
	for i := s.alo; i < s.ahi; i++ {
		next := map[int]int{}
		for _, j := range index[a[i]] {
			if j < s.blo {
				continue
			}
			if j >= s.bhi {
				break
			}
			k := lengths[j-1] + 1
			next[j] = k
			if k > bestSize {
				bestI, bestJ, bestSize = i-k+1, j-k+1, k
			}
		}
		lengths = next
	}
	return bestI, bestJ, bestSize
}
