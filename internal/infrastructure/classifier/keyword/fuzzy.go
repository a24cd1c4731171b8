package keyword

// partialRatio scores how closely the shorter string aligns with the best
// matching same-length window of the longer one, 0-100. It is deterministic:
// equal-score windows resolve to the earliest one, which does not affect the
// returned maximum.
func partialRatio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	best := 0
	for start := 0; start+len(ra) <= len(rb); start++ {
		score := similarity(ra, rb[start:start+len(ra)])
		if score > best {
			best = score
		}
		if best == 100 {
			break
		}
	}
	return best
}

// similarity is 100*(L-dist)/L for the Levenshtein distance between two
// rune slices, L being the longer length.
func similarity(a, b []rune) int {
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 100
	}
	dist := levenshtein(a, b)
	return (longest - dist) * 100 / longest
}

func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost

			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			curr[j] = m
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
