package search

// suffixBlock is the size of the numbering window the suffix heuristic
// operates in: a 3-digit suffix is unambiguous within one block of a
// thousand consecutive ticket numbers.
const suffixBlock = 1000

// SuffixCandidates expands a 3-digit suffix into the absolute ticket numbers
// worth probing, newest first. lastMax is the highest ticket number known to
// exist; the primary candidate is the number in lastMax's thousand-block that
// ends in the suffix, stepping down one block when that would exceed lastMax
// (a ticket above the newest one cannot exist, so such a suffix must refer to
// the previous block). lookback adds that many additional blocks below the
// primary candidate. Candidates below 1 are dropped.
//
// The heuristic assumes dense, monotonically increasing numbering near
// lastMax. Skipped or reused numbers, or a stale lastMax, can make it miss;
// that blind spot is inherent and deliberate.
func SuffixCandidates(suffix int, lastMax int64, lookback int) []int64 {
	if suffix < 0 || suffix >= suffixBlock || lastMax < 1 {
		return nil
	}

	base := lastMax/suffixBlock*suffixBlock + int64(suffix)
	if base > lastMax {
		base -= suffixBlock
	}

	candidates := make([]int64, 0, lookback+1)
	for i := 0; i <= lookback; i++ {
		c := base - int64(i)*suffixBlock
		if c < 1 {
			break
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return nil
	}
	return candidates
}
