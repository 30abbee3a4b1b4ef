// Package pairs splits the unordered pairs of n items into blocks of
// similar size for parallel scans.
package pairs

// Block covers every pair (a, b) with Lo <= a < Hi and a < b < n.
type Block struct {
	Lo, Hi int
	// Pairs is the number of pairs in the block.
	Pairs int
}

// Count returns n(n-1)/2.
func Count(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}

// Partition splits the pairs of n items into at most k blocks of contiguous
// first indices. Blocks are closed greedily once they reach the mean size,
// so every block holds at most one row more than its share.
func Partition(n, k int) []Block {
	total := Count(n)
	if total == 0 {
		return nil
	}
	k = max(1, min(k, n-1))
	target := (total + k - 1) / k

	blocks := make([]Block, 0, k)
	cur := Block{}
	for a := range n - 1 {
		cur.Pairs += n - 1 - a
		if cur.Pairs >= target && len(blocks) < k-1 {
			cur.Hi = a + 1
			blocks = append(blocks, cur)
			cur = Block{Lo: a + 1}
		}
	}
	if cur.Pairs > 0 {
		cur.Hi = n - 1
		blocks = append(blocks, cur)
	}
	return blocks
}

// Each calls fn for every pair of the block in row-major order until fn
// returns false. It reports whether the iteration ran to completion.
func (b Block) Each(n int, fn func(a, c int) bool) bool {
	for a := b.Lo; a < b.Hi; a++ {
		for c := a + 1; c < n; c++ {
			if !fn(a, c) {
				return false
			}
		}
	}
	return true
}
