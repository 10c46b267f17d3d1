package imposition

// FoldPattern returns the duplex order of one signature of size pages whose
// first logical page is start.
//
// Each folded sheet contributes four slots, outermost sheet first: the
// signature's last and first pages on the front, the next inner pair on the
// back. For size 8 and start 0 the pattern is [7 0 1 6 5 2 3 4].
//
// size must be a positive multiple of 4.
func FoldPattern(size, start int) []int {
	out := make([]int, 0, size)
	for i := 0; i < size/2; i += 2 {
		out = append(out,
			start+size-i-1,
			start+i,
			start+i+1,
			start+size-i-2,
		)
	}
	return out
}

// Order concatenates the fold patterns of all signatures in sizes, each
// starting where the previous one ended. The result is a permutation of
// 0..sum(sizes)-1 giving, for every output position, the logical page that
// belongs there.
func Order(sizes []int) []int {
	total := 0
	for _, s := range sizes {
		total += s
	}
	order := make([]int, 0, total)
	start := 0
	for _, s := range sizes {
		order = append(order, FoldPattern(s, start)...)
		start += s
	}
	return order
}
