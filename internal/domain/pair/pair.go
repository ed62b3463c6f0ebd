// Package pair enumerates unordered id pairs within a group.
package pair

// Pair is an unordered pair of distinct ids, stored in enumeration order.
type Pair struct {
	First  int64
	Second int64
}

// Count returns the number of unordered pairs among n ids: n(n-1)/2.
func Count(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}

// All returns every unordered pair of positions i < j over ids, in row-major order.
// Pair.First is ids[i] and Pair.Second is ids[j]; no id is paired with itself
// provided ids holds no duplicates.
func All(ids []int64) []Pair {
	out := make([]Pair, 0, Count(len(ids)))
	for i := range ids {
		for j := i + 1; j < len(ids); j++ {
			out = append(out, Pair{First: ids[i], Second: ids[j]})
		}
	}
	return out
}

// Chunks splits pairs into consecutive slices of at most size elements.
// The chunks share the backing array of pairs.
func Chunks(pairs []Pair, size int) [][]Pair {
	if size <= 0 {
		size = len(pairs)
	}
	if len(pairs) == 0 {
		return nil
	}
	out := make([][]Pair, 0, (len(pairs)+size-1)/size)
	for start := 0; start < len(pairs); start += size {
		end := min(start+size, len(pairs))
		out = append(out, pairs[start:end])
	}
	return out
}
