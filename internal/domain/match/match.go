// Package match holds pairwise comparison outcomes and folds them into the
// id → signed partner mapping returned by compare.
package match

import (
	"github.com/kailas-cloud/surfcmp/internal/domain/classification"
	"github.com/kailas-cloud/surfcmp/internal/domain/object"
)

// Match records that object ID relates to Partner with the given classification.
type Match struct {
	ID             int64
	Partner        int64
	Category       object.Category
	Classification classification.Classification
}

// Value encodes the match as partner id times the orientation code.
func (m Match) Value() int64 {
	return m.Partner * m.Classification.Code()
}

// List is an ordered sequence of matches. Order is the merge order.
type List []Match

// Fold builds the output mapping. A later match for the same id overwrites an earlier one.
// Matches classified Different are skipped.
func (l List) Fold() map[int64]int64 {
	out := make(map[int64]int64, len(l))
	for _, m := range l {
		if !m.Classification.IsMatch() {
			continue
		}
		out[m.ID] = m.Value()
	}
	return out
}

// Counts returns the number of matches per category and classification.
func (l List) Counts() map[object.Category]map[classification.Classification]int {
	out := make(map[object.Category]map[classification.Classification]int)
	for _, m := range l {
		byClass, ok := out[m.Category]
		if !ok {
			byClass = make(map[classification.Classification]int)
			out[m.Category] = byClass
		}
		byClass[m.Classification]++
	}
	return out
}
