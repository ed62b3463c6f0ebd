package match

import "github.com/kailas-cloud/surfcmp/internal/domain/object"

// Report is the full outcome of one compare call.
type Report struct {
	// Matches holds every non-Different pair outcome in merge order.
	Matches List
	// Pairs is the number of pairs evaluated per category.
	Pairs map[object.Category]int
}

// Mapping returns the id → partner_id*code output of the report.
func (r Report) Mapping() map[int64]int64 {
	return r.Matches.Fold()
}

// TotalPairs returns the number of pairs evaluated across categories.
func (r Report) TotalPairs() int {
	n := 0
	for _, c := range r.Pairs {
		n += c
	}
	return n
}
