package graph

import "github.com/walletgraph/walletgraph/internal/domain"

// FilterResult is the outcome of a collector dedup pass
type FilterResult struct {
	Accepted       []string
	DuplicateCount int
}

// FilterCollectors removes candidate addresses already represented as graph
// nodes. Comparison is case-insensitive: candidates are lowercased before
// comparison and returned in lowercase. Accepted preserves input order.
//
// Candidates are checked against the known set only. Duplicates within the
// batch itself pass through; admission collapses them to one entity later.
func FilterCollectors(candidates []string, known map[string]struct{}) FilterResult {
	res := FilterResult{Accepted: make([]string, 0, len(candidates))}
	for _, candidate := range candidates {
		addr := domain.NormalizeAddress(candidate)
		if _, ok := known[addr]; ok {
			continue
		}
		res.Accepted = append(res.Accepted, addr)
	}
	res.DuplicateCount = len(candidates) - len(res.Accepted)
	return res
}
