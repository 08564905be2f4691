package search

import (
	"sort"

	"github.com/Norte-Development/lexsearch/internal/domain/candidate"
)

const (
	// vectorPenalty damps the rank advantage of top vector hits so a
	// full-text hit at the same position stays competitive.
	vectorPenalty = 5
	// fullTextPenalty is applied with an extra +1 so that, all else
	// equal, a full-text-only hit ranks below an equally placed
	// vector-only hit. Semantic similarity is the primary signal.
	fullTextPenalty = 5
	// minFusedScore drops long-tail candidates that barely matched
	// either channel.
	minFusedScore = 0.1
)

// fuseChannels merges the vector and full-text channels into one ranked
// case-law list. Per document identity the maximum score seen per channel
// is kept, the fused score is the sum of both channels, weak candidates
// are dropped, and the result is ordered by date descending with the
// fused score as tie-break. Recency wins: a recent ruling on-topic
// outranks an older one of similar textual relevance.
func fuseChannels(vector, fullText []candidate.Candidate, limit int) []candidate.Candidate {
	merged := make(map[string]candidate.Candidate, len(vector)+len(fullText))
	order := make([]string, 0, len(vector)+len(fullText))

	for rank, c := range vector {
		score := 1.0 / float64(rank+vectorPenalty)
		if existing, ok := merged[c.ID()]; ok {
			if score > existing.VectorScore() {
				merged[c.ID()] = existing.WithVectorScore(score)
			}
			continue
		}
		merged[c.ID()] = c.WithVectorScore(score)
		order = append(order, c.ID())
	}

	for rank, c := range fullText {
		score := 1.0 / float64(rank+fullTextPenalty+1)
		if existing, ok := merged[c.ID()]; ok {
			if score > existing.FullTextScore() {
				// Vector channel emitted this document first; keep its copy.
				merged[c.ID()] = existing.WithFullTextScore(score)
			}
			continue
		}
		merged[c.ID()] = c.WithFullTextScore(score)
		order = append(order, c.ID())
	}

	fused := make([]candidate.Candidate, 0, len(order))
	for _, id := range order {
		c := merged[id]
		if c.TotalScore() < minFusedScore {
			continue
		}
		fused = append(fused, c)
	}

	sort.SliceStable(fused, func(i, j int) bool {
		di, dj := fused[i].Date(), fused[j].Date()
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return fused[i].TotalScore() > fused[j].TotalScore()
	})

	if limit > 0 && len(fused) > limit {
		fused = fused[:limit]
	}
	return fused
}
