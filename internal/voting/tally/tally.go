// Package tally turns authoritative result rows into a ranked, percentaged
// result table.
package tally

import (
	"math"
	"sort"
	"time"

	emodels "votecast/internal/election/models"
	id "votecast/pkg/domain"
)

type CandidateResult struct {
	CandidateID   id.CandidateID
	CandidateName string
	Party         string
	VoteCount     int64
	Percentage    float64
}

type Results struct {
	ElectionID    id.ElectionID
	ElectionTitle string
	Status        emodels.Status
	EndAt         time.Time
	TotalVotes    int64
	Results       []CandidateResult
}

// Compute builds results in candidate order, then sorts by vote count
// descending. The sort is stable, so ties keep candidate order. Candidates
// without a result row count as zero; rows for unknown candidates are
// ignored.
func Compute(election *emodels.Election, candidates []*emodels.Candidate, rows []emodels.ResultEntry) *Results {
	counts := make(map[id.CandidateID]int64, len(rows))
	for _, row := range rows {
		counts[row.CandidateID] += row.VoteCount
	}

	out := make([]CandidateResult, 0, len(candidates))
	var total int64
	for _, c := range candidates {
		n := counts[c.ID]
		total += n
		out = append(out, CandidateResult{
			CandidateID:   c.ID,
			CandidateName: c.Name,
			Party:         c.Party,
			VoteCount:     n,
		})
	}

	for i := range out {
		out[i].Percentage = Percentage(out[i].VoteCount, total)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].VoteCount > out[j].VoteCount
	})

	return &Results{
		ElectionID:    election.ID,
		ElectionTitle: election.Title,
		Status:        election.Status,
		EndAt:         election.EndAt,
		TotalVotes:    total,
		Results:       out,
	}
}

// Percentage returns count/total as a percentage rounded to two decimals,
// or 0 when total is 0.
func Percentage(count, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)*10000/float64(total)) / 100
}
