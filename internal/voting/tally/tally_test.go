package tally

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	emodels "votecast/internal/election/models"
	id "votecast/pkg/domain"
)

func fixture(names ...string) (*emodels.Election, []*emodels.Candidate) {
	election := &emodels.Election{ID: id.NewElectionID(), Title: "Council", Status: emodels.StatusCompleted}
	candidates := make([]*emodels.Candidate, 0, len(names))
	for i, name := range names {
		c := &emodels.Candidate{ID: id.NewCandidateID(), ElectionID: election.ID, Name: name, Position: i}
		candidates = append(candidates, c)
		election.Candidates = append(election.Candidates, c.ID)
	}
	return election, candidates
}

func TestCompute_TwoToOne(t *testing.T) {
	election, candidates := fixture("A", "B")
	rows := []emodels.ResultEntry{
		{ElectionID: election.ID, CandidateID: candidates[1].ID, VoteCount: 1},
		{ElectionID: election.ID, CandidateID: candidates[0].ID, VoteCount: 2},
	}

	res := Compute(election, candidates, rows)
	require.Len(t, res.Results, 2)
	assert.Equal(t, int64(3), res.TotalVotes)
	assert.Equal(t, "A", res.Results[0].CandidateName)
	assert.Equal(t, 66.67, res.Results[0].Percentage)
	assert.Equal(t, "B", res.Results[1].CandidateName)
	assert.Equal(t, 33.33, res.Results[1].Percentage)
	assert.Equal(t, "Council", res.ElectionTitle)
	assert.Equal(t, emodels.StatusCompleted, res.Status)
}

func TestCompute_TiesKeepCandidateOrder(t *testing.T) {
	election, candidates := fixture("A", "B", "C", "D")
	rows := []emodels.ResultEntry{
		{CandidateID: candidates[3].ID, VoteCount: 2},
		{CandidateID: candidates[1].ID, VoteCount: 2},
		{CandidateID: candidates[2].ID, VoteCount: 5},
	}

	res := Compute(election, candidates, rows)
	var names []string
	for _, r := range res.Results {
		names = append(names, r.CandidateName)
	}
	assert.Equal(t, []string{"C", "B", "D", "A"}, names)
}

func TestCompute_NoVotes(t *testing.T) {
	election, candidates := fixture("A", "B")
	res := Compute(election, candidates, nil)

	assert.Zero(t, res.TotalVotes)
	require.Len(t, res.Results, 2, "zero-vote candidates are listed")
	for _, r := range res.Results {
		assert.Zero(t, r.Percentage)
	}
	assert.Equal(t, "A", res.Results[0].CandidateName)
}

func TestCompute_IgnoresUnknownCandidates(t *testing.T) {
	election, candidates := fixture("A")
	res := Compute(election, candidates, []emodels.ResultEntry{
		{CandidateID: id.NewCandidateID(), VoteCount: 9},
		{CandidateID: candidates[0].ID, VoteCount: 1},
	})
	assert.Equal(t, int64(1), res.TotalVotes)
	assert.Equal(t, 100.0, res.Results[0].Percentage)
}

func TestCompute_Idempotent(t *testing.T) {
	election, candidates := fixture("A", "B", "C")
	rows := []emodels.ResultEntry{{CandidateID: candidates[2].ID, VoteCount: 1}}
	assert.Equal(t, Compute(election, candidates, rows), Compute(election, candidates, rows))
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(0, 0))
	assert.Equal(t, 14.29, Percentage(1, 7))
	assert.Equal(t, 85.71, Percentage(6, 7))
	assert.Equal(t, 100.0, Percentage(4, 4))
}

func TestCompute_PercentagesSumToHundred(t *testing.T) {
	cases := []struct {
		name   string
		counts []int64
	}{
		{"three way tie", []int64{1, 1, 1}},
		{"two to one", []int64{2, 1}},
		{"sevenths", []int64{1, 2, 4}},
		{"landslide", []int64{97, 2, 1}},
		{"six way", []int64{1, 1, 1, 1, 1, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			names := make([]string, len(tc.counts))
			for i := range names {
				names[i] = string(rune('A' + i))
			}
			election, candidates := fixture(names...)
			rows := make([]emodels.ResultEntry, 0, len(tc.counts))
			for i, n := range tc.counts {
				rows = append(rows, emodels.ResultEntry{CandidateID: candidates[i].ID, VoteCount: n})
			}

			var sum float64
			for _, r := range Compute(election, candidates, rows).Results {
				sum += r.Percentage
			}
			assert.InDelta(t, 100.0, sum, 0.01*float64(len(tc.counts)))
		})
	}

	t.Run("each third rounds to 33.33", func(t *testing.T) {
		election, candidates := fixture("A", "B", "C")
		rows := []emodels.ResultEntry{
			{CandidateID: candidates[0].ID, VoteCount: 1},
			{CandidateID: candidates[1].ID, VoteCount: 1},
			{CandidateID: candidates[2].ID, VoteCount: 1},
		}
		res := Compute(election, candidates, rows)
		var sum float64
		for _, r := range res.Results {
			assert.Equal(t, 33.33, r.Percentage)
			sum += r.Percentage
		}
		assert.GreaterOrEqual(t, sum, 99.99)
		assert.LessOrEqual(t, sum, 100.01)
	})
}
