package handler

import (
	"time"

	emodels "votecast/internal/election/models"
	"votecast/internal/voting/models"
	"votecast/internal/voting/tally"
)

type RequestOTPResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expiresAt"`
	DevCode   string    `json:"devCode,omitempty"`
}

type VerifyOTPResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type CastVoteResponse struct {
	Success         bool      `json:"success"`
	Message         string    `json:"message"`
	TransactionHash string    `json:"transactionHash"`
	VotedAt         time.Time `json:"votedAt"`
}

type VoteRecordResponse struct {
	ElectionID      string    `json:"electionId"`
	ElectionTitle   string    `json:"electionTitle"`
	VotedAt         time.Time `json:"votedAt"`
	TransactionHash string    `json:"transactionHash"`
	Verified        bool      `json:"verified"`
}

type HistoryResponse struct {
	Votes []VoteRecordResponse `json:"votes"`
}

type CandidateResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Party    string `json:"party,omitempty"`
	Position int    `json:"position"`
}

type ActiveElectionResponse struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	StartAt     time.Time           `json:"startAt"`
	EndAt       time.Time           `json:"endAt"`
	HasVoted    bool                `json:"hasVoted"`
	Candidates  []CandidateResponse `json:"candidates"`
}

type ActiveElectionsResponse struct {
	Elections []ActiveElectionResponse `json:"elections"`
}

type CandidateResultResponse struct {
	CandidateID   string  `json:"candidateId"`
	CandidateName string  `json:"candidateName"`
	Party         string  `json:"party,omitempty"`
	VoteCount     int64   `json:"voteCount"`
	Percentage    float64 `json:"percentage"`
}

type ResultsResponse struct {
	ElectionID    string                    `json:"electionId"`
	ElectionTitle string                    `json:"electionTitle"`
	Status        string                    `json:"status"`
	EndAt         time.Time                 `json:"endAt"`
	TotalVotes    int64                     `json:"totalVotes"`
	Results       []CandidateResultResponse `json:"results"`
}

type CompletedResultsResponse struct {
	Elections []ResultsResponse `json:"elections"`
}

type CandidateDriftResponse struct {
	CandidateID string `json:"candidateId"`
	Before      int64  `json:"before"`
	After       int64  `json:"after"`
}

type ReconcileResponse struct {
	ElectionID   string                   `json:"electionId"`
	Checked      int                      `json:"checked"`
	Diverged     []CandidateDriftResponse `json:"diverged"`
	ReconciledAt time.Time                `json:"reconciledAt"`
}

func toHistoryResponse(records []emodels.VoteRecord) HistoryResponse {
	out := HistoryResponse{Votes: make([]VoteRecordResponse, 0, len(records))}
	for _, r := range records {
		out.Votes = append(out.Votes, VoteRecordResponse{
			ElectionID:      r.ElectionID.String(),
			ElectionTitle:   r.ElectionTitle,
			VotedAt:         r.VotedAt,
			TransactionHash: r.TransactionHash,
			Verified:        r.Verified,
		})
	}
	return out
}

func toActiveElectionsResponse(list []models.ActiveElection) ActiveElectionsResponse {
	out := ActiveElectionsResponse{Elections: make([]ActiveElectionResponse, 0, len(list))}
	for _, item := range list {
		e := ActiveElectionResponse{
			ID:          item.Election.ID.String(),
			Title:       item.Election.Title,
			Description: item.Election.Description,
			StartAt:     item.Election.StartAt,
			EndAt:       item.Election.EndAt,
			HasVoted:    item.HasVoted,
			Candidates:  make([]CandidateResponse, 0, len(item.Candidates)),
		}
		for _, c := range item.Candidates {
			e.Candidates = append(e.Candidates, CandidateResponse{
				ID:       c.ID.String(),
				Name:     c.Name,
				Party:    c.Party,
				Position: c.Position,
			})
		}
		out.Elections = append(out.Elections, e)
	}
	return out
}

func toResultsResponse(res *tally.Results) ResultsResponse {
	out := ResultsResponse{
		ElectionID:    res.ElectionID.String(),
		ElectionTitle: res.ElectionTitle,
		Status:        string(res.Status),
		EndAt:         res.EndAt,
		TotalVotes:    res.TotalVotes,
		Results:       make([]CandidateResultResponse, 0, len(res.Results)),
	}
	for _, r := range res.Results {
		out.Results = append(out.Results, CandidateResultResponse{
			CandidateID:   r.CandidateID.String(),
			CandidateName: r.CandidateName,
			Party:         r.Party,
			VoteCount:     r.VoteCount,
			Percentage:    r.Percentage,
		})
	}
	return out
}

func toReconcileResponse(report *models.ReconcileReport) ReconcileResponse {
	out := ReconcileResponse{
		ElectionID:   report.ElectionID.String(),
		Checked:      report.Checked,
		Diverged:     make([]CandidateDriftResponse, 0, len(report.Diverged)),
		ReconciledAt: report.ReconciledAt,
	}
	for _, d := range report.Diverged {
		out.Diverged = append(out.Diverged, CandidateDriftResponse{
			CandidateID: d.CandidateID.String(),
			Before:      d.Before,
			After:       d.After,
		})
	}
	return out
}
