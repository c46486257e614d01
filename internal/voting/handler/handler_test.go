package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	emodels "votecast/internal/election/models"
	"votecast/internal/voting/handler/mocks"
	"votecast/internal/voting/models"
	"votecast/internal/voting/tally"
	id "votecast/pkg/domain"
	dErrors "votecast/pkg/domain-errors"
	"votecast/pkg/testutil"
)

const txHash = "0x8f2a55949038a9610f50fb23b5883af3b4ecb3c3bb792cbcefbd1542c692be63"

type VotingHandlerSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockService   *mocks.MockService
	router        chi.Router
	participantID id.ParticipantID
	electionID    id.ElectionID
	candidateID   id.CandidateID
	now           time.Time
}

func TestVotingHandlerSuite(t *testing.T) {
	suite.Run(t, new(VotingHandlerSuite))
}

func (s *VotingHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = mocks.NewMockService(s.ctrl)
	h := New(s.mockService, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.router = chi.NewRouter()
	h.Register(s.router)
	h.RegisterAdmin(s.router)

	s.participantID = id.NewParticipantID()
	s.electionID = id.NewElectionID()
	s.candidateID = id.NewCandidateID()
	s.now = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
}

func (s *VotingHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *VotingHandlerSuite) authed(req *http.Request) *http.Request {
	return testutil.WithParticipant(req, s.participantID.String(), "student")
}

func (s *VotingHandlerSuite) target() map[string]string {
	return map[string]string{
		"electionId":  s.electionID.String(),
		"candidateId": s.candidateID.String(),
	}
}

func (s *VotingHandlerSuite) TestRequestOTP() {
	s.Run("issues a code", func() {
		expires := s.now.Add(10 * time.Minute)
		s.mockService.EXPECT().IssueCode(gomock.Any(), models.IssueCodeRequest{
			ParticipantID: s.participantID,
			ElectionID:    s.electionID,
			CandidateID:   s.candidateID,
		}).Return(&models.IssueCodeResult{Success: true, Message: "OTP sent to your email", ExpiresAt: expires}, nil)

		req := s.authed(testutil.NewJSONRequest(s.T(), http.MethodPost, "/votes/request-otp", s.target()))
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusOK(s.T(), rr)
		resp := testutil.UnmarshalResponse[RequestOTPResponse](s.T(), rr)
		s.True(resp.Success)
		s.Equal("OTP sent to your email", resp.Message)
		s.True(expires.Equal(resp.ExpiresAt))
		s.Empty(resp.DevCode)
	})

	s.Run("malformed election id", func() {
		body := s.target()
		body["electionId"] = "not-a-uuid"
		req := s.authed(testutil.NewJSONRequest(s.T(), http.MethodPost, "/votes/request-otp", body))
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
	})

	s.Run("unknown fields are rejected", func() {
		req := s.authed(testutil.NewRequestWithBody(s.T(), http.MethodPost, "/votes/request-otp",
			`{"electionId":"`+s.electionID.String()+`","candidateId":"`+s.candidateID.String()+`","extra":1}`))
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("unauthenticated", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/votes/request-otp", s.target())
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
	})

	s.Run("delivery failure maps to 502", func() {
		s.mockService.EXPECT().IssueCode(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeDeliveryFailed, "failed to deliver code"))
		req := s.authed(testutil.NewJSONRequest(s.T(), http.MethodPost, "/votes/request-otp", s.target()))
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadGateway, "delivery_failed")
	})

	s.Run("throttled", func() {
		s.mockService.EXPECT().IssueCode(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeRateLimited, "too many code requests"))
		req := s.authed(testutil.NewJSONRequest(s.T(), http.MethodPost, "/votes/request-otp", s.target()))
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusTooManyRequests, "rate_limited")
	})
}

func (s *VotingHandlerSuite) TestVerifyOTP() {
	s.Run("trims and forwards the code", func() {
		s.mockService.EXPECT().VerifyCode(gomock.Any(), models.VerifyCodeRequest{
			ParticipantID: s.participantID,
			ElectionID:    s.electionID,
			CandidateID:   s.candidateID,
			Code:          "123456",
		}).Return(&models.PendingCode{}, nil)

		body := s.target()
		body["otp"] = " 123456 "
		rr := testutil.DoRequest(s.router, s.authed(testutil.NewJSONRequest(s.T(), http.MethodPost, "/votes/verify", body)))
		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "success", true)
	})

	s.Run("non-numeric code never reaches the service", func() {
		body := s.target()
		body["otp"] = "12345a"
		rr := testutil.DoRequest(s.router, s.authed(testutil.NewJSONRequest(s.T(), http.MethodPost, "/votes/verify", body)))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})

	codeCases := []struct {
		code   dErrors.Code
		status int
	}{
		{dErrors.CodeCodeNotFound, http.StatusNotFound},
		{dErrors.CodeCodeExpired, http.StatusGone},
		{dErrors.CodeCodeMismatch, http.StatusUnauthorized},
		{dErrors.CodeBindingMismatch, http.StatusBadRequest},
	}
	for _, tc := range codeCases {
		s.Run(string(tc.code), func() {
			s.mockService.EXPECT().VerifyCode(gomock.Any(), gomock.Any()).Return(nil, dErrors.New(tc.code, "rejected"))
			body := s.target()
			body["otp"] = "123456"
			rr := testutil.DoRequest(s.router, s.authed(testutil.NewJSONRequest(s.T(), http.MethodPost, "/votes/verify", body)))
			testutil.AssertStatusAndError(s.T(), rr, tc.status, string(tc.code))
		})
	}
}

func (s *VotingHandlerSuite) TestCastVote() {
	s.Run("records the ballot", func() {
		s.mockService.EXPECT().CastVote(gomock.Any(), models.CastVoteRequest{
			ParticipantID:   s.participantID,
			ElectionID:      s.electionID,
			CandidateID:     s.candidateID,
			Code:            "654321",
			TransactionHash: txHash,
		}).Return(&models.CastVoteResult{Success: true, TransactionHash: txHash, VotedAt: s.now}, nil)

		body := s.target()
		body["otp"] = "654321"
		body["transactionHash"] = " " + txHash + " "
		rr := testutil.DoRequest(s.router, s.authed(testutil.NewJSONRequest(s.T(), http.MethodPost, "/votes/cast", body)))

		testutil.AssertStatusOK(s.T(), rr)
		resp := testutil.UnmarshalResponse[CastVoteResponse](s.T(), rr)
		s.True(resp.Success)
		s.Equal(txHash, resp.TransactionHash)
	})

	s.Run("missing transaction hash", func() {
		body := s.target()
		body["otp"] = "654321"
		rr := testutil.DoRequest(s.router, s.authed(testutil.NewJSONRequest(s.T(), http.MethodPost, "/votes/cast", body)))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})

	s.Run("second ballot conflicts", func() {
		s.mockService.EXPECT().CastVote(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeAlreadyVoted, "participant has already voted"))
		body := s.target()
		body["otp"] = "654321"
		body["transactionHash"] = txHash
		rr := testutil.DoRequest(s.router, s.authed(testutil.NewJSONRequest(s.T(), http.MethodPost, "/votes/cast", body)))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, "already_voted")
	})

	s.Run("internal errors hide their description", func() {
		s.mockService.EXPECT().CastVote(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeInternal, "secret detail"))
		body := s.target()
		body["otp"] = "654321"
		body["transactionHash"] = txHash
		rr := testutil.DoRequest(s.router, s.authed(testutil.NewJSONRequest(s.T(), http.MethodPost, "/votes/cast", body)))
		testutil.AssertStatus(s.T(), rr, http.StatusInternalServerError)
		s.NotContains(rr.Body.String(), "secret detail")
	})
}

func (s *VotingHandlerSuite) TestHistory() {
	s.mockService.EXPECT().History(gomock.Any(), s.participantID).Return([]emodels.VoteRecord{{
		ParticipantID:   s.participantID,
		ElectionID:      s.electionID,
		ElectionTitle:   "Student Council 2026",
		VotedAt:         s.now,
		TransactionHash: txHash,
		Verified:        true,
	}}, nil)

	rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/votes/history")))
	testutil.AssertStatusOK(s.T(), rr)
	resp := testutil.UnmarshalResponse[HistoryResponse](s.T(), rr)
	s.Require().Len(resp.Votes, 1)
	s.Equal("Student Council 2026", resp.Votes[0].ElectionTitle)
	s.Equal(s.electionID.String(), resp.Votes[0].ElectionID)
	s.True(resp.Votes[0].Verified)
}

func (s *VotingHandlerSuite) TestActiveElections() {
	s.mockService.EXPECT().ActiveElections(gomock.Any(), s.participantID).Return([]models.ActiveElection{{
		Election: &emodels.Election{ID: s.electionID, Title: "Council", StartAt: s.now, EndAt: s.now.Add(time.Hour)},
		Candidates: []*emodels.Candidate{
			{ID: s.candidateID, Name: "Ada", Position: 0},
		},
		HasVoted: true,
	}}, nil)

	rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/elections/active")))
	testutil.AssertStatusOK(s.T(), rr)
	resp := testutil.UnmarshalResponse[ActiveElectionsResponse](s.T(), rr)
	s.Require().Len(resp.Elections, 1)
	s.True(resp.Elections[0].HasVoted)
	s.Require().Len(resp.Elections[0].Candidates, 1)
	s.Equal("Ada", resp.Elections[0].Candidates[0].Name)
}

func (s *VotingHandlerSuite) TestResults() {
	s.Run("ranked table", func() {
		s.mockService.EXPECT().GetResults(gomock.Any(), s.participantID, s.electionID).Return(&tally.Results{
			ElectionID:    s.electionID,
			ElectionTitle: "Council",
			Status:        emodels.StatusCompleted,
			TotalVotes:    3,
			Results: []tally.CandidateResult{
				{CandidateID: s.candidateID, CandidateName: "Ada", VoteCount: 2, Percentage: 66.67},
				{CandidateID: id.NewCandidateID(), CandidateName: "Grace", VoteCount: 1, Percentage: 33.33},
			},
		}, nil)

		rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/elections/"+s.electionID.String()+"/results")))
		testutil.AssertStatusOK(s.T(), rr)
		resp := testutil.UnmarshalResponse[ResultsResponse](s.T(), rr)
		s.Equal("completed", resp.Status)
		s.Equal(int64(3), resp.TotalVotes)
		s.Require().Len(resp.Results, 2)
		s.Equal(66.67, resp.Results[0].Percentage)
		s.Equal(33.33, resp.Results[1].Percentage)
	})

	s.Run("hidden while active", func() {
		s.mockService.EXPECT().GetResults(gomock.Any(), s.participantID, s.electionID).
			Return(nil, dErrors.New(dErrors.CodeForbidden, "results are available once the election is completed"))
		rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/elections/"+s.electionID.String()+"/results")))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden, "forbidden")
	})

	s.Run("bad election id", func() {
		rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/elections/abc/results")))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
	})
}

func (s *VotingHandlerSuite) TestCompletedResults() {
	s.Run("lists completed elections", func() {
		older := id.NewElectionID()
		s.mockService.EXPECT().CompletedResults(gomock.Any()).Return([]*tally.Results{
			{ElectionID: s.electionID, ElectionTitle: "Council", Status: emodels.StatusCompleted, EndAt: s.now, TotalVotes: 1,
				Results: []tally.CandidateResult{{CandidateID: s.candidateID, CandidateName: "Ada", VoteCount: 1, Percentage: 100}}},
			{ElectionID: older, ElectionTitle: "Senate", Status: emodels.StatusCompleted, EndAt: s.now.Add(-48 * time.Hour)},
		}, nil)

		rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/elections/results")))
		testutil.AssertStatusOK(s.T(), rr)
		resp := testutil.UnmarshalResponse[CompletedResultsResponse](s.T(), rr)
		s.Require().Len(resp.Elections, 2)
		s.Equal(s.electionID.String(), resp.Elections[0].ElectionID)
		s.Equal(100.0, resp.Elections[0].Results[0].Percentage)
		s.Equal(older.String(), resp.Elections[1].ElectionID)
		s.Empty(resp.Elections[1].Results)
	})

	s.Run("empty list", func() {
		s.mockService.EXPECT().CompletedResults(gomock.Any()).Return(nil, nil)
		rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/elections/results")))
		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "elections", []any{})
	})
}

func (s *VotingHandlerSuite) TestReconcile() {
	s.mockService.EXPECT().Reconcile(gomock.Any(), s.electionID).Return(&models.ReconcileReport{
		ElectionID:   s.electionID,
		Checked:      2,
		Diverged:     []models.CandidateDrift{{CandidateID: s.candidateID, Before: 0, After: 4}},
		ReconciledAt: s.now,
	}, nil)

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodPost, "/admin/elections/"+s.electionID.String()+"/reconcile"))
	testutil.AssertStatusOK(s.T(), rr)
	resp := testutil.UnmarshalResponse[ReconcileResponse](s.T(), rr)
	s.Equal(2, resp.Checked)
	s.Require().Len(resp.Diverged, 1)
	s.Equal(int64(4), resp.Diverged[0].After)
}
