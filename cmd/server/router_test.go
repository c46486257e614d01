package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	emodels "votecast/internal/election/models"
	jwttoken "votecast/internal/jwt_token"
	"votecast/internal/platform/config"
	"votecast/internal/voting/handler"
	"votecast/internal/voting/handler/mocks"
	"votecast/internal/voting/models"
	id "votecast/pkg/domain"
	"votecast/pkg/testutil"
)

func testConfig(adminToken string) config.Server {
	return config.Server{
		RequestTimeout: time.Second,
		Auth: config.AuthConfig{
			JWTSigningKey: "router-test-key",
			JWTIssuer:     "votecast",
			JWTAudience:   "votecast-api",
			AdminAPIToken: adminToken,
		},
	}
}

func testRouter(t *testing.T, cfg config.Server, svc handler.Service, health ...healthSource) (http.Handler, *jwttoken.JWTService) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience)
	return newRouter(cfg, handler.New(svc, logger), tokens, nil, logger, health...), tokens
}

func TestRouter_Health(t *testing.T) {
	ctrl := gomock.NewController(t)
	healthy := func(context.Context) map[string]error { return map[string]error{"database": nil} }
	broken := func(context.Context) map[string]error {
		return map[string]error{"redis": errors.New("connection refused")}
	}

	testutil.Given(t, "all dependencies respond", func(t *testing.T) {
		router, _ := testRouter(t, testConfig(""), mocks.NewMockService(ctrl), healthy)
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/health"))
		testutil.AssertStatusOK(t, rr)
		testutil.AssertJSONContains(t, rr, "status", "ok")
	})

	testutil.Given(t, "one dependency fails", func(t *testing.T) {
		router, _ := testRouter(t, testConfig(""), mocks.NewMockService(ctrl), healthy, broken)
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/health"))

		testutil.Then(t, "the service reports degraded", func(t *testing.T) {
			testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
			resp := testutil.UnmarshalResponse[healthResponse](t, rr)
			assert.Equal(t, "degraded", resp.Status)
			assert.Equal(t, "connection refused", resp.Checks["redis"])
			assert.Equal(t, "ok", resp.Checks["database"])
		})
	})
}

func TestRouter_ParticipantRoutesRequireToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	router, tokens := testRouter(t, testConfig(""), svc)
	participantID := id.NewParticipantID()

	testutil.When(t, "no bearer token is sent", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/votes/history"))
		testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
	})

	testutil.When(t, "a valid token is sent", func(t *testing.T) {
		token, err := tokens.GenerateAccessToken(participantID, "student", time.Minute)
		assert.NoError(t, err)
		svc.EXPECT().History(gomock.Any(), participantID).Return([]emodels.VoteRecord{}, nil)

		rr := testutil.DoRequest(router, testutil.WithBearer(testutil.NewRequest(t, http.MethodGet, "/votes/history"), token))
		testutil.AssertStatusOK(t, rr)
	})
}

func TestRouter_AdminRoutes(t *testing.T) {
	electionID := id.NewElectionID()
	path := "/admin/elections/" + electionID.String() + "/reconcile"

	testutil.Given(t, "no admin token is configured", func(t *testing.T) {
		router, _ := testRouter(t, testConfig(""), mocks.NewMockService(gomock.NewController(t)))
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodPost, path))
		testutil.AssertStatus(t, rr, http.StatusNotFound)
	})

	testutil.Given(t, "an admin token is configured", func(t *testing.T) {
		svc := mocks.NewMockService(gomock.NewController(t))
		router, _ := testRouter(t, testConfig("ops-secret"), svc)

		testutil.When(t, "the header is wrong", func(t *testing.T) {
			req := testutil.NewRequest(t, http.MethodPost, path)
			req.Header.Set("X-Admin-Token", "guess")
			testutil.AssertStatusAndError(t, testutil.DoRequest(router, req), http.StatusForbidden, "forbidden")
		})

		testutil.When(t, "the header matches", func(t *testing.T) {
			svc.EXPECT().Reconcile(gomock.Any(), electionID).
				Return(&models.ReconcileReport{ElectionID: electionID, ReconciledAt: time.Now()}, nil)
			req := testutil.NewRequest(t, http.MethodPost, path)
			req.Header.Set("X-Admin-Token", "ops-secret")
			testutil.AssertStatusOK(t, testutil.DoRequest(router, req))
		})
	})
}
