package testutil

import (
	"net/http"

	id "votecast/pkg/domain"
	"votecast/pkg/requestcontext"
)

// WithParticipant simulates what the auth middleware does for an
// authenticated request. Invalid IDs leave the request unauthenticated.
func WithParticipant(req *http.Request, participantID, role string) *http.Request {
	parsed, err := id.ParseParticipantID(participantID)
	if err != nil {
		return req
	}
	ctx := requestcontext.WithParticipantID(req.Context(), parsed)
	ctx = requestcontext.WithRole(ctx, role)
	return req.WithContext(ctx)
}
