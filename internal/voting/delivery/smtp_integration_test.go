//go:build integration

package delivery_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"votecast/internal/voting/delivery"
	"votecast/pkg/testutil/containers"
)

type mailpitMessages struct {
	Messages []struct {
		ID      string `json:"ID"`
		Subject string `json:"Subject"`
		To      []struct {
			Address string `json:"Address"`
		} `json:"To"`
	} `json:"messages"`
}

type mailpitMessage struct {
	Text string `json:"Text"`
}

func getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mailpit %s: status %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func TestSMTPNotifier_DeliversToRelay(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	relay := containers.GetManager().GetMailpit(t)
	notifier, err := delivery.NewSMTPNotifier(delivery.SMTPConfig{
		Host:    relay.SMTPHost,
		Port:    relay.SMTPPort,
		From:    "no-reply@votecast.local",
		Timeout: 10 * time.Second,
	})
	require.NoError(t, err)

	require.NoError(t, notifier.Notify(ctx, "ada@uni.edu", "Your Voting OTP", "Your OTP for voting is: 482913."))

	var list mailpitMessages
	require.Eventually(t, func() bool {
		return getJSON(ctx, relay.APIURL+"/api/v1/messages", &list) == nil && len(list.Messages) > 0
	}, 10*time.Second, 200*time.Millisecond)

	got := list.Messages[0]
	require.Equal(t, "Your Voting OTP", got.Subject)
	require.Len(t, got.To, 1)
	require.Equal(t, "ada@uni.edu", got.To[0].Address)

	var body mailpitMessage
	require.NoError(t, getJSON(ctx, relay.APIURL+"/api/v1/message/"+got.ID, &body))
	require.Contains(t, body.Text, "482913")
}

func TestSMTPNotifier_RequireTLSRefusesPlainRelay(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	relay := containers.GetManager().GetMailpit(t)
	notifier, err := delivery.NewSMTPNotifier(delivery.SMTPConfig{
		Host:       relay.SMTPHost,
		Port:       relay.SMTPPort,
		From:       "no-reply@votecast.local",
		RequireTLS: true,
	})
	require.NoError(t, err)

	err = notifier.Notify(context.Background(), "ada@uni.edu", "Your Voting OTP", "x")
	require.Error(t, err)
}
