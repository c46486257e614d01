package delivery

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"votecast/pkg/platform/circuit"
)

type recordingNotifier struct {
	name  string
	err   error
	calls int
}

func (r *recordingNotifier) Name() string { return r.name }

func (r *recordingNotifier) Notify(context.Context, string, string, string) error {
	r.calls++
	return r.err
}

func TestFailoverNotifier(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	primary := &recordingNotifier{name: "smtp", err: errors.New("relay down")}
	fallback := &recordingNotifier{name: "kafka"}
	breaker := circuit.New("delivery",
		circuit.WithFailureThreshold(2),
		circuit.WithSuccessThreshold(1),
		circuit.WithCooldown(time.Minute),
		circuit.WithClock(clock),
	)
	n := NewFailoverNotifier(primary, fallback, breaker)
	assert.Equal(t, "smtp+kafka", n.Name())

	require.NoError(t, n.Notify(ctx, "ada@uni.edu", "s", "b"))
	require.NoError(t, n.Notify(ctx, "ada@uni.edu", "s", "b"))
	assert.Equal(t, 2, primary.calls)
	assert.Equal(t, 2, fallback.calls, "each primary failure falls back")
	assert.True(t, breaker.IsOpen())

	require.NoError(t, n.Notify(ctx, "ada@uni.edu", "s", "b"))
	assert.Equal(t, 2, primary.calls, "open breaker skips the primary")
	assert.Equal(t, 3, fallback.calls)

	now = now.Add(time.Minute)
	primary.err = nil
	require.NoError(t, n.Notify(ctx, "ada@uni.edu", "s", "b"))
	assert.Equal(t, 3, primary.calls, "primary probed after cooldown")
	assert.False(t, breaker.IsOpen())
}

func TestFailoverNotifier_FallbackErrorSurfaces(t *testing.T) {
	primary := &recordingNotifier{name: "kafka", err: errors.New("no brokers")}
	fallback := &recordingNotifier{name: "smtp", err: errors.New("relay down")}
	n := NewFailoverNotifier(primary, fallback, circuit.New("delivery"))

	err := n.Notify(context.Background(), "ada@uni.edu", "s", "b")
	assert.EqualError(t, err, "relay down")
}

func TestLogNotifier_MasksRecipient(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	n := NewLogNotifier(logger)

	require.NoError(t, n.Notify(context.Background(), "ada@uni.edu", "Your Voting OTP", "code 123456"))
	out := buf.String()
	assert.Contains(t, out, "a**@uni.edu")
	assert.NotContains(t, out, "ada@uni.edu")
	assert.NotContains(t, out, "123456", "body only logged at debug")
}

func TestLogNotifier_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NewLogNotifier(nil).Notify(ctx, "a@b.c", "s", "b"), context.Canceled)
}

func TestSMTPNotifier_Message(t *testing.T) {
	n, err := NewSMTPNotifier(SMTPConfig{Host: "mail.uni.edu", Port: 587, From: "no-reply@votecast.local"})
	require.NoError(t, err)

	msg, err := n.message("ada@uni.edu", "Your Voting OTP", "Your OTP for voting is: 123456.")
	require.NoError(t, err)
	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "From: <no-reply@votecast.local>")
	assert.Contains(t, out, "To: <ada@uni.edu>")
	assert.Contains(t, out, "Subject: Your Voting OTP")
	assert.Contains(t, out, "text/plain")
	assert.Contains(t, out, "123456")
}

func TestSMTPNotifier_RejectsHeaderInjection(t *testing.T) {
	n, err := NewSMTPNotifier(SMTPConfig{Host: "localhost", Port: 25, From: "x@y.z"})
	require.NoError(t, err)

	err = n.Notify(context.Background(), "ada@uni.edu\r\nBcc: eve@evil.test", "s", "b")
	assert.Error(t, err)
	err = n.Notify(context.Background(), "ada@uni.edu", "s\r\nBcc: eve@evil.test", "b")
	assert.ErrorContains(t, err, "line break")
}

func TestSMTPNotifier_Config(t *testing.T) {
	_, err := NewSMTPNotifier(SMTPConfig{Port: 25})
	assert.Error(t, err, "host is required")
	_, err = NewSMTPNotifier(SMTPConfig{Host: "localhost", Port: 70000})
	assert.Error(t, err, "port out of range")
}

func TestSMTPNotifier_UnreachableRelay(t *testing.T) {
	n, err := NewSMTPNotifier(SMTPConfig{Host: "127.0.0.1", Port: 1, From: "x@y.z", Timeout: 2 * time.Second})
	require.NoError(t, err)
	assert.Error(t, n.Notify(context.Background(), "ada@uni.edu", "s", "b"))
}

func TestKafkaNotifier_RequiresConfig(t *testing.T) {
	_, err := NewKafkaNotifier(nil, "topic")
	assert.Error(t, err)
	_, err = NewKafkaNotifier([]string{"localhost:9092"}, "")
	assert.Error(t, err)
}
