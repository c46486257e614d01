package code

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"votecast/internal/voting/models"
	id "votecast/pkg/domain"
	"votecast/pkg/platform/sentinel"
)

var redisOpDurationMs = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "votecast_code_store_redis_duration_ms",
	Help:    "Latency of pending code store operations against Redis in milliseconds",
	Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50},
}, []string{"op"})

const (
	codeKeyPrefix = "votecast:otp:"

	fieldIssueID = "issue_id"
	fieldPayload = "payload"

	// defaultRetention keeps an expired entry readable for a while past its
	// expiry so callers can report "expired" rather than "not found".
	defaultRetention = 5 * time.Minute
)

// compareAndDeleteScript deletes the key only while its issue_id field still
// matches, so a stale issuance can never remove a newer code.
var compareAndDeleteScript = redis.NewScript(`
if redis.call("HGET", KEYS[1], "issue_id") == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisStore keeps each pending code in a hash with a key TTL of
// ExpiresAt plus a retention window.
type RedisStore struct {
	client    *redis.Client
	retention time.Duration
}

type RedisStoreOption func(*RedisStore)

// WithRetention sets how long an expired code stays readable.
func WithRetention(d time.Duration) RedisStoreOption {
	return func(s *RedisStore) {
		if d >= 0 {
			s.retention = d
		}
	}
}

func NewRedisStore(client *redis.Client, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{client: client, retention: defaultRetention}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// redisRecord is the payload encoding. IDs are strings because the typed
// IDs do not carry uuid's text marshalling.
type redisRecord struct {
	IssueID       string    `json:"issue_id"`
	ParticipantID string    `json:"participant_id"`
	ElectionID    string    `json:"election_id"`
	CandidateID   string    `json:"candidate_id"`
	CodeHash      []byte    `json:"code_hash"`
	Destination   string    `json:"destination"`
	IssuedAt      time.Time `json:"issued_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}

func redisKey(key models.CodeKey) string {
	return codeKeyPrefix + key.String()
}

func observe(op string, start time.Time) {
	redisOpDurationMs.WithLabelValues(op).Observe(float64(time.Since(start).Microseconds()) / 1000.0)
}

func unavailable(op string, err error) error {
	return fmt.Errorf("redis %s: %w: %w", op, sentinel.ErrUnavailable, err)
}

func (s *RedisStore) Put(ctx context.Context, code *models.PendingCode) error {
	defer observe("put", time.Now())

	payload, err := json.Marshal(redisRecord{
		IssueID:       code.IssueID.String(),
		ParticipantID: code.ParticipantID.String(),
		ElectionID:    code.ElectionID.String(),
		CandidateID:   code.CandidateID.String(),
		CodeHash:      code.CodeHash,
		Destination:   code.Destination,
		IssuedAt:      code.IssuedAt,
		ExpiresAt:     code.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("marshal pending code: %w", err)
	}

	key := redisKey(code.Key())
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, fieldIssueID, code.IssueID.String(), fieldPayload, payload)
		pipe.PExpireAt(ctx, key, code.ExpiresAt.Add(s.retention))
		return nil
	})
	if err != nil {
		return unavailable("put", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, key models.CodeKey) (*models.PendingCode, error) {
	defer observe("get", time.Now())

	raw, err := s.client.HGet(ctx, redisKey(key), fieldPayload).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, unavailable("get", err)
	}

	var rec redisRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode pending code: %w", err)
	}
	return rec.toModel()
}

func (s *RedisStore) Delete(ctx context.Context, key models.CodeKey) error {
	defer observe("delete", time.Now())
	if err := s.client.Del(ctx, redisKey(key)).Err(); err != nil {
		return unavailable("delete", err)
	}
	return nil
}

func (s *RedisStore) CompareAndDelete(ctx context.Context, key models.CodeKey, issueID id.IssueID) (bool, error) {
	defer observe("compare_and_delete", time.Now())
	n, err := compareAndDeleteScript.Run(ctx, s.client, []string{redisKey(key)}, issueID.String()).Int()
	if err != nil {
		return false, unavailable("compare_and_delete", err)
	}
	return n == 1, nil
}

// DeleteExpired is a no-op: key TTLs evict entries once the retention
// window has passed.
func (s *RedisStore) DeleteExpired(context.Context, time.Time) (int, error) {
	return 0, nil
}

func (r redisRecord) toModel() (*models.PendingCode, error) {
	issueID, err := id.ParseIssueID(r.IssueID)
	if err != nil {
		return nil, fmt.Errorf("stored issue id: %w", err)
	}
	participantID, err := id.ParseParticipantID(r.ParticipantID)
	if err != nil {
		return nil, fmt.Errorf("stored participant id: %w", err)
	}
	electionID, err := id.ParseElectionID(r.ElectionID)
	if err != nil {
		return nil, fmt.Errorf("stored election id: %w", err)
	}
	candidateID, err := id.ParseCandidateID(r.CandidateID)
	if err != nil {
		return nil, fmt.Errorf("stored candidate id: %w", err)
	}
	return &models.PendingCode{
		IssueID:       issueID,
		ParticipantID: participantID,
		ElectionID:    electionID,
		CandidateID:   candidateID,
		CodeHash:      r.CodeHash,
		Destination:   r.Destination,
		IssuedAt:      r.IssuedAt,
		ExpiresAt:     r.ExpiresAt,
	}, nil
}
