package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"votecast/internal/election/models"
	id "votecast/pkg/domain"
	dErrors "votecast/pkg/domain-errors"
	"votecast/pkg/platform/sentinel"
)

// numBallotShards spreads elections across locks so unrelated elections do
// not serialize on each other.
const numBallotShards = 128

// DefaultTxTimeout bounds a ballot transaction when the caller set no deadline.
const DefaultTxTimeout = 5 * time.Second

// txSettings is shared by the transaction runners.
type txSettings struct {
	timeout time.Duration
}

type TxOption func(*txSettings)

// WithTxTimeout replaces DefaultTxTimeout. Non-positive values are ignored.
func WithTxTimeout(d time.Duration) TxOption {
	return func(s *txSettings) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func newTxSettings(opts []TxOption) txSettings {
	s := txSettings{timeout: DefaultTxTimeout}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// ShardedTx runs ballot writes against an InMemoryStore. Writes are staged
// in a batch and applied together only if fn returns nil.
type ShardedTx struct {
	txSettings
	shards [numBallotShards]sync.Mutex
	store  *InMemoryStore
}

func NewShardedTx(store *InMemoryStore, opts ...TxOption) *ShardedTx {
	return &ShardedTx{store: store, txSettings: newTxSettings(opts)}
}

func (t *ShardedTx) RunInTx(ctx context.Context, electionID id.ElectionID, fn func(ctx context.Context, w models.BallotWriter) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	shard := &t.shards[hashElection(electionID)%numBallotShards]
	shard.Lock()
	defer shard.Unlock()

	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	batch := &memoryBatch{
		store:   t.store,
		voters:  make(map[voterKey]models.VoterEntry),
		results: make(map[resultKey]int64),
	}
	if err := fn(ctx, batch); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted before commit")
	}
	t.store.apply(batch)
	return nil
}

// hashElection is FNV-1a over the UUID bytes.
func hashElection(electionID id.ElectionID) uint32 {
	const (
		fnvOffset = 2166136261
		fnvPrime  = 16777619
	)
	h := uint32(fnvOffset)
	for _, b := range electionID {
		h ^= uint32(b)
		h *= fnvPrime
	}
	return h
}

// memoryBatch stages writes for one transaction.
type memoryBatch struct {
	store   *InMemoryStore
	voters  map[voterKey]models.VoterEntry
	results map[resultKey]int64
	history []models.VoteRecord
}

func (b *memoryBatch) MarkVoted(_ context.Context, entry models.VoterEntry) error {
	key := voterKey{entry.ElectionID, entry.ParticipantID}
	if staged, ok := b.voters[key]; ok && staged.HasVoted {
		return sentinel.ErrConflict
	}
	if b.store.hasVoted(key) {
		return sentinel.ErrConflict
	}
	entry.HasVoted = true
	b.voters[key] = entry
	return nil
}

func (b *memoryBatch) IncrementResult(_ context.Context, electionID id.ElectionID, candidateID id.CandidateID) error {
	b.results[resultKey{electionID, candidateID}]++
	return nil
}

func (b *memoryBatch) AppendHistory(_ context.Context, record models.VoteRecord) error {
	for _, staged := range b.history {
		if staged.ParticipantID == record.ParticipantID && staged.ElectionID == record.ElectionID {
			return fmt.Errorf("history for election %s: %w", record.ElectionID, sentinel.ErrConflict)
		}
	}
	if b.store.hasHistory(record.ParticipantID, record.ElectionID) {
		return fmt.Errorf("history for election %s: %w", record.ElectionID, sentinel.ErrConflict)
	}
	b.history = append(b.history, record)
	return nil
}
