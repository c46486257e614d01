package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"votecast/internal/election/models"
	"votecast/internal/platform/database"
	id "votecast/pkg/domain"
	"votecast/pkg/platform/sentinel"
	txcontext "votecast/pkg/platform/tx"
)

// SQLStore implements the election store on PostgreSQL or SQLite. Ballot
// writes join the transaction carried in ctx, so SQLStore itself is the
// models.BallotWriter handed to RunInTx callbacks.
type SQLStore struct {
	db *database.DB
}

func NewSQLStore(db *database.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) execer(ctx context.Context) txcontext.Executor {
	return txcontext.Execer(ctx, s.db.DB)
}

func (s *SQLStore) q(query string) string {
	return s.db.Dialect.Rebind(query)
}

func (s *SQLStore) CreateElection(ctx context.Context, e *models.Election) error {
	_, err := s.execer(ctx).ExecContext(ctx, s.q(`
		INSERT INTO elections (id, title, description, status, start_at, end_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), e.ID.String(), e.Title, e.Description, string(e.Status),
		database.ToMillis(e.StartAt), database.ToMillis(e.EndAt), database.ToMillis(e.CreatedAt))
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("election %s: %w", e.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert election: %w", err)
	}
	return nil
}

func (s *SQLStore) CreateCandidate(ctx context.Context, c *models.Candidate) error {
	_, err := s.execer(ctx).ExecContext(ctx, s.q(`
		INSERT INTO candidates (id, election_id, name, party, sort_order, status, vote_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), c.ID.String(), c.ElectionID.String(), c.Name, c.Party, c.Position, string(c.Status), c.VoteCount)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("candidate %s: %w", c.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert candidate: %w", err)
	}
	return nil
}

func (s *SQLStore) FindByID(ctx context.Context, electionID id.ElectionID) (*models.Election, error) {
	row := s.execer(ctx).QueryRowContext(ctx, s.q(`
		SELECT id, title, description, status, start_at, end_at, created_at
		FROM elections WHERE id = ?
	`), electionID.String())
	election, err := scanElection(row)
	if err != nil {
		return nil, err
	}

	candidates, err := s.FindCandidates(ctx, electionID)
	if err != nil {
		return nil, err
	}
	for _, c := range candidates {
		election.Candidates = append(election.Candidates, c.ID)
	}
	return election, nil
}

// ListByStatus returns elections in any of the given statuses ordered by
// start time. Candidate order is not loaded.
func (s *SQLStore) ListByStatus(ctx context.Context, statuses ...models.Status) ([]*models.Election, error) {
	if len(statuses) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(statuses)), ", ")
	args := make([]any, len(statuses))
	for i, status := range statuses {
		args[i] = string(status)
	}

	rows, err := s.execer(ctx).QueryContext(ctx, s.q(`
		SELECT id, title, description, status, start_at, end_at, created_at
		FROM elections WHERE status IN (`+placeholders+`)
		ORDER BY start_at, id
	`), args...)
	if err != nil {
		return nil, fmt.Errorf("list elections: %w", err)
	}
	defer rows.Close()

	var out []*models.Election
	for rows.Next() {
		election, err := scanElection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, election)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate elections: %w", err)
	}
	return out, nil
}

func (s *SQLStore) FindCandidates(ctx context.Context, electionID id.ElectionID) ([]*models.Candidate, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, s.q(`
		SELECT id, election_id, name, party, sort_order, status, vote_count
		FROM candidates WHERE election_id = ?
		ORDER BY sort_order, id
	`), electionID.String())
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()

	var out []*models.Candidate
	for rows.Next() {
		var (
			c                  models.Candidate
			rawID, rawElection string
			status             string
		)
		if err := rows.Scan(&rawID, &rawElection, &c.Name, &c.Party, &c.Position, &status, &c.VoteCount); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		if c.ID, err = id.ParseCandidateID(rawID); err != nil {
			return nil, fmt.Errorf("stored candidate id %q: %w", rawID, err)
		}
		if c.ElectionID, err = id.ParseElectionID(rawElection); err != nil {
			return nil, fmt.Errorf("stored election id %q: %w", rawElection, err)
		}
		c.Status = models.CandidateStatus(status)
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}
	return out, nil
}

func (s *SQLStore) FindVoter(ctx context.Context, electionID id.ElectionID, participantID id.ParticipantID) (*models.VoterEntry, error) {
	entry := models.VoterEntry{ElectionID: electionID, ParticipantID: participantID}
	var votedAt int64
	err := s.execer(ctx).QueryRowContext(ctx, s.q(`
		SELECT has_voted, voted_at, transaction_hash, wallet_address
		FROM election_voters WHERE election_id = ? AND participant_id = ?
	`), electionID.String(), participantID.String()).
		Scan(&entry.HasVoted, &votedAt, &entry.TransactionHash, &entry.WalletAddress)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find voter: %w", err)
	}
	entry.VotedAt = database.FromMillis(votedAt)
	return &entry, nil
}

func (s *SQLStore) CountVoted(ctx context.Context, electionID id.ElectionID) (int64, error) {
	var n int64
	err := s.execer(ctx).QueryRowContext(ctx, s.q(`
		SELECT COUNT(1) FROM election_voters WHERE election_id = ? AND has_voted = ?
	`), electionID.String(), true).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count voters: %w", err)
	}
	return n, nil
}

func (s *SQLStore) Results(ctx context.Context, electionID id.ElectionID) ([]models.ResultEntry, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, s.q(`
		SELECT candidate_id, vote_count FROM election_results WHERE election_id = ?
	`), electionID.String())
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []models.ResultEntry
	for rows.Next() {
		var (
			raw   string
			entry = models.ResultEntry{ElectionID: electionID}
		)
		if err := rows.Scan(&raw, &entry.VoteCount); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if entry.CandidateID, err = id.ParseCandidateID(raw); err != nil {
			return nil, fmt.Errorf("stored candidate id %q: %w", raw, err)
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return out, nil
}

func (s *SQLStore) History(ctx context.Context, participantID id.ParticipantID) ([]models.VoteRecord, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, s.q(`
		SELECT h.election_id, e.title, h.voted_at, h.transaction_hash, h.verified
		FROM voting_history h
		JOIN elections e ON e.id = h.election_id
		WHERE h.participant_id = ?
		ORDER BY h.voted_at DESC
	`), participantID.String())
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []models.VoteRecord
	for rows.Next() {
		var (
			record  = models.VoteRecord{ParticipantID: participantID}
			raw     string
			votedAt int64
		)
		if err := rows.Scan(&raw, &record.ElectionTitle, &votedAt, &record.TransactionHash, &record.Verified); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		if record.ElectionID, err = id.ParseElectionID(raw); err != nil {
			return nil, fmt.Errorf("stored election id %q: %w", raw, err)
		}
		record.VotedAt = database.FromMillis(votedAt)
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return out, nil
}

// SetStatus moves an election to a new lifecycle state.
func (s *SQLStore) SetStatus(ctx context.Context, electionID id.ElectionID, status models.Status) error {
	res, err := s.execer(ctx).ExecContext(ctx, s.q(`
		UPDATE elections SET status = ? WHERE id = ?
	`), string(status), electionID.String())
	if err != nil {
		return fmt.Errorf("set election status: %w", err)
	}
	return requireRow(res)
}

func (s *SQLStore) IncrementVoteCount(ctx context.Context, candidateID id.CandidateID) error {
	res, err := s.execer(ctx).ExecContext(ctx, s.q(`
		UPDATE candidates SET vote_count = vote_count + 1 WHERE id = ?
	`), candidateID.String())
	if err != nil {
		return fmt.Errorf("increment candidate count: %w", err)
	}
	return requireRow(res)
}

func (s *SQLStore) SetVoteCount(ctx context.Context, candidateID id.CandidateID, count int64) error {
	res, err := s.execer(ctx).ExecContext(ctx, s.q(`
		UPDATE candidates SET vote_count = ? WHERE id = ?
	`), count, candidateID.String())
	if err != nil {
		return fmt.Errorf("set candidate count: %w", err)
	}
	return requireRow(res)
}

// MarkVoted is a conditional upsert: the update branch only fires while
// has_voted is false, so a second ballot affects zero rows.
func (s *SQLStore) MarkVoted(ctx context.Context, entry models.VoterEntry) error {
	res, err := s.execer(ctx).ExecContext(ctx, s.q(`
		INSERT INTO election_voters (election_id, participant_id, has_voted, voted_at, transaction_hash, wallet_address)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (election_id, participant_id) DO UPDATE SET
			has_voted = excluded.has_voted,
			voted_at = excluded.voted_at,
			transaction_hash = excluded.transaction_hash,
			wallet_address = excluded.wallet_address
		WHERE election_voters.has_voted = ?
	`), entry.ElectionID.String(), entry.ParticipantID.String(), true,
		database.ToMillis(entry.VotedAt), entry.TransactionHash, entry.WalletAddress, false)
	if err != nil {
		return fmt.Errorf("mark voted: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark voted rows: %w", err)
	}
	if n == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *SQLStore) IncrementResult(ctx context.Context, electionID id.ElectionID, candidateID id.CandidateID) error {
	_, err := s.execer(ctx).ExecContext(ctx, s.q(`
		INSERT INTO election_results (election_id, candidate_id, vote_count)
		VALUES (?, ?, 1)
		ON CONFLICT (election_id, candidate_id) DO UPDATE SET
			vote_count = election_results.vote_count + 1
	`), electionID.String(), candidateID.String())
	if err != nil {
		return fmt.Errorf("increment result: %w", err)
	}
	return nil
}

func (s *SQLStore) AppendHistory(ctx context.Context, record models.VoteRecord) error {
	_, err := s.execer(ctx).ExecContext(ctx, s.q(`
		INSERT INTO voting_history (participant_id, election_id, voted_at, transaction_hash, verified)
		VALUES (?, ?, ?, ?, ?)
	`), record.ParticipantID.String(), record.ElectionID.String(),
		database.ToMillis(record.VotedAt), record.TransactionHash, record.Verified)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("history for election %s: %w", record.ElectionID, sentinel.ErrConflict)
		}
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanElection(row rowScanner) (*models.Election, error) {
	var (
		e                         models.Election
		rawID, status             string
		startAt, endAt, createdAt int64
	)
	if err := row.Scan(&rawID, &e.Title, &e.Description, &status, &startAt, &endAt, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan election: %w", err)
	}
	electionID, err := id.ParseElectionID(rawID)
	if err != nil {
		return nil, fmt.Errorf("stored election id %q: %w", rawID, err)
	}
	e.ID = electionID
	e.Status = models.Status(status)
	e.StartAt = database.FromMillis(startAt)
	e.EndAt = database.FromMillis(endAt)
	e.CreatedAt = database.FromMillis(createdAt)
	return &e, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
