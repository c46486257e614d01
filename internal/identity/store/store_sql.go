package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"votecast/internal/identity/models"
	"votecast/internal/platform/database"
	id "votecast/pkg/domain"
	"votecast/pkg/platform/sentinel"
)

// SQLStore reads participants from the participants table.
type SQLStore struct {
	db *database.DB
}

func NewSQLStore(db *database.DB) *SQLStore {
	return &SQLStore{db: db}
}

const participantColumns = `id, email, name, role, is_verified, wallet_address, created_at`

func (s *SQLStore) Save(ctx context.Context, p *models.Participant) error {
	query := s.db.Dialect.Rebind(`
		INSERT INTO participants (` + participantColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			email = excluded.email,
			name = excluded.name,
			role = excluded.role,
			is_verified = excluded.is_verified,
			wallet_address = excluded.wallet_address
	`)
	_, err := s.db.ExecContext(ctx, query,
		p.ID.String(), p.Email, p.Name, string(p.Role), p.Verified, p.WalletAddress, database.ToMillis(p.CreatedAt))
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("email %s: %w", p.Email, sentinel.ErrConflict)
		}
		return fmt.Errorf("save participant: %w", err)
	}
	return nil
}

func (s *SQLStore) FindByID(ctx context.Context, participantID id.ParticipantID) (*models.Participant, error) {
	query := s.db.Dialect.Rebind(`SELECT ` + participantColumns + ` FROM participants WHERE id = ?`)
	return s.scanOne(s.db.QueryRowContext(ctx, query, participantID.String()))
}

func (s *SQLStore) FindByEmail(ctx context.Context, address string) (*models.Participant, error) {
	query := s.db.Dialect.Rebind(`SELECT ` + participantColumns + ` FROM participants WHERE email = ?`)
	return s.scanOne(s.db.QueryRowContext(ctx, query, address))
}

func (s *SQLStore) scanOne(row *sql.Row) (*models.Participant, error) {
	var (
		p         models.Participant
		rawID     string
		role      string
		createdAt int64
	)
	if err := row.Scan(&rawID, &p.Email, &p.Name, &role, &p.Verified, &p.WalletAddress, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find participant: %w", err)
	}
	participantID, err := id.ParseParticipantID(rawID)
	if err != nil {
		return nil, fmt.Errorf("stored participant id %q: %w", rawID, err)
	}
	p.ID = participantID
	p.Role = models.Role(role)
	p.CreatedAt = database.FromMillis(createdAt)
	return &p, nil
}
