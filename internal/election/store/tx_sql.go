package store

import (
	"context"

	"votecast/internal/election/models"
	id "votecast/pkg/domain"
	dErrors "votecast/pkg/domain-errors"
	txcontext "votecast/pkg/platform/tx"
)

// SQLTx runs ballot writes in one database transaction. The transaction
// travels in ctx, and the SQLStore passed to fn picks it up.
type SQLTx struct {
	txSettings
	store *SQLStore
}

func NewSQLTx(store *SQLStore, opts ...TxOption) *SQLTx {
	return &SQLTx{store: store, txSettings: newTxSettings(opts)}
}

func (t *SQLTx) RunInTx(ctx context.Context, _ id.ElectionID, fn func(ctx context.Context, w models.BallotWriter) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	tx, err := t.store.db.BeginTx(ctx, nil)
	if err != nil {
		if ctx.Err() != nil {
			return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
		}
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "begin ballot transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(txcontext.WithTx(ctx, tx), t.store); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		if ctx.Err() != nil {
			return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted before commit")
		}
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "commit ballot transaction")
	}
	return nil
}
