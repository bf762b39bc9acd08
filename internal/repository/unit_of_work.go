package repository

import (
	"context"

	"github.com/uptrace/bun"
)

type txKey struct{}

// executor returns the transaction stored in ctx by UnitOfWork.Begin, or
// db when there is none.  Every repository query goes through it so that
// writes inside a unit of work share one transaction.
func executor(ctx context.Context, db *bun.DB) bun.IDB {
	if tx, ok := ctx.Value(txKey{}).(bun.Tx); ok {
		return tx
	}
	return db
}

// UnitOfWork scopes repository calls to a single database transaction
// carried in the context.
type UnitOfWork struct {
	db *bun.DB
}

func NewUnitOfWork(db *bun.DB) *UnitOfWork { return &UnitOfWork{db: db} }

// Begin starts a transaction and returns a context carrying it.  Pass the
// returned context to repositories, then to Commit or Rollback.
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return ctx, err
	}
	return context.WithValue(ctx, txKey{}, tx), nil
}

// Commit commits the transaction carried by ctx.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	tx, ok := ctx.Value(txKey{}).(bun.Tx)
	if !ok {
		return ErrNoTx
	}
	return tx.Commit()
}

// Rollback aborts the transaction carried by ctx.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	tx, ok := ctx.Value(txKey{}).(bun.Tx)
	if !ok {
		return ErrNoTx
	}
	return tx.Rollback()
}
