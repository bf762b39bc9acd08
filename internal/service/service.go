// Package service implements the application layer.  Services resolve the
// current tenant, validate input, enforce the booking rules and run every
// write inside a unit of work.
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-control/internal/queue"
	"github.com/iliyamo/cinema-control/internal/repository"
)

// TenantProvider resolves the authenticated user for a request.  Records
// created through a service belong to that user.
type TenantProvider interface {
	UserID(ctx context.Context) uuid.UUID
}

// UnitOfWork scopes a group of repository writes to one transaction.
// Begin returns the context repositories must receive.
type UnitOfWork interface {
	Begin(ctx context.Context) (context.Context, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// EventPublisher announces committed ticket purchases.
type EventPublisher interface {
	PublishTicketPurchased(ctx context.Context, ev queue.TicketPurchasedEvent) error
}

// base carries what every service needs.
type base struct {
	uow    UnitOfWork
	tenant TenantProvider
	log    *zap.Logger
}

func newBase(uow UnitOfWork, tenant TenantProvider, log *zap.Logger) base {
	if log == nil {
		log = zap.NewNop()
	}
	return base{uow: uow, tenant: tenant, log: log}
}

// write runs fn inside a unit of work.  Any failure rolls back once.
// Domain errors returned by fn are passed through; anything else is logged
// and reported as ErrInternal.
func (b base) write(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	txCtx, err := b.uow.Begin(ctx)
	if err != nil {
		return b.internal(op+": begin", err)
	}
	if err := fn(txCtx); err != nil {
		b.rollback(txCtx, op)
		if isDomainError(err) {
			return err
		}
		return b.internal(op, err)
	}
	if err := b.uow.Commit(txCtx); err != nil {
		b.rollback(txCtx, op)
		return b.internal(op+": commit", err)
	}
	return nil
}

func (b base) rollback(ctx context.Context, op string) {
	if err := b.uow.Rollback(ctx); err != nil {
		b.log.Warn("rollback failed", zap.String("op", op), zap.Error(err))
	}
}

// internal logs err and returns ErrInternal.
func (b base) internal(op string, err error) error {
	b.log.Error("repository failure", zap.String("op", op), zap.Error(err))
	return ErrInternal
}

// found turns a repository (ok, err) pair into ErrNotFound when nothing
// matched.
func found(ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// lookup maps repository.ErrNotFound to ErrNotFound and anything else to
// ErrInternal.
func (b base) lookup(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return b.internal(op, err)
}
