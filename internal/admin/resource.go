// Package admin is the back-office: one generic resource contract for every
// managed entity, a guard that re-checks the admin tier on each call, and the
// dashboard summary.
package admin

import (
	"context"

	"github.com/google/uuid"

	"github.com/angelmondragon/libreria-backend/internal/access"
)

// Resource is the CRUD surface of an administered entity. T is the value
// returned to callers, C and U are the create and update inputs.
type Resource[T, C, U any] interface {
	List(ctx context.Context, p access.Principal) ([]T, error)
	Get(ctx context.Context, p access.Principal, id uuid.UUID) (T, error)
	Create(ctx context.Context, p access.Principal, input C) (T, error)
	Update(ctx context.Context, p access.Principal, id uuid.UUID, input U) (T, error)
	Delete(ctx context.Context, p access.Principal, id uuid.UUID) error
}

// Guard wraps r so every operation first requires an admin principal.
func Guard[T, C, U any](r Resource[T, C, U]) Resource[T, C, U] {
	return guarded[T, C, U]{next: r}
}

type guarded[T, C, U any] struct {
	next Resource[T, C, U]
}

func (g guarded[T, C, U]) List(ctx context.Context, p access.Principal) ([]T, error) {
	if err := p.RequireAdmin(); err != nil {
		return nil, err
	}
	return g.next.List(ctx, p)
}

func (g guarded[T, C, U]) Get(ctx context.Context, p access.Principal, id uuid.UUID) (T, error) {
	if err := p.RequireAdmin(); err != nil {
		var zero T
		return zero, err
	}
	return g.next.Get(ctx, p, id)
}

func (g guarded[T, C, U]) Create(ctx context.Context, p access.Principal, input C) (T, error) {
	if err := p.RequireAdmin(); err != nil {
		var zero T
		return zero, err
	}
	return g.next.Create(ctx, p, input)
}

func (g guarded[T, C, U]) Update(ctx context.Context, p access.Principal, id uuid.UUID, input U) (T, error) {
	if err := p.RequireAdmin(); err != nil {
		var zero T
		return zero, err
	}
	return g.next.Update(ctx, p, id, input)
}

func (g guarded[T, C, U]) Delete(ctx context.Context, p access.Principal, id uuid.UUID) error {
	if err := p.RequireAdmin(); err != nil {
		return err
	}
	return g.next.Delete(ctx, p, id)
}

// Ops are the model-level operations of a service that does not care who the
// actor is.
type Ops[M, C, U any] struct {
	List   func(ctx context.Context) ([]M, error)
	Get    func(ctx context.Context, id uuid.UUID) (*M, error)
	Create func(ctx context.Context, input C) (*M, error)
	Update func(ctx context.Context, id uuid.UUID, input U) (*M, error)
	Delete func(ctx context.Context, id uuid.UUID) error
}

// FromOps adapts ops into a Resource, rendering each model through view.
func FromOps[M, T, C, U any](ops Ops[M, C, U], view func(M) T) Resource[T, C, U] {
	return opsResource[M, T, C, U]{ops: ops, view: view}
}

type opsResource[M, T, C, U any] struct {
	ops  Ops[M, C, U]
	view func(M) T
}

func (r opsResource[M, T, C, U]) List(ctx context.Context, _ access.Principal) ([]T, error) {
	rows, err := r.ops.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.view(row))
	}
	return out, nil
}

func (r opsResource[M, T, C, U]) Get(ctx context.Context, _ access.Principal, id uuid.UUID) (T, error) {
	return r.one(r.ops.Get(ctx, id))
}

func (r opsResource[M, T, C, U]) Create(ctx context.Context, _ access.Principal, input C) (T, error) {
	return r.one(r.ops.Create(ctx, input))
}

func (r opsResource[M, T, C, U]) Update(ctx context.Context, _ access.Principal, id uuid.UUID, input U) (T, error) {
	return r.one(r.ops.Update(ctx, id, input))
}

func (r opsResource[M, T, C, U]) Delete(ctx context.Context, _ access.Principal, id uuid.UUID) error {
	return r.ops.Delete(ctx, id)
}

func (r opsResource[M, T, C, U]) one(row *M, err error) (T, error) {
	if err != nil || row == nil {
		var zero T
		return zero, err
	}
	return r.view(*row), nil
}
