package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CRUD is the generic data access shared by every administered entity. Writes
// never cascade into preloaded associations.
type CRUD[T any] struct {
	Base
	preloads []string
	order    string
}

// CRUDOption tunes list and lookup queries.
type CRUDOption func(*crudOptions)

type crudOptions struct {
	preloads []string
	order    string
}

// WithPreload loads the named associations on List and Find.
func WithPreload(associations ...string) CRUDOption {
	return func(o *crudOptions) {
		o.preloads = append(o.preloads, associations...)
	}
}

// WithOrder sets the ORDER BY clause used by List.
func WithOrder(order string) CRUDOption {
	return func(o *crudOptions) {
		o.order = order
	}
}

func NewCRUD[T any](db *gorm.DB, opts ...CRUDOption) *CRUD[T] {
	var o crudOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &CRUD[T]{Base: NewBase(db), preloads: o.preloads, order: o.order}
}

// WithTx returns a copy bound to tx.
func (r *CRUD[T]) WithTx(tx *gorm.DB) *CRUD[T] {
	if tx == nil {
		return r
	}
	clone := *r
	clone.Base = r.Base.Bind(tx)
	return &clone
}

// Query returns a statement with the configured preloads applied.
func (r *CRUD[T]) Query(ctx context.Context) *gorm.DB {
	q := r.DB(ctx)
	for _, assoc := range r.preloads {
		q = q.Preload(assoc)
	}
	return q
}

func (r *CRUD[T]) List(ctx context.Context) ([]T, error) {
	q := r.Query(ctx)
	if r.order != "" {
		q = q.Order(r.order)
	}
	var rows []T
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Find returns gorm.ErrRecordNotFound when no row has the id.
func (r *CRUD[T]) Find(ctx context.Context, id uuid.UUID) (*T, error) {
	var row T
	if err := r.Query(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *CRUD[T]) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.DB(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CRUD[T]) Create(ctx context.Context, row *T) error {
	return r.DB(ctx).Omit(clause.Associations).Create(row).Error
}

// Save writes every column of an already loaded row.
func (r *CRUD[T]) Save(ctx context.Context, row *T) error {
	return r.DB(ctx).Omit(clause.Associations).Save(row).Error
}

// Delete removes the row by id, returning gorm.ErrRecordNotFound when nothing
// was deleted. Dependent rows follow the schema's ON DELETE rules.
func (r *CRUD[T]) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.DB(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CRUD[T]) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.DB(ctx).Model(new(T)).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
