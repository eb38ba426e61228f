package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/libreria-backend/internal/cart"
	"github.com/angelmondragon/libreria-backend/internal/orders"
	"github.com/angelmondragon/libreria-backend/internal/repo"
	"github.com/angelmondragon/libreria-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/libreria-backend/pkg/errors"
	"github.com/angelmondragon/libreria-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type orderRecorder interface {
	ObserveOrder(paymentMethod string, total decimal.Decimal)
}

// Service converts a user's cart into an order.
type Service interface {
	Execute(ctx context.Context, userID uuid.UUID, input Input) (*Result, error)
}

// Result is the created order plus the totals it was priced with.
type Result struct {
	Order *models.Order
	cart.Totals
	Lines int
}

type service struct {
	tx       txRunner
	cartRepo cart.LineRepository
	orders   orders.Repository
	recorder orderRecorder
}

// NewService builds the checkout service. A nil recorder disables metrics.
func NewService(tx txRunner, cartRepo cart.LineRepository, ordersRepo orders.Repository, recorder orderRecorder) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if recorder == nil {
		recorder = metrics.NewCheckoutMetrics(nil)
	}
	return &service{tx: tx, cartRepo: cartRepo, orders: ordersRepo, recorder: recorder}, nil
}

// Execute validates the form, then prices the locked cart lines, writes the
// order and empties the cart in one transaction. An empty cart yields a
// zero-total order. Stock is not decremented.
func (s *service) Execute(ctx context.Context, userID uuid.UUID, input Input) (*Result, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user required")
	}
	validated, err := input.validate()
	if err != nil {
		return nil, err
	}

	var result *Result
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		ordersRepo := s.orders.WithTx(tx)

		lines, err := cartRepo.LockLines(ctx, userID)
		if err != nil {
			return repo.Classify(err, "cart line", "lock")
		}
		totals := cart.ComputeTotals(lines)

		created := &models.Order{
			UserID:          userID,
			ShippingAddress: validated.address,
			PaymentMethod:   validated.method,
			Notes:           validated.notes,
			Total:           totals.Total,
		}
		if err := ordersRepo.Create(ctx, created); err != nil {
			return repo.Classify(err, "order", "create")
		}
		if _, err := cartRepo.DeleteByUser(ctx, userID); err != nil {
			return repo.Classify(err, "cart line", "clear")
		}

		result = &Result{Order: created, Totals: totals, Lines: len(lines)}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recorder.ObserveOrder(result.Order.PaymentMethod.String(), result.Total)
	return result, nil
}
