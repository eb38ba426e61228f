package controllers

import (
	"net/http"

	"github.com/angelmondragon/libreria-backend/api/responses"
	"github.com/angelmondragon/libreria-backend/api/validators"
	"github.com/angelmondragon/libreria-backend/internal/checkout"
	"github.com/angelmondragon/libreria-backend/internal/orders"
	"github.com/angelmondragon/libreria-backend/pkg/logger"
)

type checkoutRequest struct {
	ShippingAddress string  `json:"shipping_address"`
	PaymentMethod   string  `json:"payment_method"`
	CardNumber      string  `json:"card_number"`
	CardExpiry      string  `json:"card_expiry"`
	CardCVV         string  `json:"card_cvv"`
	Notes           *string `json:"notes"`
}

type checkoutResponse struct {
	Order    orders.OrderDTO `json:"order"`
	Lines    int             `json:"lines"`
	Subtotal string          `json:"subtotal"`
	Tax      string          `json:"tax"`
	Total    string          `json:"total"`
}

// Checkout converts the caller's cart into an order. Field validation lives in
// the service so the error details are the same for every client.
func Checkout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body checkoutRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Execute(r.Context(), userID, checkout.Input{
			ShippingAddress: body.ShippingAddress,
			PaymentMethod:   body.PaymentMethod,
			CardNumber:      body.CardNumber,
			CardExpiry:      body.CardExpiry,
			CardCVV:         body.CardCVV,
			Notes:           body.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			ctx := logg.WithFields(r.Context(), map[string]any{
				"order_id": result.Order.ID.String(),
				"total":    result.Total.StringFixed(2),
				"lines":    result.Lines,
			})
			logg.Info(ctx, "checkout.completed")
		}

		responses.WriteCreated(w, checkoutResponse{
			Order:    orders.NewOrderDTO(*result.Order),
			Lines:    result.Lines,
			Subtotal: result.Subtotal.StringFixed(2),
			Tax:      result.Tax.StringFixed(2),
			Total:    result.Total.StringFixed(2),
		})
	}
}
