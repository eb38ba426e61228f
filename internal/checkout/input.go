package checkout

import (
	"strings"

	"github.com/angelmondragon/libreria-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/libreria-backend/pkg/errors"
)

const (
	maxAddressLen    = 500
	maxNotesLen      = 500
	maxCardNumberLen = 19
	maxCardExpiryLen = 5
	maxCardCVVLen    = 4
)

// Input is the checkout form. Card fields are only read for card payments and
// are never stored.
type Input struct {
	ShippingAddress string
	PaymentMethod   string
	CardNumber      string
	CardExpiry      string
	CardCVV         string
	Notes           *string
}

// order is the validated subset of Input that reaches storage.
type order struct {
	address string
	method  enums.PaymentMethod
	notes   *string
}

// validate collects every field failure before anything touches the store.
func (in Input) validate() (order, error) {
	fields := pkgerrors.Fields{}

	address := strings.TrimSpace(in.ShippingAddress)
	fields.Required("shipping_address", address)
	fields.MaxLen("shipping_address", address, maxAddressLen)

	method, err := enums.ParsePaymentMethod(strings.TrimSpace(in.PaymentMethod))
	if err != nil {
		fields.Add("payment_method", "must be one of card, external_wallet, bank_transfer, cash_on_delivery")
	}
	if method.RequiresCard() {
		card := []struct {
			field string
			value string
			limit int
		}{
			{"card_number", strings.TrimSpace(in.CardNumber), maxCardNumberLen},
			{"card_expiry", strings.TrimSpace(in.CardExpiry), maxCardExpiryLen},
			{"card_cvv", strings.TrimSpace(in.CardCVV), maxCardCVVLen},
		}
		for _, c := range card {
			fields.Required(c.field, c.value)
			fields.MaxLen(c.field, c.value, c.limit)
		}
	}

	var notes *string
	if in.Notes != nil {
		if trimmed := strings.TrimSpace(*in.Notes); trimmed != "" {
			fields.MaxLen("notes", trimmed, maxNotesLen)
			notes = &trimmed
		}
	}

	if err := fields.Err(); err != nil {
		return order{}, err
	}
	return order{address: address, method: method, notes: notes}, nil
}
