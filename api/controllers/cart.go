package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/libreria-backend/api/responses"
	"github.com/angelmondragon/libreria-backend/api/validators"
	"github.com/angelmondragon/libreria-backend/internal/cart"
	"github.com/angelmondragon/libreria-backend/pkg/logger"
)

type addLineRequest struct {
	BookID uuid.UUID `json:"book_id" validate:"required"`
}

func CartFetch(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		summary, err := svc.Summary(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart.NewSummaryDTO(summary))
	}
}

// CartAddLine adds one copy of a book. Posting the same book again increments
// the existing line; the response is the refreshed cart.
func CartAddLine(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body addLineRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if _, err := svc.AddLine(r.Context(), userID, body.BookID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		summary, err := svc.Summary(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, cart.NewSummaryDTO(summary))
	}
}
