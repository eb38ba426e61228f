// Package admin exposes every back-office resource through the same five
// routes.
package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/libreria-backend/api/middleware"
	"github.com/angelmondragon/libreria-backend/api/responses"
	"github.com/angelmondragon/libreria-backend/api/validators"
	adminsvc "github.com/angelmondragon/libreria-backend/internal/admin"
	"github.com/angelmondragon/libreria-backend/pkg/logger"
)

// Decoder turns a request body into a service input.
type Decoder[I any] func(r *http.Request) (I, error)

// JSON decodes the body into Req and converts it with convert.
func JSON[Req, I any](convert func(Req) (I, error)) Decoder[I] {
	return func(r *http.Request) (I, error) {
		var body Req
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			var zero I
			return zero, err
		}
		return convert(body)
	}
}

// Mount registers list, create, get, update and delete for res on r:
//
//	GET    /       POST /
//	GET    /{id}   PUT  /{id}   DELETE /{id}
func Mount[T, C, U any](r chi.Router, res adminsvc.Resource[T, C, U], create Decoder[C], update Decoder[U], logg *logger.Logger) {
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		rows, err := res.List(req.Context(), middleware.PrincipalFromContext(req.Context()))
		if err != nil {
			responses.WriteError(req.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	})

	r.Post("/", func(w http.ResponseWriter, req *http.Request) {
		input, err := create(req)
		if err != nil {
			responses.WriteError(req.Context(), logg, w, err)
			return
		}
		row, err := res.Create(req.Context(), middleware.PrincipalFromContext(req.Context()), input)
		if err != nil {
			responses.WriteError(req.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, row)
	})

	r.Get("/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, err := validators.URLParamUUID(req, "id")
		if err != nil {
			responses.WriteError(req.Context(), logg, w, err)
			return
		}
		row, err := res.Get(req.Context(), middleware.PrincipalFromContext(req.Context()), id)
		if err != nil {
			responses.WriteError(req.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	})

	r.Put("/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, err := validators.URLParamUUID(req, "id")
		if err != nil {
			responses.WriteError(req.Context(), logg, w, err)
			return
		}
		input, err := update(req)
		if err != nil {
			responses.WriteError(req.Context(), logg, w, err)
			return
		}
		row, err := res.Update(req.Context(), middleware.PrincipalFromContext(req.Context()), id, input)
		if err != nil {
			responses.WriteError(req.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	})

	r.Delete("/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, err := validators.URLParamUUID(req, "id")
		if err != nil {
			responses.WriteError(req.Context(), logg, w, err)
			return
		}
		if err := res.Delete(req.Context(), middleware.PrincipalFromContext(req.Context()), id); err != nil {
			responses.WriteError(req.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	})
}
