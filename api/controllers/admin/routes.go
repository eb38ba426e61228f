package admin

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/libreria-backend/api/middleware"
	"github.com/angelmondragon/libreria-backend/api/responses"
	adminsvc "github.com/angelmondragon/libreria-backend/internal/admin"
	"github.com/angelmondragon/libreria-backend/internal/inventory"
	"github.com/angelmondragon/libreria-backend/pkg/db/models"
	"github.com/angelmondragon/libreria-backend/pkg/logger"
)

// Resources are the guarded back-office services.
type Resources struct {
	Categories adminsvc.CategoryResource
	Suppliers  adminsvc.SupplierResource
	Books      adminsvc.BookResource
	Inventory  adminsvc.InventoryResource
	Orders     adminsvc.OrderResource
	Users      adminsvc.UserResource
	Dashboard  adminsvc.Dashboard
	LowStock   lowStockLister
}

type lowStockLister interface {
	LowStock(ctx context.Context) ([]models.Inventory, error)
}

// Routes registers the dashboard and every resource under r.
func Routes(r chi.Router, res Resources, logg *logger.Logger) {
	r.Get("/dashboard", Dashboard(res.Dashboard, logg))
	r.Route("/categories", func(r chi.Router) {
		Mount(r, res.Categories, JSON(toCategoryInput), JSON(toCategoryInput), logg)
	})
	r.Route("/suppliers", func(r chi.Router) {
		Mount(r, res.Suppliers, JSON(toSupplierInput), JSON(toSupplierInput), logg)
	})
	r.Route("/books", func(r chi.Router) {
		Mount(r, res.Books, JSON(toBookInput), JSON(toBookInput), logg)
	})
	r.Route("/inventory", func(r chi.Router) {
		r.Get("/low-stock", LowStock(res.LowStock, logg))
		Mount(r, res.Inventory, JSON(toInventoryCreateInput), JSON(toInventoryUpdateInput), logg)
	})
	r.Route("/orders", func(r chi.Router) {
		Mount(r, res.Orders, JSON(toOrderCreateInput), JSON(toOrderUpdateInput), logg)
	})
	r.Route("/users", func(r chi.Router) {
		Mount(r, res.Users, JSON(toUserCreateInput), JSON(toUserUpdateInput), logg)
	})
}

func Dashboard(svc adminsvc.Dashboard, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := svc.Summary(r.Context(), middleware.PrincipalFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// LowStock lists the rows at or below their reorder threshold.
func LowStock(svc lowStockLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := middleware.PrincipalFromContext(r.Context()).RequireAdmin(); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.LowStock(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, inventory.NewItemDTOs(rows))
	}
}
