package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/libreria-backend/api/responses"
	"github.com/angelmondragon/libreria-backend/api/validators"
	"github.com/angelmondragon/libreria-backend/internal/catalog"
	"github.com/angelmondragon/libreria-backend/pkg/logger"
)

const maxSearchQueryLen = 200

type cartCounter interface {
	Count(ctx context.Context, userID uuid.UUID) (int64, error)
}

type storefrontResponse struct {
	Categories []catalog.CategoryDTO `json:"categories"`
	CartCount  int64                 `json:"cart_count"`
}

type categoryBooksResponse struct {
	Category catalog.CategoryDTO `json:"category"`
	Books    []catalog.BookDTO   `json:"books"`
}

// CatalogCategories returns the featured categories together with the
// caller's cart line count.
func CatalogCategories(svc catalog.Service, carts cartCounter, featured []string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		categories, err := svc.FeaturedCategories(r.Context(), featured)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		count, err := carts.Count(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, storefrontResponse{
			Categories: catalog.NewCategoryDTOs(categories),
			CartCount:  count,
		})
	}
}

func CatalogCategoryBooks(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := requireUserID(r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		categoryID, err := validators.URLParamUUID(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.GetCategory(r.Context(), categoryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		books, err := svc.BooksByCategory(r.Context(), categoryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categoryBooksResponse{
			Category: catalog.NewCategoryDTO(*category),
			Books:    catalog.NewBookDTOs(books),
		})
	}
}

// CatalogSearch filters books by free text, category and price range. Every
// parameter is optional.
func CatalogSearch(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := requireUserID(r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := catalog.SearchQuery{
			Query: validators.SanitizeString(r.URL.Query().Get("query"), maxSearchQueryLen),
		}
		var err error
		if query.CategoryID, err = validators.ParseQueryUUID(r, "category_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if query.MinPrice, err = validators.ParseQueryDecimal(r, "min_price"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if query.MaxPrice, err = validators.ParseQueryDecimal(r, "max_price"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		books, err := svc.Search(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, catalog.NewBookDTOs(books))
	}
}

func CatalogBook(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := requireUserID(r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		bookID, err := validators.URLParamUUID(r, "bookId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		book, err := svc.GetBook(r.Context(), bookID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, catalog.NewBookDTO(*book))
	}
}
