package seed

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/libreria-backend/pkg/db/dbtest"
	"github.com/angelmondragon/libreria-backend/pkg/db/models"
	"github.com/angelmondragon/libreria-backend/pkg/logger"
)

func quietLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "seed-test", Output: io.Discard})
}

func TestCatalogCreatesStockedShelves(t *testing.T) {
	client := dbtest.Open(t)
	ctx := context.Background()

	result, err := Catalog(ctx, client, quietLogger(), Options{})
	require.NoError(t, err)
	require.Equal(t, Result{Categories: 3, Books: 30}, result)

	var books []models.Book
	require.NoError(t, client.DB().Preload("Supplier").Order("image_url").Find(&books).Error)
	require.Len(t, books, 30)
	for _, book := range books {
		require.NotNil(t, book.Supplier)
		require.Equal(t, SupplierName, book.Supplier.Name)
	}

	var stocked int64
	require.NoError(t, client.DB().Model(&models.Inventory{}).Where("quantity = ?", initialQuantity).Count(&stocked).Error)
	require.EqualValues(t, 30, stocked)

	var first models.Book
	require.NoError(t, client.DB().Where("title = ?", "Veinte poemas de amor").First(&first).Error)
	require.Equal(t, "280.00", first.Price.StringFixed(2))
	require.Equal(t, "/static/images/p1.jpg", first.ImageURL)
}

func TestCatalogSkipsExistingTitles(t *testing.T) {
	client := dbtest.Open(t)
	ctx := context.Background()
	poesia := dbtest.Category(t, client.DB(), "Poesía")
	dbtest.Book(t, client.DB(), poesia.ID, "Piedra de sol", "340.00")

	result, err := Catalog(ctx, client, quietLogger(), Options{})
	require.NoError(t, err)
	require.Equal(t, Result{Categories: 2, Books: 29, Skipped: 1}, result)

	again, err := Catalog(ctx, client, quietLogger(), Options{})
	require.NoError(t, err)
	require.Equal(t, Result{Skipped: 30}, again)
}

func TestCatalogResetReplacesBooks(t *testing.T) {
	client := dbtest.Open(t)
	ctx := context.Background()
	user := dbtest.User(t, client.DB(), "lectora", false)
	misc := dbtest.Category(t, client.DB(), "Ensayo")
	old := dbtest.Book(t, client.DB(), misc.ID, "Viejo", "99.00")
	dbtest.CartLine(t, client.DB(), user.ID, old.ID, 1)

	result, err := Catalog(ctx, client, quietLogger(), Options{Reset: true})
	require.NoError(t, err)
	require.Equal(t, 30, result.Books)

	var books, lines int64
	require.NoError(t, client.DB().Model(&models.Book{}).Count(&books).Error)
	require.NoError(t, client.DB().Model(&models.CartLine{}).Count(&lines).Error)
	require.EqualValues(t, 30, books)
	require.Zero(t, lines)
}
