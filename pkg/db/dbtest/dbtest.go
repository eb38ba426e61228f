// Package dbtest opens isolated sqlite databases carrying the bookstore
// schema, plus fixtures shared by store tests.
package dbtest

import (
	"fmt"
	"io"
	"log"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/angelmondragon/libreria-backend/pkg/config"
	"github.com/angelmondragon/libreria-backend/pkg/db"
	"github.com/angelmondragon/libreria-backend/pkg/db/models"
)

// Open returns a fresh in-memory database with foreign keys enforced and every
// model migrated. The database is closed when the test ends.
func Open(t testing.TB) *db.Client {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger: gormlogger.New(
			log.New(io.Discard, "", log.LstdFlags),
			gormlogger.Config{LogLevel: gormlogger.Silent},
		),
	})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, conn.AutoMigrate(models.All()...))
	return db.NewFromConn(conn, config.DriverSQLite)
}

func User(t testing.TB, conn *gorm.DB, username string, admin bool) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "not-a-real-hash",
		IsAdmin:      admin,
		IsActive:     true,
	}
	require.NoError(t, conn.Create(user).Error)
	return user
}

func Category(t testing.TB, conn *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	require.NoError(t, conn.Create(category).Error)
	return category
}

func Supplier(t testing.TB, conn *gorm.DB, name string) *models.Supplier {
	t.Helper()
	supplier := &models.Supplier{Name: name, Contact: "Admin", Phone: "000", Email: "x@x.com", Address: "CDMX"}
	require.NoError(t, conn.Create(supplier).Error)
	return supplier
}

// Book creates a book in category priced at price, e.g. "280.00".
func Book(t testing.TB, conn *gorm.DB, categoryID uuid.UUID, title, price string) *models.Book {
	t.Helper()
	book := &models.Book{
		Title:       title,
		Author:      "Autor de " + title,
		Description: "Edición especial de " + title,
		Price:       decimal.RequireFromString(price),
		CategoryID:  categoryID,
	}
	require.NoError(t, conn.Create(book).Error)
	return book
}

func Inventory(t testing.TB, conn *gorm.DB, bookID uuid.UUID, quantity, threshold int) *models.Inventory {
	t.Helper()
	row := &models.Inventory{BookID: bookID, Quantity: quantity, ReorderThreshold: threshold}
	require.NoError(t, conn.Create(row).Error)
	return row
}

func CartLine(t testing.TB, conn *gorm.DB, userID, bookID uuid.UUID, quantity int) *models.CartLine {
	t.Helper()
	line := &models.CartLine{UserID: userID, BookID: bookID, Quantity: quantity}
	require.NoError(t, conn.Create(line).Error)
	return line
}
