// Package seed loads the starter catalog used by local and demo environments.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/angelmondragon/libreria-backend/pkg/db/models"
	"github.com/angelmondragon/libreria-backend/pkg/logger"
)

const (
	SupplierName    = "Editorial General"
	initialQuantity = 20
)

type title struct {
	name   string
	author string
	price  int64
}

type shelf struct {
	category string
	prefix   string
	titles   []title
}

var catalog = []shelf{
	{category: "Poesía", prefix: "p", titles: []title{
		{"Veinte poemas de amor", "Pablo Neruda", 280},
		{"Poeta en Nueva York", "Federico García Lorca", 320},
		{"Rimas y Leyendas", "Gustavo Adolfo Bécquer", 250},
		{"La voz a ti debida", "Pedro Salinas", 290},
		{"Los heraldos negros", "César Vallejo", 310},
		{"Piedra de sol", "Octavio Paz", 340},
		{"La rosa separada", "Pablo Neruda", 300},
		{"Antología poética", "Mario Benedetti", 260},
		{"Cántico", "Jorge Guillén", 270},
		{"Los versos del capitán", "Pablo Neruda", 295},
	}},
	{category: "Novela", prefix: "n", titles: []title{
		{"Cien años de soledad", "Gabriel García Márquez", 450},
		{"Don Quijote de la Mancha", "Miguel de Cervantes", 520},
		{"Orgullo y prejuicio", "Jane Austen", 380},
		{"1984", "George Orwell", 420},
		{"Crimen y castigo", "Fiódor Dostoyevski", 490},
		{"Rayuela", "Julio Cortázar", 510},
		{"La sombra del viento", "Carlos Ruiz Zafón", 390},
		{"El amor en los tiempos del cólera", "Gabriel García Márquez", 430},
		{"Los miserables", "Víctor Hugo", 580},
		{"El nombre de la rosa", "Umberto Eco", 470},
	}},
	{category: "Historia", prefix: "h", titles: []title{
		{"Sapiens", "Yuval Noah Harari", 550},
		{"Breve historia del mundo", "Ernst H. Gombrich", 480},
		{"Historia mínima de México", "Daniel Cosío Villegas", 350},
		{"Los cañones de agosto", "Barbara W. Tuchman", 520},
		{"Historia de Roma", "Indro Montanelli", 420},
		{"Armas, gérmenes y acero", "Jared Diamond", 590},
		{"La guerra del Peloponeso", "Tucídides", 380},
		{"El siglo XX", "Eric Hobsbawm", 610},
		{"Historia de las mujeres", "Michelle Perrot", 680},
		{"Vida privada", "Philippe Ariès", 540},
	}},
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Options controls a catalog load.
type Options struct {
	// Reset removes every existing book, with its stock and cart lines, first.
	Reset bool
}

// Result counts what a load created.
type Result struct {
	Categories int
	Books      int
	Skipped    int
}

// Catalog creates the three starter categories, the shared supplier and ten
// stocked books per category. Titles already present in their category are
// skipped, so running it twice without Reset is harmless. Per-book failures
// are collected into one error and the whole load rolls back.
func Catalog(ctx context.Context, tx txRunner, logg *logger.Logger, opts Options) (Result, error) {
	var result Result
	err := tx.WithTx(ctx, func(conn *gorm.DB) error {
		if opts.Reset {
			if err := reset(conn); err != nil {
				return err
			}
			logg.Warn(ctx, "existing books removed")
		}

		supplier, err := supplierFor(conn)
		if err != nil {
			return err
		}

		var errs error
		for _, s := range catalog {
			category, created, err := categoryFor(conn, s.category)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			if created {
				result.Categories++
			}
			for i, t := range s.titles {
				added, err := stockBook(conn, category, supplier, s.prefix, i+1, t)
				switch {
				case err != nil:
					errs = multierr.Append(errs, fmt.Errorf("%s %q: %w", s.category, t.name, err))
				case added:
					result.Books++
				default:
					result.Skipped++
				}
			}
		}
		return errs
	})
	if err != nil {
		return Result{}, err
	}

	logg.Info(logg.WithFields(ctx, map[string]any{
		"categories_created": result.Categories,
		"books_created":      result.Books,
		"books_skipped":      result.Skipped,
	}), "catalog seeded")
	return result, nil
}

func reset(conn *gorm.DB) error {
	for _, model := range []any{&models.CartLine{}, &models.Inventory{}, &models.Book{}} {
		if err := conn.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("reset %T: %w", model, err)
		}
	}
	return nil
}

func supplierFor(conn *gorm.DB) (*models.Supplier, error) {
	supplier := models.Supplier{}
	err := conn.Where(models.Supplier{Name: SupplierName}).
		Attrs(models.Supplier{Contact: "Admin", Phone: "000", Email: "x@x.com", Address: "CDMX"}).
		FirstOrCreate(&supplier).Error
	if err != nil {
		return nil, fmt.Errorf("supplier %q: %w", SupplierName, err)
	}
	return &supplier, nil
}

func categoryFor(conn *gorm.DB, name string) (*models.Category, bool, error) {
	var category models.Category
	err := conn.Where("name = ?", name).First(&category).Error
	if err == nil {
		return &category, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("category %q: %w", name, err)
	}
	category = models.Category{Name: name}
	if err := conn.Create(&category).Error; err != nil {
		return nil, false, fmt.Errorf("create category %q: %w", name, err)
	}
	return &category, true, nil
}

func stockBook(conn *gorm.DB, category *models.Category, supplier *models.Supplier, prefix string, n int, t title) (bool, error) {
	var existing int64
	if err := conn.Model(&models.Book{}).
		Where("category_id = ? AND title = ?", category.ID, t.name).
		Count(&existing).Error; err != nil {
		return false, err
	}
	if existing > 0 {
		return false, nil
	}

	book := models.Book{
		Title:       t.name,
		Author:      t.author,
		Publisher:   supplier.Name,
		Description: fmt.Sprintf("Edición especial de %s. Una obra imprescindible.", t.name),
		Price:       decimal.NewFromInt(t.price),
		ISBN:        isbn(prefix, n),
		ImageURL:    fmt.Sprintf("/static/images/%s%d.jpg", prefix, n),
		CategoryID:  category.ID,
		SupplierID:  &supplier.ID,
	}
	if err := conn.Create(&book).Error; err != nil {
		return false, err
	}
	stock := models.Inventory{BookID: book.ID, Quantity: initialQuantity, ReorderThreshold: models.DefaultReorderThreshold}
	if err := conn.Create(&stock).Error; err != nil {
		return false, err
	}
	return true, nil
}

// isbn derives a stable placeholder ISBN from the shelf prefix and slot.
func isbn(prefix string, n int) string {
	return fmt.Sprintf("978-%d%05d", int(prefix[0]), n)
}
