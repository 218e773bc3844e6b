package database

import (
	"bookshop-bot/internal/catalog"
	"bookshop-bot/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// ProductRepository mirrors the static catalog into the products table.
type ProductRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewProductRepository(db *sqlx.DB, logger *zap.Logger) *ProductRepository {
	return &ProductRepository{
		db:     db,
		logger: logger,
	}
}

// Seed inserts catalog products that are not in the table yet. Existing
// rows are left alone so total_sold survives restarts.
func (r *ProductRepository) Seed(products []catalog.Product) error {
	query := `
        INSERT INTO products (product_id, name, price, emoji)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (product_id) DO NOTHING
    `

	for _, p := range products {
		if _, err := r.db.Exec(query, p.ID, p.Name, p.Price, p.Emoji); err != nil {
			r.logger.Error("failed to seed product",
				zap.Error(err),
				zap.String("product_id", p.ID),
			)
			return err
		}
	}

	r.logger.Info("catalog seeded", zap.Int("products", len(products)))
	return nil
}

// List returns the products table in catalog order.
func (r *ProductRepository) List() ([]models.Product, error) {
	var products []models.Product
	query := `
        SELECT product_id, name, price, COALESCE(emoji, '') AS emoji, stock, total_sold
        FROM products
    `

	if err := r.db.Select(&products, query); err != nil {
		r.logger.Error("failed to list products", zap.Error(err))
		return nil, err
	}

	return products, nil
}
