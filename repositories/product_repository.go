package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"retail-hub/models"
)

const productColumns = `sku, product_name, price, image_url, category, description, revision, created_at, updated_at`

type ProductRepository struct {
	db DBExecutor
}

func NewProductRepository(db DBExecutor) *ProductRepository {
	return &ProductRepository{db: db}
}

func scanProduct(row pgx.Row) (*models.Product, error) {
	var p models.Product
	err := row.Scan(&p.SKU, &p.ProductName, &p.Price, &p.ImageURL, &p.Category,
		&p.Description, &p.Revision, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at, sku`)
	if err != nil {
		return nil, pgError("list products", "", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, pgError("scan product", "", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, pgError("list products", "", err)
	}
	return products, nil
}

func (r *ProductRepository) GetProduct(ctx context.Context, sku string) (*models.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE sku = $1`, sku))
	if err != nil {
		return nil, pgError("get product", sku, err)
	}
	return p, nil
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	now := time.Now().UTC()
	query := `
		INSERT INTO products (sku, product_name, price, image_url, category, description, revision, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 1, $7, $7)
		RETURNING ` + productColumns

	created, err := scanProduct(r.db.QueryRow(ctx, query,
		product.SKU, product.ProductName, product.Price, product.ImageURL,
		product.Category, product.Description, now))
	if err != nil {
		return pgError("create product", product.SKU, err)
	}
	*product = *created
	return nil
}

// UpdateProduct writes every editable field of product. A non-zero
// expectedRevision must match the stored revision.
func (r *ProductRepository) UpdateProduct(ctx context.Context, product *models.Product, expectedRevision int64) error {
	query := `
		UPDATE products
		SET product_name = $2, price = $3, image_url = $4, category = $5, description = $6,
		    revision = revision + 1, updated_at = $7
		WHERE sku = $1 AND ($8 = 0 OR revision = $8)
		RETURNING ` + productColumns

	updated, err := scanProduct(r.db.QueryRow(ctx, query,
		product.SKU, product.ProductName, product.Price, product.ImageURL,
		product.Category, product.Description, time.Now().UTC(), expectedRevision))
	if err == nil {
		*product = *updated
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) || expectedRevision == 0 {
		return pgError("update product", product.SKU, err)
	}

	// no row matched: either the product is gone or the revision moved on
	if _, getErr := r.GetProduct(ctx, product.SKU); getErr != nil {
		return getErr
	}
	return models.NewStoreError("update product", product.SKU, models.ErrConflict)
}

func (r *ProductRepository) DeleteProduct(ctx context.Context, sku string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE sku = $1`, sku)
	if err != nil {
		return 0, pgError("delete product", sku, err)
	}
	if tag.RowsAffected() == 0 {
		return 0, models.NewStoreError("delete product", sku, models.ErrNotFound)
	}
	return tag.RowsAffected(), nil
}
