package product

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	listProductsQuery = `
		SELECT id, name, price, image, description, quantity, category_id, suitable_types, created_at, updated_at
		FROM products
		ORDER BY id
	`
	searchProductsQuery = `
		SELECT id, name, price, image, description, quantity, category_id, suitable_types, created_at, updated_at
		FROM products
		WHERE LOWER(name) LIKE '%' || LOWER($1) || '%'
		ORDER BY id
	`
	getProductByIDQuery = `
		SELECT id, name, price, image, description, quantity, category_id, suitable_types, created_at, updated_at
		FROM products
		WHERE id = $1
	`
	listProductsByIDsQuery = `
		SELECT id, name, price, image, description, quantity, category_id, suitable_types, created_at, updated_at
		FROM products
		WHERE id = ANY($1)
	`
	listBySuitableTypeQuery = `
		SELECT id, name, price, image, description, quantity, category_id, suitable_types, created_at, updated_at
		FROM products
		WHERE $1 = ANY(suitable_types)
		ORDER BY id
	`
	insertProductQuery = `
		INSERT INTO products (name, price, image, description, quantity, category_id, suitable_types, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	updateProductQuery = `
		UPDATE products
		SET name = $1,
			price = $2,
			image = $3,
			description = $4,
			quantity = $5,
			category_id = $6,
			suitable_types = $7,
			updated_at = $8
		WHERE id = $9
	`
	deleteProductQuery = `DELETE FROM products WHERE id = $1`
	adjustStockQuery   = `
		UPDATE products
		SET quantity = quantity + $1
		WHERE id = $2 AND quantity + $1 >= 0
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() []Product {
	return r.queryMany(listProductsQuery)
}

func (r *PostgresRepository) Search(q string) []Product {
	return r.queryMany(searchProductsQuery, q)
}

func (r *PostgresRepository) ListBySuitableType(suitableType string) []Product {
	return r.queryMany(listBySuitableTypeQuery, suitableType)
}

func (r *PostgresRepository) queryMany(query string, args ...any) []Product {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return []Product{}
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	row := r.db.QueryRow(getProductByIDQuery, id)
	p, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) ListByIDs(ids []int) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}
	rows, err := r.db.Query(listProductsByIDsQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0, len(ids))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	err := r.db.QueryRow(insertProductQuery,
		p.Name, p.Price, p.Image, p.Description, p.Quantity, p.CategoryID,
		pq.Array(p.SuitableTypes), p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	res, err := r.db.Exec(updateProductQuery,
		p.Name, p.Price, p.Image, p.Description, p.Quantity, p.CategoryID,
		pq.Array(p.SuitableTypes), p.UpdatedAt, id)
	if err != nil {
		return Product{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Product{}, ErrNotFound
	}
	p.ID = id
	return p, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(deleteProductQuery, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) AdjustStock(id int, delta int) error {
	res, err := r.db.Exec(adjustStockQuery, delta, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// either the product is missing or the decrement would go negative
		if _, getErr := r.GetByID(id); getErr != nil {
			return getErr
		}
		return ErrInsufficient
	}
	return nil
}

func scanProduct(row rowScanner) (Product, error) {
	var (
		p             Product
		image         sql.NullString
		description   sql.NullString
		suitableTypes pq.StringArray
		createdAt     sql.NullString
		updatedAt     sql.NullString
	)
	err := row.Scan(&p.ID, &p.Name, &p.Price, &image, &description,
		&p.Quantity, &p.CategoryID, &suitableTypes, &createdAt, &updatedAt)
	if err != nil {
		return Product{}, err
	}
	p.Image = image.String
	p.Description = description.String
	p.SuitableTypes = []string(suitableTypes)
	p.CreatedAt = createdAt.String
	p.UpdatedAt = updatedAt.String
	return p, nil
}
