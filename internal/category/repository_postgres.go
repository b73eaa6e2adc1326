package category

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

const (
	listCategoriesQuery  = `SELECT id, name, description FROM categories ORDER BY id`
	getCategoryByIDQuery = `SELECT id, name, description FROM categories WHERE id = $1`
	insertCategoryQuery  = `INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING id`
	updateCategoryQuery  = `UPDATE categories SET name = $1, description = $2 WHERE id = $3`
	deleteCategoryQuery  = `DELETE FROM categories WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() []Category {
	rows, err := r.db.Query(listCategoriesQuery)
	if err != nil {
		return []Category{}
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		var c Category
		var desc sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &desc); err != nil {
			continue
		}
		c.Description = desc.String
		out = append(out, c)
	}
	return out
}

func (r *PostgresRepository) GetByID(id int) (Category, error) {
	var c Category
	var desc sql.NullString
	err := r.db.QueryRow(getCategoryByIDQuery, id).Scan(&c.ID, &c.Name, &desc)
	if err != nil {
		if err == sql.ErrNoRows {
			return Category{}, ErrNotFound
		}
		return Category{}, err
	}
	c.Description = desc.String
	return c, nil
}

func (r *PostgresRepository) Create(cat Category) (Category, error) {
	if err := r.db.QueryRow(insertCategoryQuery, cat.Name, cat.Description).Scan(&cat.ID); err != nil {
		return Category{}, err
	}
	return cat, nil
}

func (r *PostgresRepository) Update(id int, cat Category) (Category, error) {
	res, err := r.db.Exec(updateCategoryQuery, cat.Name, cat.Description, id)
	if err != nil {
		return Category{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Category{}, ErrNotFound
	}
	cat.ID = id
	return cat, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(deleteCategoryQuery, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
