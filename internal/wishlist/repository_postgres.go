package wishlist

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	addWishlistQuery = `
		INSERT INTO wishlists (user_id, product_ids) VALUES ($1, ARRAY[$2]::integer[])
		ON CONFLICT (user_id) DO UPDATE
		SET product_ids = CASE
			WHEN $2 = ANY(wishlists.product_ids) THEN wishlists.product_ids
			ELSE array_append(wishlists.product_ids, $2)
		END
		RETURNING product_ids
	`
	removeWishlistQuery = `
		UPDATE wishlists SET product_ids = array_remove(product_ids, $2)
		WHERE user_id = $1
		RETURNING product_ids
	`
	listWishlistQuery = `SELECT product_ids FROM wishlists WHERE user_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(userID int, productID int) ([]int, error) {
	var arr pq.Int64Array
	if err := r.db.QueryRow(addWishlistQuery, userID, productID).Scan(&arr); err != nil {
		return nil, err
	}
	return toInts(arr), nil
}

func (r *PostgresRepository) Remove(userID int, productID int) ([]int, error) {
	var arr pq.Int64Array
	err := r.db.QueryRow(removeWishlistQuery, userID, productID).Scan(&arr)
	if err == sql.ErrNoRows {
		return []int{}, nil
	}
	if err != nil {
		return nil, err
	}
	return toInts(arr), nil
}

func (r *PostgresRepository) List(userID int) ([]int, error) {
	var arr pq.Int64Array
	err := r.db.QueryRow(listWishlistQuery, userID).Scan(&arr)
	if err == sql.ErrNoRows {
		return []int{}, nil
	}
	if err != nil {
		return nil, err
	}
	return toInts(arr), nil
}

func toInts(arr pq.Int64Array) []int {
	out := make([]int, len(arr))
	for i, v := range arr {
		out[i] = int(v)
	}
	return out
}
