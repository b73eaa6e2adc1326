package cart

import (
	"database/sql"
	"encoding/json"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	getCartQuery = `SELECT lines FROM carts WHERE user_id = $1`
	// upsert so the first mutation creates the row; the whole jsonb
	// document is swapped on every write (replace-all semantics)
	replaceCartQuery = `
		INSERT INTO carts (user_id, lines)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET lines = EXCLUDED.lines
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(userID int) ([]Line, error) {
	var raw []byte
	err := r.db.QueryRow(getCartQuery, userID).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return []Line{}, nil
		}
		return nil, err
	}

	lines := make([]Line, 0)
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *PostgresRepository) Replace(userID int, lines []Line) error {
	if lines == nil {
		lines = []Line{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(replaceCartQuery, userID, raw)
	return err
}
