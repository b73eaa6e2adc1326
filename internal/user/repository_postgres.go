package user

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	getAccountByIDQuery = `
		SELECT id, email, username, password, full_name, phone, role, points, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`
	getAccountByEmailQuery = `
		SELECT id, email, username, password, full_name, phone, role, points, created_at, updated_at
		FROM accounts
		WHERE email = $1
	`
	insertAccountQuery = `
		INSERT INTO accounts (email, username, password, full_name, phone, role, points, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	updateAccountQuery = `
		UPDATE accounts
		SET email = $1,
			username = $2,
			full_name = $3,
			phone = $4,
			updated_at = $5
		WHERE id = $6
	`
	adjustPointsQuery = `
		UPDATE accounts
		SET points = GREATEST(points + $1, 0)
		WHERE id = $2
		RETURNING points
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(id int) (Account, error) {
	row := r.db.QueryRow(getAccountByIDQuery, id)
	acc, err := scanAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Account{}, ErrNotFound
		}
		return Account{}, err
	}
	return acc, nil
}

func (r *PostgresRepository) GetByEmail(email string) (Account, error) {
	row := r.db.QueryRow(getAccountByEmailQuery, email)
	acc, err := scanAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Account{}, ErrNotFound
		}
		return Account{}, err
	}
	return acc, nil
}

func (r *PostgresRepository) Create(acc Account) (Account, error) {
	err := r.db.QueryRow(insertAccountQuery,
		acc.Email, acc.Username, acc.Password, acc.FullName, acc.Phone,
		acc.Role, acc.Points, acc.CreatedAt, acc.UpdatedAt,
	).Scan(&acc.ID)
	if err != nil {
		return Account{}, err
	}
	return acc, nil
}

func (r *PostgresRepository) Update(id int, acc Account) (Account, error) {
	res, err := r.db.Exec(updateAccountQuery,
		acc.Email, acc.Username, acc.FullName, acc.Phone, acc.UpdatedAt, id)
	if err != nil {
		return Account{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Account{}, ErrNotFound
	}
	acc.ID = id
	return acc, nil
}

func (r *PostgresRepository) AdjustPoints(id int, delta int) (Account, error) {
	var points int
	if err := r.db.QueryRow(adjustPointsQuery, delta, id).Scan(&points); err != nil {
		if err == sql.ErrNoRows {
			return Account{}, ErrNotFound
		}
		return Account{}, err
	}
	return r.GetByID(id)
}

func scanAccount(row rowScanner) (Account, error) {
	var (
		acc       Account
		fullName  sql.NullString
		phone     sql.NullString
		createdAt sql.NullString
		updatedAt sql.NullString
	)
	err := row.Scan(&acc.ID, &acc.Email, &acc.Username, &acc.Password,
		&fullName, &phone, &acc.Role, &acc.Points, &createdAt, &updatedAt)
	if err != nil {
		return Account{}, err
	}
	acc.FullName = fullName.String
	acc.Phone = phone.String
	acc.CreatedAt = createdAt.String
	acc.UpdatedAt = updatedAt.String
	return acc, nil
}
