package order

import (
	"database/sql"
	"encoding/json"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	orderColumns = `id, account_id, username, status, total, payment_method,
		shipping_address, shipping_phone, receiver_name,
		applied_points, earned_points, details, created_at`

	insertOrderQuery = `
		INSERT INTO orders (account_id, username, status, total, payment_method,
			shipping_address, shipping_phone, receiver_name,
			applied_points, earned_points, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	getOrderByIDQuery  = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	listByAccountQuery = `SELECT ` + orderColumns + ` FROM orders WHERE account_id = $1 ORDER BY id DESC`
	listAllOrdersQuery = `SELECT ` + orderColumns + ` FROM orders ORDER BY id DESC`
	updateOrderQuery   = `
		UPDATE orders
		SET status = $1, earned_points = $2
		WHERE id = $3
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(o Order) (Order, error) {
	details, err := json.Marshal(o.Details)
	if err != nil {
		return Order{}, err
	}
	err = r.db.QueryRow(insertOrderQuery,
		o.AccountID, o.Username, string(o.Status), o.Total, string(o.PaymentMethod),
		o.ShippingAddress, o.ShippingPhone, o.ReceiverName,
		o.AppliedPoints, o.EarnedPoints, details, o.CreatedAt,
	).Scan(&o.ID)
	if err != nil {
		return Order{}, err
	}
	return o, nil
}

func (r *PostgresRepository) GetByID(id int) (Order, error) {
	row := r.db.QueryRow(getOrderByIDQuery, id)
	o, err := scanOrder(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	return o, nil
}

func (r *PostgresRepository) ListByAccount(accountID int) ([]Order, error) {
	return r.queryMany(listByAccountQuery, accountID)
}

func (r *PostgresRepository) ListAll() ([]Order, error) {
	return r.queryMany(listAllOrdersQuery)
}

func (r *PostgresRepository) queryMany(query string, args ...any) ([]Order, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Update(id int, o Order) (Order, error) {
	res, err := r.db.Exec(updateOrderQuery, string(o.Status), o.EarnedPoints, id)
	if err != nil {
		return Order{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Order{}, ErrNotFound
	}
	o.ID = id
	return o, nil
}

func scanOrder(row rowScanner) (Order, error) {
	var (
		o         Order
		status    string
		method    string
		username  sql.NullString
		phone     sql.NullString
		receiver  sql.NullString
		details   []byte
		createdAt sql.NullString
	)
	err := row.Scan(&o.ID, &o.AccountID, &username, &status, &o.Total, &method,
		&o.ShippingAddress, &phone, &receiver,
		&o.AppliedPoints, &o.EarnedPoints, &details, &createdAt)
	if err != nil {
		return Order{}, err
	}
	o.Username = username.String
	o.Status = Status(status)
	o.PaymentMethod = Method(method)
	o.ShippingPhone = phone.String
	o.ReceiverName = receiver.String
	o.CreatedAt = createdAt.String
	o.Details = make([]Detail, 0)
	if len(details) > 0 {
		if err := json.Unmarshal(details, &o.Details); err != nil {
			return Order{}, err
		}
	}
	return o, nil
}
