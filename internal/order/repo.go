package order

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const queryTimeout = 5 * time.Second

// ListQuery narrows the rows fetched from the store. Empty Statuses means
// every status and a nil creation bound leaves that side open. Limit and
// Offset page through the rows that match the other fields.
type ListQuery struct {
	Statuses    []Status
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

const (
	defaultListLimit = 200
	maxListLimit     = 500
)

type Repository interface {
	List(ctx context.Context, q ListQuery) ([]Order, error)
	GetByID(ctx context.Context, id int64) (*Order, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
	DeleteByID(ctx context.Context, id int64) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const selectOrders = `
    SELECT o.id, o.slug, o.status, o.reception_status, o.user_id, COALESCE(u.email, ''), o.created_at
    FROM orders o
    LEFT JOIN users u ON u.id = o.user_id
`

func (r *PGRepo) List(ctx context.Context, q ListQuery) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	limit := q.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	statuses := []string{}
	for _, s := range q.Statuses {
		statuses = append(statuses, string(s))
	}

	rows, err := r.db.Query(ctx, selectOrders+`
    WHERE (cardinality($1::text[]) = 0 OR o.status = ANY($1::text[]))
      AND ($2::timestamptz IS NULL OR o.created_at >= $2)
      AND ($3::timestamptz IS NULL OR o.created_at <= $3)
    ORDER BY o.created_at DESC
    LIMIT $4 OFFSET $5
  `, statuses, q.CreatedFrom, q.CreatedTo, limit, offset)
	if err != nil {
		return nil, &StoreError{Op: "list orders", Err: err}
	}
	defer rows.Close()

	out := []Order{}
	ids := []int64{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, &StoreError{Op: "scan order", Err: err}
		}
		out = append(out, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "list orders", Err: err}
	}
	if len(ids) == 0 {
		return out, nil
	}

	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Items = items[out[i].ID]
	}
	return out, nil
}

func (r *PGRepo) GetByID(ctx context.Context, id int64) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	o, err := scanOrder(r.db.QueryRow(ctx, selectOrders+`WHERE o.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &StoreError{Op: "get order", Err: err}
	}
	items, err := r.itemsFor(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	o.Items = items[id]
	return &o, nil
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id int64, status Status) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return &StoreError{Op: "update status", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByID removes the order row; order_items go with it through the
// foreign key cascade.
func (r *PGRepo) DeleteByID(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return &StoreError{Op: "delete order", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) itemsFor(ctx context.Context, orderIDs []int64) (map[int64][]Item, error) {
	rows, err := r.db.Query(ctx, `
    SELECT oi.id, oi.order_id, oi.product_id, COALESCE(p.title, ''), COALESCE(p.price, 0)::text, oi.quantity
    FROM order_items oi
    LEFT JOIN products p ON p.id = oi.product_id
    WHERE oi.order_id = ANY($1)
    ORDER BY oi.id
  `, orderIDs)
	if err != nil {
		return nil, &StoreError{Op: "list items", Err: err}
	}
	defer rows.Close()

	out := make(map[int64][]Item, len(orderIDs))
	for rows.Next() {
		var (
			it    Item
			price string
		)
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductTitle, &price, &it.Quantity); err != nil {
			return nil, &StoreError{Op: "scan item", Err: err}
		}
		if it.UnitPrice, err = decimal.NewFromString(price); err != nil {
			return nil, &StoreError{Op: "parse price", Err: err}
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "list items", Err: err}
	}
	return out, nil
}

func scanOrder(row pgx.Row) (Order, error) {
	var (
		o      Order
		status string
	)
	err := row.Scan(&o.ID, &o.Slug, &status, &o.ReceptionStatus, &o.UserID, &o.UserEmail, &o.CreatedAt)
	o.Status = Status(status)
	o.Items = []Item{}
	return o, err
}
