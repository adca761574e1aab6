package proof

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("proof not found")
)

// StoreError wraps a connectivity or IO failure reported by the proof store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("proof store: %s: %v", e.Op, e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }

type Repository interface {
	ListByOrder(ctx context.Context, orderID int64) ([]Proof, error)
	DeleteByID(ctx context.Context, id int64) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) ListByOrder(ctx context.Context, orderID int64) ([]Proof, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, file_url, created_at
		FROM proof_of_payment
		WHERE order_id = $1
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, &StoreError{Op: "list proofs", Err: err}
	}
	defer rows.Close()

	out := []Proof{}
	for rows.Next() {
		var p Proof
		if err := rows.Scan(&p.ID, &p.OrderID, &p.FileURL, &p.CreatedAt); err != nil {
			return nil, &StoreError{Op: "scan proof", Err: err}
		}
		p.ExpiresAt = expiry(p.CreatedAt)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "list proofs", Err: err}
	}
	return out, nil
}

func (r *PGRepo) DeleteByID(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM proof_of_payment WHERE id = $1`, id)
	if err != nil {
		return &StoreError{Op: "delete proof", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
