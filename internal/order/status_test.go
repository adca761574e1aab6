package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// memRepo implements Repository in memory.
type memRepo struct {
	orders  map[int64]*Order
	updates int
	failErr error
}

func newMemRepo(orders ...Order) *memRepo {
	r := &memRepo{orders: make(map[int64]*Order)}
	for i := range orders {
		o := orders[i]
		r.orders[o.ID] = &o
	}
	return r
}

func (r *memRepo) List(ctx context.Context, q ListQuery) ([]Order, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	out := []Order{}
	for _, o := range r.orders {
		if q.CreatedFrom != nil && o.CreatedAt.Before(*q.CreatedFrom) {
			continue
		}
		if q.CreatedTo != nil && o.CreatedAt.After(*q.CreatedTo) {
			continue
		}
		out = append(out, *o)
	}
	// newest first, then paged, like the PG query
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].CreatedAt.After(out[j-1].CreatedAt); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	limit := q.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if q.Offset >= len(out) {
		return []Order{}, nil
	}
	out = out[q.Offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memRepo) GetByID(ctx context.Context, id int64) (*Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *memRepo) UpdateStatus(ctx context.Context, id int64, status Status) error {
	if r.failErr != nil {
		return r.failErr
	}
	o, ok := r.orders[id]
	if !ok {
		return ErrNotFound
	}
	r.updates++
	o.Status = status
	return nil
}

func (r *memRepo) DeleteByID(ctx context.Context, id int64) error {
	if _, ok := r.orders[id]; !ok {
		return ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

func TestParseStatusSet(t *testing.T) {
	set := ParseStatusSet(" Pending, Approved ,,Pending")
	vals := set.Values()
	if len(vals) != 2 || vals[0] != "Pending" || vals[1] != "Approved" {
		t.Fatalf("values=%v", vals)
	}
	if set.Contains("pending") {
		t.Fatalf("status matching must be exact")
	}
}

func TestSetStatus_OK(t *testing.T) {
	repo := newMemRepo(Order{ID: 1, Status: "Pending"})
	mgr := NewStatusManager(repo, ParseStatusSet(DefaultStatuses))

	if err := mgr.SetStatus(context.Background(), 1, "Approved"); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if repo.orders[1].Status != "Approved" {
		t.Fatalf("status=%s, want Approved", repo.orders[1].Status)
	}
	// any status may move to any other
	if err := mgr.SetStatus(context.Background(), 1, "Pending"); err != nil {
		t.Fatalf("back to pending: %v", err)
	}
}

func TestSetStatus_RejectsUnknownStatus(t *testing.T) {
	repo := newMemRepo(Order{ID: 1, Status: "Pending"})
	mgr := NewStatusManager(repo, ParseStatusSet(DefaultStatuses))

	err := mgr.SetStatus(context.Background(), 1, "NotARealStatus")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err=%v, want ValidationError", err)
	}
	if repo.updates != 0 || repo.orders[1].Status != "Pending" {
		t.Fatalf("store was touched: updates=%d status=%s", repo.updates, repo.orders[1].Status)
	}
}

func TestSetStatus_NotFound(t *testing.T) {
	mgr := NewStatusManager(newMemRepo(), ParseStatusSet(DefaultStatuses))
	if err := mgr.SetStatus(context.Background(), 42, "Approved"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

func TestSetStatus_StoreError(t *testing.T) {
	repo := newMemRepo(Order{ID: 1})
	repo.failErr = &StoreError{Op: "update status", Err: errors.New("connection reset")}
	mgr := NewStatusManager(repo, ParseStatusSet(DefaultStatuses))

	err := mgr.SetStatus(context.Background(), 1, "Approved")
	var serr *StoreError
	if !errors.As(err, &serr) {
		t.Fatalf("err=%v, want StoreError", err)
	}
}

func TestAssembler_List(t *testing.T) {
	userID := "u1"
	repo := newMemRepo(
		Order{ID: 1, Slug: "ORD-1", Status: "Pending", UserID: &userID, UserEmail: "seller@example.com",
			CreatedAt: at(2024, time.March, 15, 9),
			Items: []Item{
				{ProductID: 10, ProductTitle: "Box A", UnitPrice: decimal.RequireFromString("12.50"), Quantity: 2},
				{ProductID: 11, ProductTitle: "Box B", UnitPrice: decimal.RequireFromString("0.10"), Quantity: 3},
			}},
		Order{ID: 2, Slug: "ORD-2", Status: "Approved", CreatedAt: at(2023, time.June, 1, 9)},
	)
	a := NewAssembler(repo, time.UTC)

	rows, err := a.List(context.Background(), ListQuery{}, FilterSpec{Kind: FilterAll}, now)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 || rows[0].ID != 1 {
		t.Fatalf("rows=%+v", rows)
	}
	r := rows[0]
	if r.Total != "25.30" || r.ItemCount != 2 || r.Marketer != "seller@example.com" || r.Date != "Mar 15, 2024" {
		t.Fatalf("row=%+v", r)
	}
	if r.Items[1].LineTotal != "0.30" {
		t.Fatalf("line total=%s, want 0.30", r.Items[1].LineTotal)
	}
	if rows[1].Marketer != "N/A" || rows[1].Total != "0.00" {
		t.Fatalf("row without user/items=%+v", rows[1])
	}

	rows, err = a.List(context.Background(), ListQuery{}, Yearly(2023), now)
	if err != nil || len(rows) != 1 || rows[0].ID != 2 {
		t.Fatalf("yearly rows=%+v err=%v", rows, err)
	}
}

func TestAssembler_ListOlderYearBeyondFirstPage(t *testing.T) {
	var orders []Order
	for i := 0; i < defaultListLimit+50; i++ {
		orders = append(orders, Order{ID: int64(100 + i), CreatedAt: at(2024, time.January, 1, 0).Add(time.Duration(i) * time.Hour)})
	}
	orders = append(orders, Order{ID: 1, CreatedAt: at(2021, time.May, 4, 10)})
	a := NewAssembler(newMemRepo(orders...), time.UTC)

	rows, err := a.List(context.Background(), ListQuery{}, Yearly(2021), now)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != 1 {
		t.Fatalf("yearly 2021 rows=%d, want the single 2021 order", len(rows))
	}

	start, end := at(2024, time.January, 1, 0), at(2024, time.January, 1, 0)
	rows, err = a.List(context.Background(), ListQuery{Limit: 5}, Custom(&start, &end), now)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 5 || rows[0].ID != 123 {
		t.Fatalf("custom page=%d first=%+v, want 5 rows starting at the last hour of the day", len(rows), rows)
	}
}

func TestAssembler_GetNotFound(t *testing.T) {
	a := NewAssembler(newMemRepo(), time.UTC)
	if _, err := a.Get(context.Background(), 9); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}
