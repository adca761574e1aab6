package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const displayDate = "Jan 02, 2006"

// View is one dashboard row: an order with its line items and buyer.
type View struct {
	ID              int64      `json:"id"`
	Slug            string     `json:"slug"`
	CreatedAt       time.Time  `json:"created_at"`
	Date            string     `json:"date" example:"Jan 05, 2024"`
	Status          Status     `json:"status"`
	ReceptionStatus string     `json:"reception_status"`
	Marketer        string     `json:"marketer"`
	ItemCount       int        `json:"item_count"`
	Total           string     `json:"total" example:"42.50"`
	Items           []ItemView `json:"items"`
}

type ItemView struct {
	ProductID int64  `json:"product_id"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

// NewView renders o for display; dates are formatted in loc.
func NewView(o Order, loc *time.Location) View {
	marketer := o.UserEmail
	if marketer == "" {
		marketer = "N/A"
	}
	total := decimal.Zero
	items := make([]ItemView, 0, len(o.Items))
	for _, it := range o.Items {
		line := it.LineTotal()
		total = total.Add(line)
		items = append(items, ItemView{
			ProductID: it.ProductID,
			Title:     it.ProductTitle,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice.StringFixed(2),
			LineTotal: line.StringFixed(2),
		})
	}
	return View{
		ID:              o.ID,
		Slug:            o.Slug,
		CreatedAt:       o.CreatedAt,
		Date:            o.CreatedAt.In(loc).Format(displayDate),
		Status:          o.Status,
		ReceptionStatus: o.ReceptionStatus,
		Marketer:        marketer,
		ItemCount:       len(o.Items),
		Total:           total.StringFixed(2),
		Items:           items,
	}
}

// Assembler fetches orders and shapes them into dashboard rows.
type Assembler struct {
	repo Repository
	loc  *time.Location
}

func NewAssembler(repo Repository, loc *time.Location) *Assembler {
	if loc == nil {
		loc = time.Local
	}
	return &Assembler{repo: repo, loc: loc}
}

func (a *Assembler) Location() *time.Location { return a.loc }

// List loads the orders matching q inside the window of spec relative to
// now and renders them, newest first as returned by the store. The window
// is pushed down to the store so paging applies to matching rows only.
func (a *Assembler) List(ctx context.Context, q ListQuery, spec FilterSpec, now time.Time) ([]View, error) {
	now = now.In(a.loc)
	q.CreatedFrom, q.CreatedTo = Window(spec, now)
	orders, err := a.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	kept := Filter(orders, spec, now)
	out := make([]View, 0, len(kept))
	for _, o := range kept {
		out = append(out, NewView(o, a.loc))
	}
	return out, nil
}

func (a *Assembler) Get(ctx context.Context, id int64) (*View, error) {
	o, err := a.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v := NewView(*o, a.loc)
	return &v, nil
}
