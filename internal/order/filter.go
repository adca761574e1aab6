package order

import (
	"strconv"
	"strings"
	"time"
)

type FilterKind string

const (
	FilterAll     FilterKind = "all"
	FilterDaily   FilterKind = "daily"
	FilterMonthly FilterKind = "monthly"
	FilterYearly  FilterKind = "yearly"
	FilterCustom  FilterKind = "custom"
)

// firstYear is the oldest year offered by YearOptions.
const firstYear = 2020

const dateLayout = "2006-01-02"

// FilterSpec selects a time window over order creation timestamps.
// A yearly spec without Year, or a custom spec missing either bound,
// matches everything.
type FilterSpec struct {
	Kind  FilterKind
	Year  *int
	Start *time.Time
	End   *time.Time
}

func Yearly(year int) FilterSpec { return FilterSpec{Kind: FilterYearly, Year: &year} }

func Custom(start, end *time.Time) FilterSpec {
	return FilterSpec{Kind: FilterCustom, Start: start, End: end}
}

// Filter returns the orders created inside the window described by spec.
// Calendar boundaries are computed in now's location. The input slice is
// never modified and the relative order of the result matches the input.
func Filter(orders []Order, spec FilterSpec, now time.Time) []Order {
	from, to := Window(spec, now)
	if from == nil || to == nil {
		return orders
	}
	return keep(orders, func(o Order) bool { return within(o.CreatedAt, *from, *to) })
}

// Window returns the inclusive creation-time bounds selected by spec, in
// now's location. Both bounds are nil when spec selects everything.
func Window(spec FilterSpec, now time.Time) (from, to *time.Time) {
	loc := now.Location()

	var f, t time.Time
	switch spec.Kind {
	case FilterDaily:
		f, t = startOfDay(now), endOfDay(now)
	case FilterMonthly:
		f, t = startOfMonth(now), endOfMonth(now)
	case FilterYearly:
		if spec.Year == nil {
			return nil, nil
		}
		f = time.Date(*spec.Year, time.January, 1, 0, 0, 0, 0, loc)
		t = f.AddDate(1, 0, 0).Add(-time.Nanosecond)
	case FilterCustom:
		if spec.Start == nil || spec.End == nil {
			return nil, nil
		}
		f, t = startOfDay(spec.Start.In(loc)), endOfDay(spec.End.In(loc))
	default:
		return nil, nil
	}
	return &f, &t
}

func keep(orders []Order, match func(Order) bool) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if match(o) {
			out = append(out, o)
		}
	}
	return out
}

// within reports whether t lies in [from, to].
func within(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

func endOfMonth(t time.Time) time.Time {
	return startOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// FilterQuery carries the raw query-string values of a dashboard filter.
type FilterQuery struct {
	Filter string `form:"filter"`
	Year   string `form:"year"`
	Start  string `form:"start"`
	End    string `form:"end"`
	Date   string `form:"date"`
}

// ParseFilterSpec turns query values into a FilterSpec. Dates use the
// YYYY-MM-DD layout and are interpreted in loc. Missing optional values
// are left nil so that Filter degrades to a pass-through.
func ParseFilterSpec(q FilterQuery, loc *time.Location) (FilterSpec, error) {
	kind := FilterKind(strings.ToLower(strings.TrimSpace(q.Filter)))
	if kind == "" {
		kind = FilterAll
	}

	switch kind {
	case FilterAll, FilterDaily, FilterMonthly:
		return FilterSpec{Kind: kind}, nil
	case FilterYearly:
		if q.Year == "" {
			return FilterSpec{Kind: kind}, nil
		}
		y, err := strconv.Atoi(q.Year)
		if err != nil || y <= 0 {
			return FilterSpec{}, &ValidationError{Field: "year", Value: q.Year, Reason: "must be a positive integer"}
		}
		return Yearly(y), nil
	case FilterCustom:
		start, end := q.Start, q.End
		if q.Date != "" && start == "" && end == "" {
			start, end = q.Date, q.Date
		}
		from, err := parseDate("start", start, loc)
		if err != nil {
			return FilterSpec{}, err
		}
		to, err := parseDate("end", end, loc)
		if err != nil {
			return FilterSpec{}, err
		}
		if from != nil && to != nil && to.Before(*from) {
			return FilterSpec{}, &ValidationError{Field: "end", Value: end, Reason: "must not be before start"}
		}
		return Custom(from, to), nil
	default:
		return FilterSpec{}, &ValidationError{Field: "filter", Value: q.Filter, Reason: "expected all, daily, monthly, yearly or custom"}
	}
}

func parseDate(field, v string, loc *time.Location) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, v, loc)
	if err != nil {
		return nil, &ValidationError{Field: field, Value: v, Reason: "expected YYYY-MM-DD"}
	}
	return &t, nil
}

// YearOptions lists the selectable years, oldest first, up to now's year.
func YearOptions(now time.Time) []int {
	var out []int
	for y := firstYear; y <= now.Year(); y++ {
		out = append(out, y)
	}
	return out
}
