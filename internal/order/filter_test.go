package order

import (
	"errors"
	"testing"
	"time"
)

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func ids(orders []Order) []int64 {
	out := make([]int64, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}

func sameIDs(t *testing.T, got []Order, want ...int64) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("ids=%v, want %v", g, want)
	}
	for i := range g {
		if g[i] != want[i] {
			t.Fatalf("ids=%v, want %v", g, want)
		}
	}
}

var now = at(2024, time.March, 15, 12)

func sample() []Order {
	return []Order{
		{ID: 1, CreatedAt: at(2024, time.March, 15, 0)},
		{ID: 2, CreatedAt: at(2024, time.March, 14, 23)},
		{ID: 3, CreatedAt: at(2024, time.March, 15, 23)},
		{ID: 4, CreatedAt: at(2024, time.March, 1, 0)},
		{ID: 5, CreatedAt: at(2024, time.February, 29, 23)},
		{ID: 6, CreatedAt: at(2023, time.December, 31, 10)},
		{ID: 7, CreatedAt: at(2024, time.April, 1, 0)},
	}
}

func TestFilter_All(t *testing.T) {
	in := sample()
	sameIDs(t, Filter(in, FilterSpec{Kind: FilterAll}, now), 1, 2, 3, 4, 5, 6, 7)
}

func TestFilter_Daily(t *testing.T) {
	sameIDs(t, Filter(sample(), FilterSpec{Kind: FilterDaily}, now), 1, 3)
}

func TestFilter_DailyUsesNowLocation(t *testing.T) {
	// 23:00 UTC on the 14th is already the 15th in UTC+2.
	loc := time.FixedZone("UTC+2", 2*60*60)
	sameIDs(t, Filter(sample(), FilterSpec{Kind: FilterDaily}, now.In(loc)), 1, 2)
}

func TestFilter_Monthly(t *testing.T) {
	sameIDs(t, Filter(sample(), FilterSpec{Kind: FilterMonthly}, now), 1, 2, 3, 4)
}

func TestFilter_Yearly(t *testing.T) {
	in := []Order{
		{ID: 1, CreatedAt: time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)},
		{ID: 2, CreatedAt: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)},
	}
	sameIDs(t, Filter(in, Yearly(2024), now), 1, 2)

	got := Filter(in, Yearly(2023), now)
	if got == nil || len(got) != 0 {
		t.Fatalf("Yearly(2023)=%v, want empty", got)
	}
}

func TestFilter_YearlyWithoutYearPassesThrough(t *testing.T) {
	sameIDs(t, Filter(sample(), FilterSpec{Kind: FilterYearly}, now), 1, 2, 3, 4, 5, 6, 7)
}

func TestFilter_CustomInclusiveDayBounds(t *testing.T) {
	start := time.Date(2024, time.February, 29, 18, 30, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	sameIDs(t, Filter(sample(), Custom(&start, &end), now), 4, 5)
}

func TestFilter_CustomSingleDay(t *testing.T) {
	d := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	sameIDs(t, Filter(sample(), Custom(&d, &d), now), 1, 3)
}

func TestFilter_CustomMissingBoundPassesThrough(t *testing.T) {
	end := at(2024, time.March, 1, 0)
	sameIDs(t, Filter(sample(), Custom(nil, &end), now), 1, 2, 3, 4, 5, 6, 7)
	sameIDs(t, Filter(sample(), Custom(&end, nil), now), 1, 2, 3, 4, 5, 6, 7)
}

func TestFilter_DoesNotMutateOrDuplicate(t *testing.T) {
	in := sample()
	before := ids(in)
	out := Filter(in, FilterSpec{Kind: FilterMonthly}, now)
	seen := map[int64]bool{}
	for _, o := range out {
		if seen[o.ID] {
			t.Fatalf("duplicate id %d in %v", o.ID, ids(out))
		}
		seen[o.ID] = true
	}
	after := ids(in)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("input changed: %v -> %v", before, after)
		}
	}
}

func TestParseFilterSpec(t *testing.T) {
	spec, err := ParseFilterSpec(FilterQuery{}, time.UTC)
	if err != nil || spec.Kind != FilterAll {
		t.Fatalf("empty query: spec=%+v err=%v", spec, err)
	}

	spec, err = ParseFilterSpec(FilterQuery{Filter: "Yearly", Year: "2023"}, time.UTC)
	if err != nil || spec.Kind != FilterYearly || spec.Year == nil || *spec.Year != 2023 {
		t.Fatalf("yearly: spec=%+v err=%v", spec, err)
	}

	spec, err = ParseFilterSpec(FilterQuery{Filter: "yearly"}, time.UTC)
	if err != nil || spec.Year != nil {
		t.Fatalf("yearly without year: spec=%+v err=%v", spec, err)
	}

	spec, err = ParseFilterSpec(FilterQuery{Filter: "custom", Date: "2024-03-15"}, time.UTC)
	if err != nil || spec.Start == nil || spec.End == nil || !spec.Start.Equal(*spec.End) {
		t.Fatalf("custom date: spec=%+v err=%v", spec, err)
	}

	spec, err = ParseFilterSpec(FilterQuery{Filter: "custom", End: "2024-03-15"}, time.UTC)
	if err != nil || spec.Start != nil || spec.End == nil {
		t.Fatalf("custom open start: spec=%+v err=%v", spec, err)
	}
}

func TestParseFilterSpec_Invalid(t *testing.T) {
	cases := []FilterQuery{
		{Filter: "weekly"},
		{Filter: "yearly", Year: "abc"},
		{Filter: "custom", Start: "15/03/2024", End: "2024-03-16"},
		{Filter: "custom", Start: "2024-03-16", End: "2024-03-15"},
	}
	for _, q := range cases {
		_, err := ParseFilterSpec(q, time.UTC)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("query %+v: err=%v, want ValidationError", q, err)
		}
	}
}

func TestYearOptions(t *testing.T) {
	got := YearOptions(now)
	if len(got) != 5 || got[0] != 2020 || got[4] != 2024 {
		t.Fatalf("years=%v", got)
	}
	if got := YearOptions(at(2019, time.June, 1, 0)); len(got) != 0 {
		t.Fatalf("years before 2020=%v, want none", got)
	}
}

func TestWindow(t *testing.T) {
	from, to := Window(Yearly(2023), now)
	if from == nil || to == nil || !from.Equal(at(2023, time.January, 1, 0)) || to.Year() != 2023 || to.Month() != time.December || to.Day() != 31 {
		t.Fatalf("yearly window=%v..%v", from, to)
	}
	from, to = Window(FilterSpec{Kind: FilterMonthly}, now)
	if !from.Equal(at(2024, time.March, 1, 0)) || !to.Before(at(2024, time.April, 1, 0)) {
		t.Fatalf("monthly window=%v..%v", from, to)
	}
	for _, spec := range []FilterSpec{{Kind: FilterAll}, {Kind: FilterYearly}, Custom(nil, &now)} {
		if from, to := Window(spec, now); from != nil || to != nil {
			t.Fatalf("%+v: window=%v..%v, want open", spec, from, to)
		}
	}
}
