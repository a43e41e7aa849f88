package report

import (
	"testing"
	"time"
)

type row struct {
	date string
	cat  string
	amt  float64
}

var rows = []row{
	{"2025-01-15", "Fuel", 10},
	{"2025-01-31", "Seeds", 5},
	{"2025-02-01", "Fuel", 7.5},
	{"2024-12-31T23:59:59.000000", "Labor", 1},
	{"not a date", "Other", 100},
}

func TestSumByBucket(t *testing.T) {
	date := func(r row) string { return r.date }
	amt := func(r row) float64 { return r.amt }

	months := SumByBucket(rows, date, amt, Month)
	want := map[string]float64{"2025-01": 15, "2025-02": 7.5, "2024-12": 1}
	if len(months) != len(want) {
		t.Fatalf("got %v", months)
	}
	for k, v := range want {
		if months[k] != v {
			t.Errorf("%s = %v, want %v", k, months[k], v)
		}
	}

	years := SumByBucket(rows, date, amt, Year)
	if years["2025"] != 22.5 || years["2024"] != 1 || len(years) != 2 {
		t.Fatalf("got %v", years)
	}
}

func TestSumAndCountBy(t *testing.T) {
	cat := func(r row) string { return r.cat }
	sums := SumBy(rows, cat, func(r row) float64 { return r.amt })
	if sums["Fuel"] != 17.5 {
		t.Fatalf("fuel = %v", sums["Fuel"])
	}
	counts := CountBy(rows, cat)
	if counts["Fuel"] != 2 || counts["Seeds"] != 1 {
		t.Fatalf("got %v", counts)
	}
}

func TestPercentageAndSafeDivide(t *testing.T) {
	if Percentage(0, 0) != 0 || Percentage(5, 0) != 0 {
		t.Fatal("zero whole must give 0")
	}
	if Percentage(25, 200) != 12.5 {
		t.Fatalf("got %v", Percentage(25, 200))
	}
	if SafeDivide(1, 0, -1) != -1 || SafeDivide(9, 3, 0) != 3 {
		t.Fatal("SafeDivide")
	}
	if GrowthRate(0, 10) != 0 || GrowthRate(100, 150) != 50 {
		t.Fatal("GrowthRate")
	}
}

func TestFilterByDateRange(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	got := FilterByDateRange(rows, func(r row) string { return r.date }, from, to)
	if len(got) != 2 {
		t.Fatalf("got %v", got)
	}
}

func TestSeasonAndDays(t *testing.T) {
	cases := map[string]string{"2025-01-10": "Winter", "2025-04-10": "Spring", "2025-07-10": "Summer", "2025-10-10": "Fall", "x": ""}
	for in, want := range cases {
		if got := Season(in); got != want {
			t.Errorf("Season(%q) = %q, want %q", in, got, want)
		}
	}
	if d, ok := DaysBetween("2025-03-01", "2025-03-31"); !ok || d != 30 {
		t.Fatalf("DaysBetween = %d %v", d, ok)
	}
	if d, _ := DaysBetween("2025-03-31", "2025-03-01"); d != -30 {
		t.Fatalf("reverse = %d", d)
	}
}

func TestRanked(t *testing.T) {
	got := Ranked(map[string]float64{"b": 10, "a": 10, "c": 30})
	if got[0].Key != "c" || got[1].Key != "a" || got[2].Key != "b" {
		t.Fatalf("order %v", got)
	}
	if got[0].Share != 60 {
		t.Fatalf("share %v", got[0].Share)
	}
	ch := Chronological(map[string]float64{"2025-02": 1, "2024-12": 1, "2025-01": 1})
	if ch[0].Key != "2024-12" || ch[2].Key != "2025-02" {
		t.Fatalf("chronological %v", ch)
	}
}

func TestCurrency(t *testing.T) {
	if got := Currency(1234.5); got != "$1,234.50" {
		t.Fatalf("got %q", got)
	}
	if got := Currency(-20); got != "-$20.00" {
		t.Fatalf("got %q", got)
	}
}
