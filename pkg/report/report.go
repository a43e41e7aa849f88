// Package report holds the aggregation helpers shared by every summary view.
package report

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"farm/entities"
)

type Bucket int

const (
	Month Bucket = iota
	Year
)

// ParseDate reads the leading YYYY-MM-DD of s, so both dates and creation
// timestamps are accepted.
func ParseDate(s string) (time.Time, bool) {
	if len(s) < len(entities.DateLayout) {
		return time.Time{}, false
	}
	t, err := time.Parse(entities.DateLayout, s[:len(entities.DateLayout)])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// BucketKey is "YYYY-MM" for Month and "YYYY" for Year.
func BucketKey(date string, b Bucket) (string, bool) {
	t, ok := ParseDate(date)
	if !ok {
		return "", false
	}
	if b == Year {
		return t.Format("2006"), true
	}
	return t.Format("2006-01"), true
}

// SumByBucket totals value per month or year of date. Records whose date does
// not parse are skipped.
func SumByBucket[T any](records []T, date func(T) string, value func(T) float64, b Bucket) map[string]float64 {
	out := map[string]float64{}
	for _, r := range records {
		k, ok := BucketKey(date(r), b)
		if !ok {
			continue
		}
		out[k] += value(r)
	}
	return out
}

func SumBy[T any](records []T, key func(T) string, value func(T) float64) map[string]float64 {
	out := map[string]float64{}
	for _, r := range records {
		out[key(r)] += value(r)
	}
	return out
}

func CountBy[T any](records []T, key func(T) string) map[string]int {
	out := map[string]int{}
	for _, r := range records {
		out[key(r)]++
	}
	return out
}

func Sum[T any](records []T, value func(T) float64) float64 {
	var total float64
	for _, r := range records {
		total += value(r)
	}
	return total
}

// Filter keeps the records keep accepts, in order.
func Filter[T any](records []T, keep func(T) bool) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// FilterByDateRange keeps records whose date falls within [from, to], both
// inclusive. Unparseable dates are dropped.
func FilterByDateRange[T any](records []T, date func(T) string, from, to time.Time) []T {
	return Filter(records, func(r T) bool {
		d, ok := ParseDate(date(r))
		return ok && !d.Before(from) && !d.After(to)
	})
}

// Percentage is part/whole*100, and 0 when whole is 0.
func Percentage(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}

// SafeDivide returns def when d is 0.
func SafeDivide(n, d, def float64) float64 {
	if d == 0 {
		return def
	}
	return n / d
}

// GrowthRate is the percentage change from old to cur; 0 when old is 0.
func GrowthRate(old, cur float64) float64 {
	return Percentage(cur-old, old)
}

// DaysBetween counts whole days from start to end; negative when end is first.
func DaysBetween(start, end string) (int, bool) {
	a, ok1 := ParseDate(start)
	b, ok2 := ParseDate(end)
	if !ok1 || !ok2 {
		return 0, false
	}
	return int(math.Round(b.Sub(a).Hours() / 24)), true
}

// Season is the northern-hemisphere season of date.
func Season(date string) string {
	t, ok := ParseDate(date)
	if !ok {
		return ""
	}
	switch t.Month() {
	case time.December, time.January, time.February:
		return "Winter"
	case time.March, time.April, time.May:
		return "Spring"
	case time.June, time.July, time.August:
		return "Summer"
	}
	return "Fall"
}

// Currency renders v as $1,234.50.
func Currency(v float64) string {
	sign := ""
	if v < 0 {
		sign, v = "-", -v
	}
	return sign + "$" + humanize.FormatFloat("#,###.##", v)
}

// Amount is one row of a ranked breakdown.
type Amount struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
	Share float64 `json:"share"` // percent of the breakdown total
}

// Ranked orders m by value descending, ties by key, and fills Share.
func Ranked(m map[string]float64) []Amount {
	out := toAmounts(m)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// Chronological orders m by key ascending, which is time order for bucket keys.
func Chronological(m map[string]float64) []Amount {
	out := toAmounts(m)
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func toAmounts(m map[string]float64) []Amount {
	var total float64
	for _, v := range m {
		total += v
	}
	out := make([]Amount, 0, len(m))
	for k, v := range m {
		out = append(out, Amount{Key: k, Value: v, Share: Percentage(v, total)})
	}
	return out
}

// MonthKey formats a year and month as a bucket key.
func MonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}
