package rpametrics

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Totals accumulates the additive measures of a set of runs.
type Totals struct {
	Executions int             `json:"executions"`
	Successful int             `json:"successful"`
	Exceptions int             `json:"exceptions"`
	Hours      decimal.Decimal `json:"hours"`
	Savings    decimal.Decimal `json:"savings"`
}

// Add accumulates r into t. Missing hours and savings add nothing.
func (t *Totals) Add(r Run) {
	t.Executions += r.Executions
	t.Successful += r.Successful
	t.Exceptions += r.Exceptions
	t.Hours = t.Hours.Add(r.HoursValue())
	t.Savings = t.Savings.Add(r.SavingsValue())
}

// Merge accumulates another Totals into t.
func (t *Totals) Merge(o Totals) {
	t.Executions += o.Executions
	t.Successful += o.Successful
	t.Exceptions += o.Exceptions
	t.Hours = t.Hours.Add(o.Hours)
	t.Savings = t.Savings.Add(o.Savings)
}

// Equal reports whether both totals hold the same values.
func (t Totals) Equal(o Totals) bool {
	return t.Executions == o.Executions && t.Successful == o.Successful && t.Exceptions == o.Exceptions &&
		t.Hours.Equal(o.Hours) && t.Savings.Equal(o.Savings)
}

// SuccessRate returns successful over total executions, 0 without executions.
func (t Totals) SuccessRate() Percent { return Ratio(t.Successful, t.Executions) }

// SavingsPerExecution returns the average savings of one execution.
func (t Totals) SavingsPerExecution() decimal.Decimal {
	if t.Executions == 0 {
		return decimal.Zero
	}
	return t.Savings.Div(decimal.NewFromInt(int64(t.Executions)))
}

// Sum returns the totals of all runs.
func Sum(runs []Run) Totals {
	var t Totals
	for _, r := range runs {
		t.Add(r)
	}
	return t
}

// Bucket is the aggregate of the runs falling in one time bucket.
type Bucket struct {
	Label string `json:"period"`
	Totals
	key   bucketKey
	first Date // earliest run date in the bucket
}

// bucketKey orders buckets chronologically.
type bucketKey struct{ year, index int }

func (k bucketKey) less(o bucketKey) bool {
	if k.year != o.year {
		return k.year < o.year
	}
	return k.index < o.index
}

// bucketOf returns the bucket a run falls in for the period, and its label.
func bucketOf(r Run, p Period) (bucketKey, string) {
	switch p {
	case Daily:
		return bucketKey{r.Date.Year(), int(r.Date.Month())*100 + r.Date.Day()}, r.Date.String()
	case Weekly:
		w := r.Week()
		return bucketKey{r.Year, w}, fmt.Sprintf("W%d %d", w, r.Year)
	case Quarterly:
		return bucketKey{r.Year, r.Quarter()}, r.YearQuarter()
	case Yearly:
		return bucketKey{r.Year, 0}, fmt.Sprint(r.Year)
	default:
		return bucketKey{r.Year, r.MonthNum}, r.YearMonth()
	}
}

// Aggregate groups the runs per time bucket of the given period and returns
// one Bucket per group, in chronological order.
//
// Weekly buckets are keyed by the run year and the ISO week of the run date,
// labelled "W9 2024", and ordered by their earliest run date: early January
// often falls in the last ISO week of the previous year. Daily buckets use the run date, monthly "2024-Jan",
// quarterly "2024 Q1" and yearly "2024".
func Aggregate(runs []Run, p Period) []Bucket {
	index := map[bucketKey]int{}
	var buckets []Bucket
	for _, r := range runs {
		key, label := bucketOf(r, p)
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, Bucket{Label: label, key: key, first: r.Date})
		}
		buckets[i].Add(r)
		if r.Date.Before(buckets[i].first) {
			buckets[i].first = r.Date
		}
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		a, b := buckets[i], buckets[j]
		if p == Weekly && a.first != b.first {
			return a.first.Before(b.first)
		}
		return a.key.less(b.key)
	})
	return buckets
}

// Cumulative returns the running total of cost savings along the buckets.
func Cumulative(buckets []Bucket) []decimal.Decimal {
	out := make([]decimal.Decimal, len(buckets))
	acc := decimal.Zero
	for i, b := range buckets {
		acc = acc.Add(b.Savings)
		out[i] = acc
	}
	return out
}
