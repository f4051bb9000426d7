// Package analysis computes summary statistics, per-category aggregates,
// and insights over a loaded observation table. Everything here is a
// pure function over dataset.Table producing plain data for rendering
// collaborators.
package analysis

import (
	"math"
	"strconv"

	"github.com/okian/lectio/internal/adapters/dataset"
)

// naSentinel is reported wherever a numeric aggregate has no coercible
// input, instead of NaN or a crash.
const naSentinel = "N/A"

// nonNumericSentinel is reported for per-category aggregates of
// categories whose values never coerce to numbers.
const nonNumericSentinel = "N/A (non-numeric data)"

// Stat is an optional numeric aggregate. Invalid stats render as a
// sentinel string, never as NaN.
type Stat struct {
	Value float64
	Valid bool
}

func validStat(v float64) Stat { return Stat{Value: v, Valid: true} }

// String renders the stat with two decimals, or the non-numeric sentinel.
func (s Stat) String() string {
	if !s.Valid {
		return nonNumericSentinel
	}
	return strconv.FormatFloat(s.Value, 'f', 2, 64)
}

// ValueRange is the numeric min/max over coercible values.
type ValueRange struct {
	Min   float64
	Max   float64
	Valid bool
}

// Strings renders the range, with ("N/A","N/A") when no value coerced.
func (r ValueRange) Strings() (string, string) {
	if !r.Valid {
		return naSentinel, naSentinel
	}
	return strconv.FormatFloat(r.Min, 'f', -1, 64), strconv.FormatFloat(r.Max, 'f', -1, 64)
}

// Summary holds the table-wide statistics.
type Summary struct {
	TotalResponses   int
	UniqueCategories int
	Categories       []string // first-seen order
	TimeSpanSeconds  float64
	TimeSpanMinutes  float64
	AvgResponseTime  float64
	ValueRange       ValueRange
}

// Summarize computes the table-wide summary.
func Summarize(t *dataset.Table) Summary {
	s := Summary{
		TotalResponses: len(t.Rows),
		Categories:     categoriesInOrder(t),
	}
	s.UniqueCategories = len(s.Categories)
	if len(t.Rows) == 0 {
		return s
	}

	minT, maxT := t.Rows[0].TimeS, t.Rows[0].TimeS
	sum := 0.0
	for _, row := range t.Rows {
		minT = math.Min(minT, row.TimeS)
		maxT = math.Max(maxT, row.TimeS)
		sum += row.TimeS
	}
	s.TimeSpanSeconds = maxT - minT
	s.TimeSpanMinutes = s.TimeSpanSeconds / 60
	s.AvgResponseTime = sum / float64(len(t.Rows))
	s.ValueRange = valueRange(t)
	return s
}

func valueRange(t *dataset.Table) ValueRange {
	var r ValueRange
	for _, row := range t.Rows {
		n, ok := row.Value.Float()
		if !ok {
			continue
		}
		if !r.Valid {
			r = ValueRange{Min: n, Max: n, Valid: true}
			continue
		}
		r.Min = math.Min(r.Min, n)
		r.Max = math.Max(r.Max, n)
	}
	return r
}

func categoriesInOrder(t *dataset.Table) []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range t.Rows {
		if !seen[row.Category] {
			seen[row.Category] = true
			out = append(out, row.Category)
		}
	}
	return out
}

// CategoryStats aggregates the coercible values of one category. When no
// value coerces, Count falls back to the raw row count and the numeric
// stats are invalid.
type CategoryStats struct {
	Category string
	Count    int
	Mean     Stat
	Std      Stat
	Min      Stat
	Max      Stat
}

// PerCategory computes aggregates for each category in first-seen order.
// Non-numeric values are excluded from the numeric stats rather than
// failing the computation. Std is the sample standard deviation and
// needs at least two numeric values.
func PerCategory(t *dataset.Table) []CategoryStats {
	var out []CategoryStats
	for _, category := range categoriesInOrder(t) {
		var nums []float64
		total := 0
		for _, row := range t.Rows {
			if row.Category != category {
				continue
			}
			total++
			if n, ok := row.Value.Float(); ok {
				nums = append(nums, n)
			}
		}

		stats := CategoryStats{Category: category, Count: total}
		if len(nums) > 0 {
			stats.Count = len(nums)
			stats.Mean = validStat(mean(nums))
			stats.Min = validStat(minOf(nums))
			stats.Max = validStat(maxOf(nums))
			if len(nums) > 1 {
				stats.Std = validStat(sampleStd(nums))
			}
		}
		out = append(out, stats)
	}
	return out
}

func mean(nums []float64) float64 {
	sum := 0.0
	for _, n := range nums {
		sum += n
	}
	return sum / float64(len(nums))
}

func sampleStd(nums []float64) float64 {
	m := mean(nums)
	sum := 0.0
	for _, n := range nums {
		sum += (n - m) * (n - m)
	}
	return math.Sqrt(sum / float64(len(nums)-1))
}

func minOf(nums []float64) float64 {
	out := nums[0]
	for _, n := range nums[1:] {
		out = math.Min(out, n)
	}
	return out
}

func maxOf(nums []float64) float64 {
	out := nums[0]
	for _, n := range nums[1:] {
		out = math.Max(out, n)
	}
	return out
}
