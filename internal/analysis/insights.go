package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/okian/lectio/internal/adapters/dataset"
)

// Insights produces short natural-language observations over the table,
// in a fixed append-only order: response rate, most frequent category,
// first/last time-quartile counts, mean numeric value. An empty table
// yields a single line instead of fabricated zeros.
func Insights(t *dataset.Table) []string {
	if len(t.Rows) == 0 {
		return []string{"No responses recorded"}
	}

	var out []string

	span := timeSpan(t)
	rate := 0.0
	if span > 0 {
		rate = float64(len(t.Rows)) / (span / 60)
	}
	out = append(out, fmt.Sprintf("Response rate: %.1f responses per minute", rate))

	category, count := mostFrequentCategory(t)
	out = append(out, fmt.Sprintf("Most active category: %s (%d responses)", category, count))

	times := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		times[i] = row.TimeS
	}
	sort.Float64s(times)
	q1 := quantile(times, 0.25)
	q3 := quantile(times, 0.75)

	early, late := 0, 0
	for _, ts := range times {
		if ts <= q1 {
			early++
		}
		if ts >= q3 {
			late++
		}
	}
	out = append(out, fmt.Sprintf("Early responses (first 25%% of time): %d", early))
	out = append(out, fmt.Sprintf("Late responses (last 25%% of time): %d", late))

	var nums []float64
	for _, row := range t.Rows {
		if n, ok := row.Value.Float(); ok {
			nums = append(nums, n)
		}
	}
	if len(nums) > 0 {
		out = append(out, fmt.Sprintf("Average value: %.2f", mean(nums)))
	} else {
		out = append(out, "Average value: N/A (no numeric values found)")
	}

	return out
}

func timeSpan(t *dataset.Table) float64 {
	minT, maxT := t.Rows[0].TimeS, t.Rows[0].TimeS
	for _, row := range t.Rows {
		minT = math.Min(minT, row.TimeS)
		maxT = math.Max(maxT, row.TimeS)
	}
	return maxT - minT
}

// mostFrequentCategory returns the category with the highest row count,
// first-seen winning ties.
func mostFrequentCategory(t *dataset.Table) (string, int) {
	counts := make(map[string]int)
	for _, row := range t.Rows {
		counts[row.Category]++
	}
	best, bestCount := "", -1
	for _, category := range categoriesInOrder(t) {
		if counts[category] > bestCount {
			best, bestCount = category, counts[category]
		}
	}
	return best, bestCount
}

// quantile computes the q-th quantile of sorted values with linear
// interpolation between closest ranks.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
