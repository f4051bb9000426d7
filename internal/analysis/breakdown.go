package analysis

import (
	"strings"

	"github.com/okian/lectio/internal/adapters/dataset"
	"github.com/okian/lectio/internal/domain/model"
)

// CategoryCount is one slice of the category distribution.
type CategoryCount struct {
	Category string
	Count    int
}

// CategoryCounts returns the per-category row counts in first-seen
// order. Feed for distribution charts.
func CategoryCounts(t *dataset.Table) []CategoryCount {
	counts := make(map[string]int)
	for _, row := range t.Rows {
		counts[row.Category]++
	}
	var out []CategoryCount
	for _, category := range categoriesInOrder(t) {
		out = append(out, CategoryCount{Category: category, Count: counts[category]})
	}
	return out
}

// Comment is one free-text observation extracted from the table.
type Comment struct {
	TimeS float64
	Text  string
}

// Comments extracts the comment rows in table order. The category match
// is case-insensitive so hand-edited files still surface their notes.
func Comments(t *dataset.Table) []Comment {
	var out []Comment
	for _, row := range t.Rows {
		if strings.EqualFold(row.Category, string(model.CategoryComment)) {
			out = append(out, Comment{TimeS: row.TimeS, Text: row.Response})
		}
	}
	return out
}

// TimeBin is one bucket of the per-category activity over time.
type TimeBin struct {
	Start  float64
	End    float64
	Counts map[string]int // category -> rows in this bucket
}

// TimeBins splits the table's time range into n equal-width buckets and
// counts rows per category in each. Feed for time-series sections. The
// final bucket is inclusive of the range end. Returns nil for an empty
// table or non-positive n.
func TimeBins(t *dataset.Table, n int) []TimeBin {
	if len(t.Rows) == 0 || n <= 0 {
		return nil
	}
	minT, maxT := t.Rows[0].TimeS, t.Rows[0].TimeS
	for _, row := range t.Rows {
		if row.TimeS < minT {
			minT = row.TimeS
		}
		if row.TimeS > maxT {
			maxT = row.TimeS
		}
	}
	width := (maxT - minT) / float64(n)

	bins := make([]TimeBin, n)
	for i := range bins {
		bins[i] = TimeBin{
			Start:  minT + float64(i)*width,
			End:    minT + float64(i+1)*width,
			Counts: make(map[string]int),
		}
	}
	for _, row := range t.Rows {
		idx := n - 1
		if width > 0 {
			idx = int((row.TimeS - minT) / width)
			if idx >= n {
				idx = n - 1
			}
		}
		bins[idx].Counts[row.Category]++
	}
	return bins
}
