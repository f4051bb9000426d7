// Package dataset parses a previously exported observation file back
// into metadata plus a canonical, deterministically ordered table.
package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/okian/lectio/internal/config"
	"github.com/okian/lectio/internal/domain/model"
	"github.com/okian/lectio/pkg/logger"
	"github.com/okian/lectio/pkg/metrics"
)

// requiredColumns must all be present in the file header.
var requiredColumns = []string{"time_s", "category", "response", "value"}

// Row is one canonical table row.
type Row struct {
	TimeS    float64
	Category string
	Response string
	Value    model.Value
}

// Table is the validated, ordered result of one file load. Metadata is
// attached out of band, never as table columns. A fresh Table is built
// per load; nothing is cached or shared.
type Table struct {
	Rows []Row
	Meta map[string]string
}

// Loader parses and orders observation files. The ordering spec is
// derived from the configuration once, at construction, and is immutable
// for the loader's lifetime.
type Loader struct {
	spec *OrderingSpec
	log  logger.Logger
}

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithLogger sets a custom logger for the loader.
func WithLogger(log logger.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

// NewLoader creates a Loader ordering tables per cfg.
func NewLoader(cfg *config.Config, opts ...Option) *Loader {
	l := &Loader{
		spec: NewOrderingSpec(cfg),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.log == nil {
		l.log = logger.Get().Named("dataset")
	}
	return l
}

// Load reads, validates, and orders one observation file. Any failure
// comes back as a wrapped error (ErrRead, ErrParse, ErrSchema); no
// partial table is ever returned.
func (l *Loader) Load(ctx context.Context, path string) (t *Table, err error) {
	start := time.Now()
	defer func() {
		rows := 0
		if t != nil {
			rows = len(t.Rows)
		}
		metrics.RecordLoad(time.Since(start), rows, err)
	}()

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	meta, body := splitMetadata(string(raw))

	records, err := csv.NewReader(strings.NewReader(body)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if len(records) == 0 {
		return nil, NewSchemaError(requiredColumns)
	}

	columns, err := mapColumns(records[0])
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(records)-1)
	for i, record := range records[1:] {
		row, err := parseRow(record, columns)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrParse, i+2, err)
		}
		rows = append(rows, row)
	}

	l.order(rows)

	t = &Table{Rows: rows, Meta: meta}
	l.log.Info(ctx, "observation loaded",
		logger.String("path", path),
		logger.Int("rows", len(rows)),
	)
	return t, nil
}

// splitMetadata partitions the raw file into the leading # block and the
// tabular remainder. Metadata lines split on the first colon only.
func splitMetadata(raw string) (map[string]string, string) {
	meta := make(map[string]string)
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, "#") {
			return meta, strings.Join(lines[i:], "\n")
		}
		content := strings.TrimSpace(strings.TrimPrefix(trimmed, "#"))
		if key, value, ok := strings.Cut(content, ":"); ok {
			meta[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
	}
	return meta, ""
}

// mapColumns validates the header and returns the index of each required
// column. A missing column fails the whole load.
func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, NewSchemaError(requiredColumns)
	}
	return columns, nil
}

// parseRow converts one record into a Row.
func parseRow(record []string, columns map[string]int) (Row, error) {
	cell := func(name string) string {
		idx := columns[name]
		if idx >= len(record) {
			return ""
		}
		return record[idx]
	}
	timeS, err := strconv.ParseFloat(strings.TrimSpace(cell("time_s")), 64)
	if err != nil {
		return Row{}, fmt.Errorf("time_s %q is not numeric", cell("time_s"))
	}
	return Row{
		TimeS:    timeS,
		Category: cell("category"),
		Response: cell("response"),
		Value:    model.ParseValue(cell("value")),
	}, nil
}

// order sorts rows by (category rank, time, response rank, response,
// value), ascending and stable, so two loads of the same file always
// produce the same row order regardless of original file order.
func (l *Loader) order(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		ar, br := l.spec.CategoryRank(a.Category), l.spec.CategoryRank(b.Category)
		if ar != br {
			return ar < br
		}
		if a.TimeS != b.TimeS {
			return a.TimeS < b.TimeS
		}
		arr, brr := l.spec.ResponseRank(a.Category, a.Response), l.spec.ResponseRank(b.Category, b.Response)
		if arr != brr {
			return arr < brr
		}
		if a.Response != b.Response {
			return a.Response < b.Response
		}
		return a.Value.String() < b.Value.String()
	})
}
