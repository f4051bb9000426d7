// Package export serializes a session's event log plus a metadata block
// to the observation file format:
//
//	# Protocol: <name>
//	# Observation Started: 2006-01-02 15:04:05
//	# Duration: <seconds, one decimal>
//	# Total Responses: <int>
//
//	time_s,category,response,value
//	12.3,Student,Raised Hand,1
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/okian/lectio/internal/config"
	"github.com/okian/lectio/internal/domain/model"
	"github.com/okian/lectio/pkg/logger"
	"github.com/okian/lectio/pkg/metrics"
)

// generatorTag identifies the writer in exported metadata.
const generatorTag = "lectio v1.0"

// startedLayout formats the session start instant in metadata.
const startedLayout = "2006-01-02 15:04:05"

// Header is the tabular column set, in written order.
var Header = []string{"time_s", "category", "response", "value"}

// Entry is one metadata key/value pair. Order matters in the written
// file, so metadata is a slice rather than a map.
type Entry struct {
	Key   string
	Value string
}

// Metadata is the ordered metadata block of an exported file.
type Metadata []Entry

// Set replaces the value for key, appending when absent.
func (m *Metadata) Set(key, value string) {
	for i := range *m {
		if (*m)[i].Key == key {
			(*m)[i].Value = value
			return
		}
	}
	*m = append(*m, Entry{Key: key, Value: value})
}

// Get returns the value for key and whether it is present.
func (m Metadata) Get(key string) (string, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// NewMetadata builds the metadata block for one session. The total
// response count is filled in by Export, which knows the final log.
func NewMetadata(cfg *config.Config, s model.Session, duration float64) Metadata {
	return Metadata{
		{Key: "Protocol", Value: cfg.Protocol},
		{Key: "Session", Value: s.ID},
		{Key: "Observation Started", Value: s.Start.Format(startedLayout)},
		{Key: "Duration", Value: strconv.FormatFloat(duration, 'f', 1, 64)},
		{Key: "Generated by", Value: generatorTag},
	}
}

// Exporter writes observation files.
type Exporter struct {
	log logger.Logger
}

// Option applies a configuration option to the Exporter.
type Option func(*Exporter)

// WithLogger sets a custom logger for the exporter.
func WithLogger(log logger.Logger) Option {
	return func(e *Exporter) {
		if log != nil {
			e.log = log
		}
	}
}

// New creates an Exporter.
func New(opts ...Option) *Exporter {
	e := &Exporter{}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = logger.Get().Named("export")
	}
	return e
}

// Export writes the metadata block and the event rows, in log order, to
// path. The file is written to a temporary sibling and renamed into
// place, so a failed export never leaves a partial file that looks
// complete. The "Total Responses" metadata entry is set here.
func (e *Exporter) Export(ctx context.Context, events []model.Event, path string, meta Metadata) (err error) {
	start := time.Now()
	defer func() {
		metrics.RecordExport(time.Since(start), err)
	}()

	meta.Set("Total Responses", strconv.Itoa(len(events)))

	tmp, err := os.CreateTemp(filepath.Dir(path), ".lectio-export-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = writeFile(tmp, events, meta); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}

	e.log.Info(ctx, "observation exported",
		logger.String("path", path),
		logger.Int("events", len(events)),
	)
	return nil
}

// writeFile renders the full file body into f.
func writeFile(f *os.File, events []model.Event, meta Metadata) error {
	for _, entry := range meta {
		if _, err := fmt.Fprintf(f, "# %s: %s\n", entry.Key, entry.Value); err != nil {
			return fmt.Errorf("%w: %w", ErrExport, err)
		}
	}
	if _, err := fmt.Fprintln(f); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	for _, ev := range events {
		row := []string{
			strconv.FormatFloat(ev.Elapsed, 'f', -1, 64),
			string(ev.Category),
			ev.Response,
			ev.Value.String(),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("%w: %w", ErrExport, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	return nil
}
