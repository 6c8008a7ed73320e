package profile

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"chartadvisor/domain/core"
	"chartadvisor/domain/dataset"

	"golang.org/x/sync/errgroup"
)

// Config defines the profiling parameters
type Config struct {
	// SampleSize bounds how many rows are scanned for type inference and
	// statistics. Zero means the whole dataset.
	SampleSize int
	// MaxSampleValues caps the representative values kept per field.
	MaxSampleValues int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		SampleSize:      5000,
		MaxSampleValues: 5,
	}
}

// Extractor turns a rectangular dataset into per-column field descriptors.
// It is a pure function of its input: no shared state, safe for concurrent use.
type Extractor struct {
	cfg Config
}

// NewExtractor creates an extractor with the given config
func NewExtractor(cfg Config) *Extractor {
	if cfg.MaxSampleValues < 1 {
		cfg.MaxSampleValues = DefaultConfig().MaxSampleValues
	}
	return &Extractor{cfg: cfg}
}

// Profile analyzes every column of the table.
//
// Policy for degenerate shapes (documented and tested, see tests): an empty
// row set fails with core.ErrEmptyDataset, and rows that carry no fields at
// all fail with core.ErrInconsistentSchema. Partially overlapping schemas
// profile the union of keys, treating absent cells as nulls.
func (e *Extractor) Profile(ctx context.Context, tbl dataset.Table) ([]dataset.FieldDescriptor, error) {
	if len(tbl.Rows) == 0 {
		return nil, core.ErrEmptyDataset
	}
	if len(tbl.Columns) == 0 {
		return nil, core.ErrInconsistentSchema
	}

	sample := tbl.Rows
	if e.cfg.SampleSize > 0 && len(sample) > e.cfg.SampleSize {
		sample = sample[:e.cfg.SampleSize]
	}

	// Columns are independent; profile them with bounded parallelism.
	// Output order stays ordinal regardless of completion order.
	descriptors := make([]dataset.FieldDescriptor, len(tbl.Columns))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, name := range tbl.Columns {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			descriptors[i] = e.profileColumn(name, i, sample)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return descriptors, nil
}

// ProfileRecords profiles raw records, deriving a deterministic column order.
func (e *Extractor) ProfileRecords(ctx context.Context, rows []dataset.Record) ([]dataset.FieldDescriptor, error) {
	return e.Profile(ctx, dataset.NewTable(rows))
}

func (e *Extractor) profileColumn(name string, ordinal int, rows []dataset.Record) dataset.FieldDescriptor {
	values := make([]any, 0, len(rows))
	nullable := false
	for _, row := range rows {
		v, ok := nonNull(row, name)
		if !ok {
			nullable = true
			continue
		}
		values = append(values, v)
	}

	desc := dataset.FieldDescriptor{
		Name:         name,
		DataType:     inferType(values),
		OrdinalIndex: ordinal,
		Nullable:     nullable,
		UniqueCount:  countUnique(values),
		SampleValues: sampleValues(values, e.cfg.MaxSampleValues),
	}

	if desc.DataType == dataset.TypeNumber {
		desc.NumericStats = numericStats(values)
	}

	return desc
}

// nonNull extracts the cell value, reporting false for absent, nil, or
// blank-string cells.
func nonNull(row dataset.Record, name string) (any, bool) {
	v, ok := row[name]
	if !ok || v == nil {
		return nil, false
	}
	if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
		return nil, false
	}
	return v, true
}

// inferType classifies a column from its non-null sampled values. Number
// wins over date wins over boolean; anything mixed falls back to string,
// the safest and most permissive classification.
func inferType(values []any) dataset.DataType {
	if len(values) == 0 {
		return dataset.TypeString
	}

	allNumber, allDate, allBool := true, true, true
	for _, v := range values {
		if allNumber {
			if _, ok := asNumber(v); !ok {
				allNumber = false
			}
		}
		if allDate {
			if _, ok := asDate(v); !ok {
				allDate = false
			}
		}
		if allBool {
			if _, ok := asBool(v); !ok {
				allBool = false
			}
		}
		if !allNumber && !allDate && !allBool {
			break
		}
	}

	switch {
	case allNumber:
		return dataset.TypeNumber
	case allDate:
		return dataset.TypeDate
	case allBool:
		return dataset.TypeBoolean
	default:
		return dataset.TypeString
	}
}

func countUnique(values []any) int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[canonical(v)] = struct{}{}
	}
	return len(seen)
}

func sampleValues(values []any, max int) []string {
	out := make([]string, 0, max)
	seen := make(map[string]struct{}, max)
	for _, v := range values {
		s := canonical(v)
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
		if len(out) == max {
			break
		}
	}
	return out
}

// canonical renders a value to the string form used for uniqueness counting
// and sample display.
func canonical(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 64)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v)
	}
}
