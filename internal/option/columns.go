package option

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"chartadvisor/domain/dataset"
)

// columnStrings renders a column as display strings, nulls as "".
func columnStrings(tbl dataset.Table, name string) []string {
	out := make([]string, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		v, ok := tbl.Value(row, name)
		if !ok {
			out = append(out, "")
			continue
		}
		switch t := v.(type) {
		case string:
			out = append(out, strings.TrimSpace(t))
		default:
			out = append(out, fmt.Sprintf("%v", t))
		}
	}
	return out
}

// columnNumbers renders a column as floats, nulls and junk as 0.
func columnNumbers(tbl dataset.Table, name string) []float64 {
	out := make([]float64, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		v, ok := tbl.Value(row, name)
		if !ok {
			out = append(out, 0)
			continue
		}
		out = append(out, asFloat(v))
	}
	return out
}

func asFloat(v any) float64 {
	switch t := v.(type) {
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0
		}
		return t
	case float32:
		return asFloat(float64(t))
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return asFloat(f)
	default:
		return 0
	}
}
