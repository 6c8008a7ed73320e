package profile

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/montanaflynn/stats"

	"chartadvisor/domain/dataset"
)

// dateLayouts are tried in order when coercing strings to calendar dates.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"2006-01",
}

// asNumber coerces a value to a finite float64.
func asNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case float32:
		return finite(float64(t))
	case float64:
		return finite(t)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return finite(f)
	default:
		return 0, false
	}
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// asDate coerces a value to a calendar date.
func asDate(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range dateLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, true
			}
		}
	}
	return time.Time{}, false
}

// asBool coerces a value to a boolean literal.
func asBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

// numericStats computes summary statistics over all non-null values that
// coerce to numbers.
func numericStats(values []any) *dataset.NumericStats {
	data := make([]float64, 0, len(values))
	for _, v := range values {
		if f, ok := asNumber(v); ok {
			data = append(data, f)
		}
	}
	if len(data) == 0 {
		return nil
	}

	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)
	sum, _ := stats.Sum(data)
	stdDev, _ := stats.StandardDeviation(data)

	return &dataset.NumericStats{
		Min:    min,
		Max:    max,
		Mean:   mean,
		Median: median,
		Sum:    sum,
		StdDev: stdDev,
	}
}
