package profile

import (
	"gonum.org/v1/gonum/stat"

	"chartadvisor/domain/dataset"
)

// minCorrelationPairs is the smallest paired-sample size worth reporting.
const minCorrelationPairs = 3

// FieldCorrelation is the Pearson correlation between two numeric fields,
// computed over rows where both cells are non-null.
type FieldCorrelation struct {
	FieldX string  `json:"field_x"`
	FieldY string  `json:"field_y"`
	R      float64 `json:"r"`
	N      int     `json:"n"`
}

// Correlations computes pairwise Pearson correlations for every numeric
// field pair, in ordinal order. Pairs with fewer than minCorrelationPairs
// complete rows are skipped.
func Correlations(tbl dataset.Table, fields []dataset.FieldDescriptor) []FieldCorrelation {
	var numeric []dataset.FieldDescriptor
	for _, f := range fields {
		if f.IsNumeric() {
			numeric = append(numeric, f)
		}
	}

	var out []FieldCorrelation
	for i := 0; i < len(numeric); i++ {
		for j := i + 1; j < len(numeric); j++ {
			xs, ys := pairedColumns(tbl, numeric[i].Name, numeric[j].Name)
			if len(xs) < minCorrelationPairs {
				continue
			}
			r := stat.Correlation(xs, ys, nil)
			out = append(out, FieldCorrelation{
				FieldX: numeric[i].Name,
				FieldY: numeric[j].Name,
				R:      r,
				N:      len(xs),
			})
		}
	}
	return out
}

func pairedColumns(tbl dataset.Table, nameX, nameY string) ([]float64, []float64) {
	var xs, ys []float64
	for _, row := range tbl.Rows {
		vx, okX := nonNull(row, nameX)
		vy, okY := nonNull(row, nameY)
		if !okX || !okY {
			continue
		}
		fx, okX := asNumber(vx)
		fy, okY := asNumber(vy)
		if !okX || !okY {
			continue
		}
		xs = append(xs, fx)
		ys = append(ys, fy)
	}
	return xs, ys
}
