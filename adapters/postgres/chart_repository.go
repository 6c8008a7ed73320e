package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"

	"chartadvisor/domain/chart"
	"chartadvisor/domain/core"
	"chartadvisor/internal"
	"chartadvisor/ports"
)

// chartRepository implements the ChartStore port over PostgreSQL. It is the
// server-side sibling of the local file cache: same port, same fail-soft
// surface, with the underlying SQL error logged for diagnostics.
type chartRepository struct {
	db  *sqlx.DB
	log *internal.Logger
}

var _ ports.ChartStore = (*chartRepository)(nil)

// NewChartRepository creates a new chart repository
func NewChartRepository(db *sqlx.DB) ports.ChartStore {
	return &chartRepository{db: db, log: internal.DefaultLogger}
}

// EnsureSchema creates the backing table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS stored_charts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		chart_type TEXT NOT NULL,
		data_source_id TEXT NOT NULL DEFAULT '',
		field_mapping JSONB NOT NULL,
		style_config JSONB,
		serialized_option TEXT NOT NULL DEFAULT '',
		thumbnail TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`)
	return err
}

const chartColumns = `id, name, chart_type, data_source_id, field_mapping,
	COALESCE(style_config, 'null'::jsonb) AS style_config,
	serialized_option, thumbnail, created_at, updated_at`

// List returns every stored chart, empty on database trouble.
func (r *chartRepository) List(ctx context.Context) []chart.StoredChart {
	rows, err := r.db.QueryContext(ctx, `SELECT `+chartColumns+` FROM stored_charts ORDER BY created_at`)
	if err != nil {
		r.log.Warn("[ChartRepo] list charts: %v", err)
		return nil
	}
	defer rows.Close()
	return r.collect(rows)
}

// Add inserts a new chart, assigning id and timestamps when absent.
func (r *chartRepository) Add(ctx context.Context, c *chart.StoredChart) bool {
	if c == nil {
		return false
	}
	if c.ID.IsEmpty() {
		c.ID = core.NewChartID()
	}
	now := core.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	mappingJSON, styleJSON, err := marshalConfigs(c.FieldMapping, c.StyleConfig)
	if err != nil {
		r.log.Warn("[ChartRepo] marshal chart %s: %v", c.ID, err)
		return false
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO stored_charts (
		id, name, chart_type, data_source_id, field_mapping, style_config,
		serialized_option, thumbnail, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID.String(), c.Name, string(c.ChartType), c.DataSourceID.String(),
		mappingJSON, styleJSON, c.SerializedOption, c.Thumbnail,
		c.CreatedAt.Time(), c.UpdatedAt.Time(),
	)
	if err != nil {
		r.log.Warn("[ChartRepo] insert chart %s: %v", c.ID, err)
		return false
	}
	return true
}

// Remove deletes the chart with the given id.
func (r *chartRepository) Remove(ctx context.Context, id core.ChartID) bool {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stored_charts WHERE id = $1`, id.String())
	if err != nil {
		r.log.Warn("[ChartRepo] delete chart %s: %v", id, err)
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}

// Update applies the patch inside a transaction so the read-modify-write is
// atomic. UpdatedAt is bumped on every successful update.
func (r *chartRepository) Update(ctx context.Context, id core.ChartID, patch chart.Patch) bool {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.log.Warn("[ChartRepo] begin update %s: %v", id, err)
		return false
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `SELECT `+chartColumns+` FROM stored_charts WHERE id = $1 FOR UPDATE`, id.String())
	current, err := scanChart(row)
	if err != nil {
		if err != sql.ErrNoRows {
			r.log.Warn("[ChartRepo] load chart %s: %v", id, err)
		}
		return false
	}

	applyPatch(current, patch)
	current.UpdatedAt = core.Now()

	mappingJSON, styleJSON, err := marshalConfigs(current.FieldMapping, current.StyleConfig)
	if err != nil {
		r.log.Warn("[ChartRepo] marshal chart %s: %v", id, err)
		return false
	}

	_, err = tx.ExecContext(ctx, `UPDATE stored_charts SET
		name = $2, chart_type = $3, field_mapping = $4, style_config = $5,
		serialized_option = $6, thumbnail = $7, updated_at = $8
	WHERE id = $1`,
		id.String(), current.Name, string(current.ChartType), mappingJSON, styleJSON,
		current.SerializedOption, current.Thumbnail, current.UpdatedAt.Time(),
	)
	if err != nil {
		r.log.Warn("[ChartRepo] update chart %s: %v", id, err)
		return false
	}
	if err := tx.Commit(); err != nil {
		r.log.Warn("[ChartRepo] commit update %s: %v", id, err)
		return false
	}
	return true
}

// Clear wipes the entire collection.
func (r *chartRepository) Clear(ctx context.Context) bool {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM stored_charts`); err != nil {
		r.log.Warn("[ChartRepo] clear charts: %v", err)
		return false
	}
	return true
}

// GetByID returns the chart with the given id.
func (r *chartRepository) GetByID(ctx context.Context, id core.ChartID) (*chart.StoredChart, bool) {
	row := r.db.QueryRowContext(ctx, `SELECT `+chartColumns+` FROM stored_charts WHERE id = $1`, id.String())
	c, err := scanChart(row)
	if err != nil {
		if err != sql.ErrNoRows {
			r.log.Warn("[ChartRepo] get chart %s: %v", id, err)
		}
		return nil, false
	}
	return c, true
}

// GetByDataSource returns every chart bound to the data source.
func (r *chartRepository) GetByDataSource(ctx context.Context, dataSourceID core.DataSourceID) []chart.StoredChart {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+chartColumns+` FROM stored_charts WHERE data_source_id = $1 ORDER BY created_at`,
		dataSourceID.String())
	if err != nil {
		r.log.Warn("[ChartRepo] charts by data source %s: %v", dataSourceID, err)
		return nil
	}
	defer rows.Close()
	return r.collect(rows)
}

func (r *chartRepository) collect(rows *sql.Rows) []chart.StoredChart {
	var out []chart.StoredChart
	for rows.Next() {
		c, err := scanChart(rows)
		if err != nil {
			r.log.Warn("[ChartRepo] scan chart: %v", err)
			return out
		}
		out = append(out, *c)
	}
	return out
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChart(row rowScanner) (*chart.StoredChart, error) {
	var (
		c           chart.StoredChart
		id, source  string
		chartType   string
		mappingJSON []byte
		styleJSON   []byte
		createdAt   time.Time
		updatedAt   time.Time
	)
	err := row.Scan(&id, &c.Name, &chartType, &source, &mappingJSON, &styleJSON,
		&c.SerializedOption, &c.Thumbnail, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	c.ID = core.ChartID(id)
	c.ChartType = chart.Type(chartType)
	c.DataSourceID = core.DataSourceID(source)
	c.CreatedAt = core.NewTimestamp(createdAt)
	c.UpdatedAt = core.NewTimestamp(updatedAt)

	if err := json.Unmarshal(mappingJSON, &c.FieldMapping); err != nil {
		return nil, err
	}
	if len(styleJSON) > 0 && string(styleJSON) != "null" {
		if err := json.Unmarshal(styleJSON, &c.StyleConfig); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

func marshalConfigs(m chart.FieldMapping, style chart.StyleConfig) ([]byte, []byte, error) {
	mappingJSON, err := json.Marshal(m)
	if err != nil {
		return nil, nil, err
	}
	var styleJSON []byte
	if style != nil {
		styleJSON, err = json.Marshal(style)
		if err != nil {
			return nil, nil, err
		}
	}
	return mappingJSON, styleJSON, nil
}

func applyPatch(c *chart.StoredChart, patch chart.Patch) {
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.ChartType != nil {
		c.ChartType = *patch.ChartType
	}
	if patch.FieldMapping != nil {
		c.FieldMapping = patch.FieldMapping.Clone()
	}
	if patch.StyleConfig != nil {
		c.StyleConfig = *patch.StyleConfig
	}
	if patch.SerializedOption != nil {
		c.SerializedOption = *patch.SerializedOption
	}
	if patch.Thumbnail != nil {
		c.Thumbnail = *patch.Thumbnail
	}
}
