package localstore

import (
	"context"
	"encoding/json"

	"chartadvisor/domain/chart"
	"chartadvisor/domain/core"
	"chartadvisor/internal"
	"chartadvisor/ports"
)

// collectionKey is the single well-known key holding the whole serialized
// chart collection.
const collectionKey = "chartadvisor.charts"

// schemaVersion guards against silently swallowing a future format. A blob
// with a different version is treated as corrupt (empty collection, warning
// logged) rather than partially decoded.
const schemaVersion = 1

// collection is the serialized form of the entire store.
type collection struct {
	SchemaVersion int                 `json:"schema_version"`
	Charts        []chart.StoredChart `json:"charts"`
}

// Store persists chart instances as one JSON document in a blob store.
//
// Every write is read-modify-write of the whole collection; a single writer
// is assumed, concurrent writers can lose updates. Every operation is
// fail-soft per the ChartStore port: storage trouble degrades to false or
// empty results with a logged warning, never an error.
type Store struct {
	blobs BlobStore
	log   *internal.Logger
}

var _ ports.ChartStore = (*Store)(nil)

// New creates a chart store over the given blob store
func New(blobs BlobStore) *Store {
	return &Store{blobs: blobs, log: internal.DefaultLogger}
}

// NewWithLogger creates a chart store with an explicit logger
func NewWithLogger(blobs BlobStore, log *internal.Logger) *Store {
	return &Store{blobs: blobs, log: log}
}

// List returns every stored chart, empty when the store is unavailable.
func (s *Store) List(ctx context.Context) []chart.StoredChart {
	return s.load().Charts
}

// Add persists a new chart. A missing id is assigned; creation and update
// timestamps are stamped when absent. A duplicate id is rejected.
func (s *Store) Add(ctx context.Context, c *chart.StoredChart) bool {
	if c == nil {
		return false
	}
	col := s.load()

	if c.ID.IsEmpty() {
		c.ID = core.NewChartID()
	}
	for _, existing := range col.Charts {
		if existing.ID == c.ID {
			s.log.Warn("[ChartStore] duplicate chart id %s rejected", c.ID)
			return false
		}
	}

	now := core.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	col.Charts = append(col.Charts, *c)
	return s.save(col)
}

// Remove deletes the chart with the given id.
func (s *Store) Remove(ctx context.Context, id core.ChartID) bool {
	col := s.load()
	kept := col.Charts[:0]
	found := false
	for _, c := range col.Charts {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return false
	}
	col.Charts = kept
	return s.save(col)
}

// Update applies the non-nil patch fields to the chart with the given id.
// UpdatedAt is bumped on every successful update regardless of which
// fields changed.
func (s *Store) Update(ctx context.Context, id core.ChartID, patch chart.Patch) bool {
	col := s.load()
	for i := range col.Charts {
		if col.Charts[i].ID != id {
			continue
		}
		applyPatch(&col.Charts[i], patch)
		col.Charts[i].UpdatedAt = core.Now()
		return s.save(col)
	}
	return false
}

// Clear wipes the entire collection.
func (s *Store) Clear(ctx context.Context) bool {
	return s.save(collection{SchemaVersion: schemaVersion})
}

// GetByID returns a copy of the chart with the given id.
func (s *Store) GetByID(ctx context.Context, id core.ChartID) (*chart.StoredChart, bool) {
	for _, c := range s.load().Charts {
		if c.ID == id {
			found := c
			return &found, true
		}
	}
	return nil, false
}

// GetByDataSource returns every chart bound to the data source.
func (s *Store) GetByDataSource(ctx context.Context, dataSourceID core.DataSourceID) []chart.StoredChart {
	var out []chart.StoredChart
	for _, c := range s.load().Charts {
		if c.DataSourceID == dataSourceID {
			out = append(out, c)
		}
	}
	return out
}

func (s *Store) load() collection {
	empty := collection{SchemaVersion: schemaVersion}

	data, ok := s.blobs.Read(collectionKey)
	if !ok {
		return empty
	}

	var col collection
	if err := json.Unmarshal(data, &col); err != nil {
		s.log.Warn("[ChartStore] corrupt chart collection, starting empty: %v", err)
		return empty
	}
	if col.SchemaVersion != schemaVersion {
		s.log.Warn("[ChartStore] unsupported chart collection schema %d, starting empty", col.SchemaVersion)
		return empty
	}
	return col
}

func (s *Store) save(col collection) bool {
	col.SchemaVersion = schemaVersion
	data, err := json.Marshal(col)
	if err != nil {
		s.log.Warn("[ChartStore] serialize chart collection: %v", err)
		return false
	}
	if !s.blobs.Write(collectionKey, data) {
		s.log.Warn("[ChartStore] chart collection write failed")
		return false
	}
	return true
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
